package environment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/telemetry"
	"github.com/samdwyer/survivalarena/internal/world"
)

// apply applies d to the player and records the result.
func (e *Engine) apply(report *Report, player effect.Target, d effect.Delta) {
	if player == nil {
		return
	}
	r := e.applier.Apply(player, d)
	if !r.Applied {
		return
	}
	report.Applied = append(report.Applied, r)
	if d.Kind == effect.KindDamage {
		report.PlayerDamage += int(r.Amount)
	}
}

// away returns the unit vector from center toward p, or +X when they coincide.
func away(center, p world.Vec) world.Vec {
	dir := p.Sub(center).Normalize()
	if dir == (world.Vec{}) {
		return world.Vec{X: 1}
	}
	return dir
}

func (e *Engine) knockback(def *gamedata.ArchetypeDef) float64 {
	return def.Knockback * e.cfg.KnockbackScale
}

// destroy fires el's one-shot destruction effect and awards its score.
func (e *Engine) destroy(ctx context.Context, el *Element, scene Scene) Report {
	tracer := telemetry.Tracer("environment")
	_, span := tracer.Start(ctx, "environment.destroy")
	defer span.End()

	var report Report
	def := el.Def
	center := el.Position()
	el.Active = false
	el.Health = 0

	player := scene.Player
	if player != nil && !player.IsAlive() {
		player = nil
	}

	switch def.Effect {
	case gamedata.EffectExplode:
		if player != nil && world.Distance(player.Position(), center) <= def.Radius {
			e.apply(&report, player, effect.Damage(def.Damage, def.ID))
			e.apply(&report, player, effect.Impulse(away(center, player.Position()).Scale(e.knockback(def)), def.ID))
		}
		for _, mob := range scene.Mobs {
			if mob == nil || !mob.IsAlive() || world.Distance(mob.Position(), center) > def.Radius {
				continue
			}
			e.applier.Apply(mob, effect.Damage(def.Damage, def.ID))
			e.applier.Apply(mob, effect.Impulse(away(center, mob.Position()).Scale(e.knockback(def)), def.ID))
			if !mob.IsAlive() {
				report.Killed = append(report.Killed, mob)
			}
		}
		e.burst(center, 12, def.Color, '*', 200, 0.6)
	case gamedata.EffectRestore:
		e.apply(&report, player, effect.Ammo(def.Amount, def.ID))
		e.apply(&report, player, effect.Energy(def.Amount, def.ID))
		e.burst(center, 6, def.Color, '+', 80, 0.5)
	case gamedata.EffectLoot:
		if e.spawner != nil {
			for i, kind := range def.LootTable {
				offset := float64(i*15) - float64(len(def.LootTable)-1)*7.5
				e.spawner.SpawnPowerUp(kind, center.X+offset, center.Y)
			}
		}
		e.burst(center, 6, def.Color, '.', 80, 0.5)
	case gamedata.EffectShield:
		e.apply(&report, player, effect.Shield(def.Amount, def.ID))
		e.burst(center, 6, def.Color, 'o', 80, 0.5)
	}

	if def.Score > 0 {
		report.Score = def.Score
		if e.score != nil {
			e.score.AddScore(def.Score, "destroy:"+def.ID)
		}
	}
	report.Destroyed = append(report.Destroyed, el)

	span.SetAttributes(
		attribute.String("element", def.ID),
		attribute.String("effect", string(def.Effect)),
		attribute.Int("score", def.Score),
		attribute.Int("mobs_killed", len(report.Killed)),
	)
	return report
}

// useStation spends one use of el on the player.
func (e *Engine) useStation(ctx context.Context, el *Element, player effect.Target, now time.Time) Report {
	tracer := telemetry.Tracer("environment")
	_, span := tracer.Start(ctx, "environment.station")
	defer span.End()

	var report Report
	def := el.Def

	el.UsesLeft--
	el.Cooldown.Reset(now, def.Cooldown())

	switch def.Effect {
	case gamedata.EffectHeal:
		e.apply(&report, player, effect.Heal(def.Amount, def.ID))
	case gamedata.EffectUpgrade:
		if len(def.UpgradeTypes) > 0 {
			stat := def.UpgradeTypes[e.rng.Intn(len(def.UpgradeTypes))]
			e.apply(&report, player, effect.Upgrade(stat, def.UpgradeAmount, def.ID))
			span.SetAttributes(attribute.String("stat", stat))
		}
	case gamedata.EffectTeleport:
		if e.arena == nil {
			break
		}
		dest := player.Position().Add(e.arena.RandomOffset(def.Radius))
		dest = e.arena.Clamp(dest, world.TeleportMargin)
		e.apply(&report, player, effect.Teleport(dest, def.ID))
		e.apply(&report, player, effect.Timed(effect.ModInvulnerable, 1, now, def.EffectDuration(), def.ID))
		e.burst(dest, 8, def.Color, 'o', 120, 0.4)
	case gamedata.EffectAmmo:
		e.apply(&report, player, effect.Ammo(def.Amount, def.ID))
	}
	e.burst(el.Position(), 4, def.Color, '+', 60, 0.4)

	if el.UsesLeft <= 0 {
		el.Active = false
	}
	report.Stations = append(report.Stations, el)

	span.SetAttributes(
		attribute.String("element", def.ID),
		attribute.String("effect", string(def.Effect)),
		attribute.Int("uses_left", el.UsesLeft),
	)
	return report
}

// triggerTrap hits the player with el's damage and secondary effect.
func (e *Engine) triggerTrap(el *Element, player effect.Target, now time.Time) Report {
	var report Report
	def := el.Def

	el.Cooldown.Reset(now, def.Cooldown())
	e.apply(&report, player, effect.Damage(def.Damage, def.ID))

	switch def.Effect {
	case gamedata.EffectSlow:
		e.apply(&report, player, effect.Timed(effect.ModSlow, def.Multiplier, now, def.EffectDuration(), def.ID))
	case gamedata.EffectGravity:
		pull := away(player.Position(), el.Position()).Scale(e.knockback(def))
		e.apply(&report, player, effect.Impulse(pull, def.ID))
	case gamedata.EffectNone:
	}
	e.burst(el.Position(), 5, def.Color, 'x', 100, 0.4)
	return report
}

// applyDynamic applies el's continuous effect for one tick.
func (e *Engine) applyDynamic(el *Element, player effect.Target, now time.Time) Report {
	var report Report
	def := el.Def

	switch def.Effect {
	case gamedata.EffectBounce:
		push := away(el.Position(), player.Position()).Scale(e.knockback(def))
		e.apply(&report, player, effect.Impulse(push, def.ID))
	case gamedata.EffectSpeed:
		e.apply(&report, player, effect.Timed(effect.ModSpeed, def.Multiplier, now, def.EffectDuration(), def.ID))
	case gamedata.EffectShieldField:
		e.apply(&report, player, effect.Timed(effect.ModShieldField, def.Multiplier, now, def.EffectDuration(), def.ID))
	}
	return report
}
