package environment

import (
	"context"
	"math"
	"time"

	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Animation speeds in radians per second.
const (
	pulseSpeed    = 4.0
	rotationSpeed = 1.5
)

// Update advances every element by dt seconds and resolves interactions with the
// scene. A nil or dead player is treated as absent.
func (e *Engine) Update(ctx context.Context, dt float64, scene Scene) Report {
	var report Report
	now := e.clock.Now()

	player := scene.Player
	playerPresent := player != nil && player.IsAlive()
	if player != nil {
		e.applier.Reconcile(player)
	}

	var avoid *world.Vec
	if playerPresent {
		p := player.Position()
		avoid = &p
	}
	if el, ok := e.tickSpawner(ctx, dt, avoid); ok {
		report.Spawned = append(report.Spawned, el)
	}

	var prompt *Prompt
	promptDist := math.Inf(1)

	for _, el := range e.elements {
		if !el.Active {
			continue
		}

		if el.Class() == gamedata.ClassStation {
			el.Phase = math.Mod(el.Phase+dt*rotationSpeed, 2*math.Pi)
		} else {
			el.Phase = math.Mod(el.Phase+dt*pulseSpeed, 2*math.Pi)
		}

		dist := math.Inf(1)
		if playerPresent {
			dist = world.Distance(player.Position(), el.Position())
		}

		switch el.Class() {
		case gamedata.ClassTrap:
			if el.Ready(now) && dist <= el.Def.Radius {
				report.merge(e.triggerTrap(el, player, now))
			}
		case gamedata.ClassDynamic:
			if dist <= el.Size+e.cfg.DynamicReach {
				report.merge(e.applyDynamic(el, player, now))
			}
		case gamedata.ClassStation:
			if el.StationReady(now) && dist <= e.cfg.InteractionRadius {
				if dist <= e.cfg.ContactRadius {
					report.merge(e.useStation(ctx, el, player, now))
				} else if dist < promptDist {
					promptDist = dist
					prompt = &Prompt{ElementID: el.ID, Name: el.Def.Name, UsesLeft: el.UsesLeft}
				}
			}
		case gamedata.ClassDestructible:
			report.merge(e.checkProjectiles(ctx, el, scene))
		}
	}

	e.prune()
	e.updateParticles(dt)
	e.prompt = prompt
	report.Prompt = prompt
	return report
}

func (e *Engine) tickSpawner(ctx context.Context, dt float64, avoid *world.Vec) (*Element, bool) {
	if dt > 0 {
		e.spawnTimer += time.Duration(dt * float64(time.Second))
	}
	if e.spawnTimer < e.cfg.SpawnInterval {
		return nil, false
	}
	e.spawnTimer = 0

	if len(e.elements) >= e.cfg.MaxElements {
		return nil, false
	}
	if e.rng.Float64() >= e.cfg.SpawnChance {
		return nil, false
	}
	return e.SpawnRandom(ctx, avoid)
}

// checkProjectiles applies every active player shot inside el to it.
func (e *Engine) checkProjectiles(ctx context.Context, el *Element, scene Scene) Report {
	var report Report
	for _, p := range scene.Projectiles {
		if el.Health <= 0 {
			break
		}
		if p == nil || !p.IsActive() || !p.PlayerOwned() {
			continue
		}
		if world.Distance(p.Position(), el.Position()) > el.Size {
			continue
		}
		report.merge(e.damage(ctx, el, p.DamageAmount(), scene))
		p.Spend()
	}
	return report
}

// DamageElement damages a destructible by id. Unknown ids and non-destructibles
// are ignored.
func (e *Engine) DamageElement(ctx context.Context, id string, amount int, scene Scene) Report {
	el := e.Element(id)
	if el == nil || el.Class() != gamedata.ClassDestructible {
		e.logger.WithField("element", id).Debug("damage ignored")
		return Report{}
	}
	report := e.damage(ctx, el, amount, scene)
	e.prune()
	return report
}

func (e *Engine) damage(ctx context.Context, el *Element, amount int, scene Scene) Report {
	var report Report
	if !el.Active || el.Health <= 0 || amount <= 0 {
		return report
	}
	dealt := min(amount, el.Health)
	el.Health -= dealt
	report.DamageDealt = dealt
	e.burst(el.Position(), 2, el.Def.Color, el.Def.GlyphRune(), 60, 0.3)

	if el.Health <= 0 {
		report.merge(e.destroy(ctx, el, scene))
	}
	return report
}

// InteractWithStation uses the station with the given id. It returns false when
// the station is missing, exhausted or cooling down, or the player is absent.
func (e *Engine) InteractWithStation(ctx context.Context, id string, player effect.Target) (Report, bool) {
	el := e.Element(id)
	now := e.clock.Now()
	if el == nil || player == nil || !player.IsAlive() || !el.StationReady(now) {
		return Report{}, false
	}
	report := e.useStation(ctx, el, player, now)
	e.prune()
	return report, true
}

// InteractNearest uses the closest ready station within the interaction radius.
func (e *Engine) InteractNearest(ctx context.Context, player effect.Target) (Report, bool) {
	if player == nil || !player.IsAlive() {
		return Report{}, false
	}
	now := e.clock.Now()
	pos := player.Position()

	var best *Element
	bestDist := e.cfg.InteractionRadius
	for _, el := range e.elements {
		if !el.StationReady(now) {
			continue
		}
		if d := world.Distance(pos, el.Position()); d <= bestDist {
			best, bestDist = el, d
		}
	}
	if best == nil {
		return Report{}, false
	}
	return e.InteractWithStation(ctx, best.ID, player)
}

func (e *Engine) prune() {
	live := e.elements[:0]
	for _, el := range e.elements {
		if el.Active {
			live = append(live, el)
		}
	}
	for i := len(live); i < len(e.elements); i++ {
		e.elements[i] = nil
	}
	e.elements = live
}

func (e *Engine) updateParticles(dt float64) {
	live := e.particles[:0]
	for _, p := range e.particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= e.cfg.ParticleDamping
		p.VY *= e.cfg.ParticleDamping
		p.Life -= dt
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	e.particles = live
}

func (e *Engine) burst(at world.Vec, n int, color string, glyph rune, speed, life float64) {
	for i := 0; i < n; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		v := speed * (0.5 + e.rng.Float64()/2)
		e.particles = append(e.particles, Particle{
			X:     at.X,
			Y:     at.Y,
			VX:    math.Cos(angle) * v,
			VY:    math.Sin(angle) * v,
			Life:  life,
			Color: color,
			Glyph: glyph,
		})
	}
}
