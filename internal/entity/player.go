// Package entity provides the player, mobs and projectiles that populate the arena.
package entity

import (
	"math"
	"time"

	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Upgradeable stats accepted by Player.Upgrade.
const (
	StatDamage   = "damage"
	StatFireRate = "fire_rate"
	StatSpeed    = "speed"
)

// VelocityDamping is applied to impulse velocity once per Step.
const VelocityDamping = 0.9

// Player is the human-controlled survivor.
type Player struct {
	Name    string
	Loadout *gamedata.LoadoutDef // nil for default stats
	Symbol  rune

	X, Y           float64 // Current position
	SpawnX, SpawnY float64 // Designated respawn point
	VX, VY         float64 // Impulse velocity, decays each Step

	Health, MaxHealth int
	Speed, BaseSpeed  float64 // Speed is BaseSpeed scaled by active modifiers
	Ammo, MaxAmmo     int
	Energy, MaxEnergy int
	Shield            int
	Damage            float64 // Per-projectile damage
	FireRate          float64 // Shots per second

	Visible bool
	Dead    bool

	Modifiers effect.Modifiers
}

// NewPlayer creates a player with default stats at the given spawn point.
func NewPlayer(name string, spawn world.Vec) *Player {
	return &Player{
		Name:      name,
		Symbol:    '@',
		X:         spawn.X,
		Y:         spawn.Y,
		SpawnX:    spawn.X,
		SpawnY:    spawn.Y,
		Health:    100,
		MaxHealth: 100,
		Speed:     200,
		BaseSpeed: 200,
		Ammo:      30,
		MaxAmmo:   30,
		Energy:    100,
		MaxEnergy: 100,
		Damage:    10,
		FireRate:  4,
		Visible:   true,
	}
}

// NewPlayerFromLoadout creates a player whose stats come from a loadout definition.
func NewPlayerFromLoadout(name string, def *gamedata.LoadoutDef, spawn world.Vec) *Player {
	p := NewPlayer(name, spawn)
	if def == nil {
		return p
	}
	p.Loadout = def
	p.Symbol = def.SymbolRune()
	p.Health = def.Health
	p.MaxHealth = def.Health
	p.Speed = def.Speed
	p.BaseSpeed = def.Speed
	p.Damage = def.Damage
	p.FireRate = def.FireRate
	p.Ammo = def.Ammo
	p.MaxAmmo = def.Ammo
	p.Energy = def.Energy
	p.MaxEnergy = def.Energy
	return p
}

// Position returns the player's current position.
func (p *Player) Position() world.Vec {
	return world.Vec{X: p.X, Y: p.Y}
}

// SpawnPoint returns the designated respawn position.
func (p *Player) SpawnPoint() world.Vec {
	return world.Vec{X: p.SpawnX, Y: p.SpawnY}
}

// Move moves the player by dir * Speed * dt.
func (p *Player) Move(dir world.Vec, dt float64) {
	if p.Dead {
		return
	}
	step := dir.Normalize().Scale(p.Speed * dt)
	p.X += step.X
	p.Y += step.Y
}

// Step integrates impulse velocity and keeps the player inside the arena.
func (p *Player) Step(dt float64, arena *world.Arena) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.VX *= VelocityDamping
	p.VY *= VelocityDamping
	if arena != nil {
		pos := arena.Clamp(p.Position(), 0)
		p.X, p.Y = pos.X, pos.Y
	}
}

// IsAlive returns true if the player has health and is not awaiting respawn.
func (p *Player) IsAlive() bool { return p.Health > 0 && !p.Dead }

// TakeDamage reduces shield then health and returns the health actually lost.
// Invulnerability blocks damage entirely; a shield field absorbs a fraction first.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 || p.Dead {
		return 0
	}
	if p.Modifiers.Has(effect.ModInvulnerable) {
		return 0
	}
	if field, ok := p.Modifiers.Get(effect.ModShieldField); ok {
		amount = int(math.Round(float64(amount) * (1 - field.Value)))
	}

	if p.Shield > 0 {
		absorbed := min(p.Shield, amount)
		p.Shield -= absorbed
		amount -= absorbed
	}

	actual := min(amount, p.Health)
	p.Health -= actual
	return actual
}

// Heal restores health and returns the actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.MaxHealth-p.Health)
	p.Health += actual
	return actual
}

// AddShield grants persistent shield points.
func (p *Player) AddShield(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.Shield += amount
	return amount
}

// RestoreAmmo adds rounds up to capacity. A non-positive amount refills.
func (p *Player) RestoreAmmo(amount int) int {
	missing := p.MaxAmmo - p.Ammo
	if amount <= 0 || amount > missing {
		amount = missing
	}
	p.Ammo += amount
	return amount
}

// RestoreEnergy restores energy up to capacity.
func (p *Player) RestoreEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.MaxEnergy-p.Energy)
	p.Energy += actual
	return actual
}

// SpendAmmo consumes one round, returning false when empty.
func (p *Player) SpendAmmo() bool {
	if p.Ammo <= 0 {
		return false
	}
	p.Ammo--
	return true
}

// Upgrade raises a stat by fraction. Unknown stats are ignored.
func (p *Player) Upgrade(stat string, fraction float64) bool {
	if fraction <= 0 {
		return false
	}
	switch stat {
	case StatDamage:
		p.Damage *= 1 + fraction
	case StatFireRate:
		p.FireRate *= 1 + fraction
	case StatSpeed:
		p.BaseSpeed *= 1 + fraction
		p.recomputeSpeed()
	default:
		return false
	}
	return true
}

// Push adds an impulse to the player's velocity.
func (p *Player) Push(impulse world.Vec) {
	p.VX += impulse.X
	p.VY += impulse.Y
}

// MoveTo relocates the player.
func (p *Player) MoveTo(pos world.Vec) {
	p.X = pos.X
	p.Y = pos.Y
}

// AddModifier installs a timed modifier and refreshes derived stats.
func (p *Player) AddModifier(m effect.Modifier, now time.Time) bool {
	if !p.Modifiers.Add(m, now) {
		return false
	}
	p.recomputeSpeed()
	return true
}

// ExpireModifiers drops expired modifiers and refreshes derived stats.
func (p *Player) ExpireModifiers(now time.Time) []effect.Modifier {
	expired := p.Modifiers.Expire(now)
	if len(expired) > 0 {
		p.recomputeSpeed()
	}
	return expired
}

func (p *Player) recomputeSpeed() {
	p.Speed = p.BaseSpeed * p.Modifiers.SpeedFactor()
}

// SetVisible shows or hides the player.
func (p *Player) SetVisible(v bool) { p.Visible = v }

// SetDead marks the player as dead or alive.
func (p *Player) SetDead(d bool) { p.Dead = d }

// RestoreHealth refills health to max.
func (p *Player) RestoreHealth() { p.Health = p.MaxHealth }

// Ensure Player implements effect.Target
var _ effect.Target = (*Player)(nil)
