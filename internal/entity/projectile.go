package entity

import "github.com/samdwyer/survivalarena/internal/world"

// Projectile is a single-use shot.
type Projectile struct {
	X, Y       float64
	VX, VY     float64
	Damage     int
	FromPlayer bool
	Active     bool
	TTL        float64 // Seconds until the shot fizzles
}

// ProjectileSpeed is the travel speed of player shots.
const ProjectileSpeed = 500

// ProjectileLifetime is how long a shot stays in flight.
const ProjectileLifetime = 1.5

// NewProjectile creates an active projectile heading along dir.
func NewProjectile(from, dir world.Vec, damage int, fromPlayer bool) *Projectile {
	v := dir.Normalize().Scale(ProjectileSpeed)
	return &Projectile{
		X:          from.X,
		Y:          from.Y,
		VX:         v.X,
		VY:         v.Y,
		Damage:     damage,
		FromPlayer: fromPlayer,
		Active:     true,
		TTL:        ProjectileLifetime,
	}
}

// Position returns the projectile's current position.
func (p *Projectile) Position() world.Vec {
	return world.Vec{X: p.X, Y: p.Y}
}

// IsActive reports whether the projectile can still hit something.
func (p *Projectile) IsActive() bool { return p.Active }

// PlayerOwned reports whether the player fired the projectile.
func (p *Projectile) PlayerOwned() bool { return p.FromPlayer }

// DamageAmount returns the damage dealt on hit.
func (p *Projectile) DamageAmount() int { return p.Damage }

// Spend deactivates the projectile after a hit.
func (p *Projectile) Spend() { p.Active = false }

// Step advances the projectile and expires it when its lifetime ends or it leaves the arena.
func (p *Projectile) Step(dt float64, arena *world.Arena) {
	if !p.Active {
		return
	}
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.TTL -= dt
	if p.TTL <= 0 || (arena != nil && !arena.Contains(p.Position())) {
		p.Active = false
	}
}
