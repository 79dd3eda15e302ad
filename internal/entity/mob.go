package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Mob is a hostile creature that chases the player.
type Mob struct {
	ID     string
	Def    *gamedata.MobDef
	Name   string
	Symbol rune

	X, Y   float64
	VX, VY float64 // Impulse velocity, decays each Step

	Health, MaxHealth int
	Speed             float64
	Damage            int

	attackCooldown float64 // Seconds until the next contact hit
}

// AttackInterval is the minimum time between contact hits from one mob.
const AttackInterval = 1.0

// NewMobFromDef creates a mob from a data-driven definition. Health and damage are
// scaled by difficulty.
func NewMobFromDef(def *gamedata.MobDef, pos world.Vec, difficulty float64) *Mob {
	if difficulty <= 0 {
		difficulty = 1
	}
	health := max(1, int(float64(def.Health)*difficulty))
	return &Mob{
		ID:        uuid.NewString(),
		Def:       def,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		X:         pos.X,
		Y:         pos.Y,
		Health:    health,
		MaxHealth: health,
		Speed:     def.Speed,
		Damage:    max(1, int(float64(def.Damage)*difficulty)),
	}
}

// Position returns the mob's current position.
func (m *Mob) Position() world.Vec {
	return world.Vec{X: m.X, Y: m.Y}
}

// IsAlive returns true if the mob has health remaining.
func (m *Mob) IsAlive() bool { return m.Health > 0 }

// IsBoss reports whether the mob's definition is a boss.
func (m *Mob) IsBoss() bool { return m.Def != nil && m.Def.Boss }

// Kind returns the mob's type identifier.
func (m *Mob) Kind() string {
	if m.Def != nil {
		return m.Def.ID
	}
	return m.Name
}

// Points returns the base score for killing this mob.
func (m *Mob) Points() int {
	if m.Def != nil {
		return m.Def.Points
	}
	return 0
}

// TakeDamage reduces health and returns actual damage taken.
func (m *Mob) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.Health)
	m.Health -= actual
	return actual
}

// Push adds an impulse to the mob's velocity.
func (m *Mob) Push(impulse world.Vec) {
	m.VX += impulse.X
	m.VY += impulse.Y
}

// Step moves the mob toward target and integrates impulse velocity.
func (m *Mob) Step(dt float64, target world.Vec, arena *world.Arena) {
	if !m.IsAlive() {
		return
	}
	dir := target.Sub(m.Position()).Normalize()
	m.X += (dir.X*m.Speed + m.VX) * dt
	m.Y += (dir.Y*m.Speed + m.VY) * dt
	m.VX *= VelocityDamping
	m.VY *= VelocityDamping
	if arena != nil {
		pos := arena.Clamp(m.Position(), 0)
		m.X, m.Y = pos.X, pos.Y
	}
	if m.attackCooldown > 0 {
		m.attackCooldown -= dt
	}
}

// TryAttack returns the mob's damage if it is within reach of target and off cooldown.
func (m *Mob) TryAttack(target world.Vec, reach float64) (int, bool) {
	if !m.IsAlive() || m.attackCooldown > 0 {
		return 0, false
	}
	if world.Distance(m.Position(), target) > reach {
		return 0, false
	}
	m.attackCooldown = AttackInterval
	return m.Damage, true
}

// Ensure Mob implements effect.Damageable
var _ effect.Damageable = (*Mob)(nil)
