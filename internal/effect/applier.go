package effect

import (
	"time"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Damageable is anything an area effect can hurt or shove.
// Both the player and mobs implement this interface.
type Damageable interface {
	Position() world.Vec
	IsAlive() bool
	TakeDamage(amount int) int // Returns actual damage taken
	Push(impulse world.Vec)
}

// Target is an entity that accepts every kind of Delta. The player implements it.
type Target interface {
	Damageable

	Heal(amount int) int          // Returns actual amount healed
	AddShield(amount int) int     // Returns shield added
	RestoreAmmo(amount int) int   // amount <= 0 refills; returns rounds added
	RestoreEnergy(amount int) int // Returns energy added
	Upgrade(stat string, fraction float64) bool
	MoveTo(p world.Vec)

	AddModifier(m Modifier, now time.Time) bool
	ExpireModifiers(now time.Time) []Modifier
}

// Result is the outcome of applying a Delta.
type Result struct {
	Delta   Delta
	Applied bool
	Amount  float64 // Actual damage/heal/shield/ammo/energy applied
}

// Applier applies deltas to entities. It is the only writer of entity state for
// effect-driven changes.
type Applier struct {
	clock clock.Clock
}

// NewApplier creates an applier using c for modifier timestamps.
func NewApplier(c clock.Clock) *Applier {
	return &Applier{clock: clock.Or(c)}
}

// Apply applies d to t. Kinds that need the full Target interface are skipped for
// plain Damageable values. A nil target is a no-op.
func (a *Applier) Apply(t Damageable, d Delta) Result {
	result := Result{Delta: d}
	if t == nil {
		return result
	}

	switch d.Kind {
	case KindDamage:
		result.Amount = float64(t.TakeDamage(int(d.Amount)))
		result.Applied = true
	case KindImpulse:
		t.Push(d.Vector)
		result.Applied = true
	default:
		target, ok := t.(Target)
		if !ok {
			return result
		}
		return a.applyToTarget(target, d)
	}
	return result
}

func (a *Applier) applyToTarget(t Target, d Delta) Result {
	result := Result{Delta: d}

	switch d.Kind {
	case KindHeal:
		result.Amount = float64(t.Heal(int(d.Amount)))
		result.Applied = true
	case KindShield:
		result.Amount = float64(t.AddShield(int(d.Amount)))
		result.Applied = true
	case KindAmmo:
		result.Amount = float64(t.RestoreAmmo(int(d.Amount)))
		result.Applied = true
	case KindEnergy:
		result.Amount = float64(t.RestoreEnergy(int(d.Amount)))
		result.Applied = true
	case KindUpgrade:
		result.Applied = t.Upgrade(d.Stat, d.Amount)
		result.Amount = d.Amount
	case KindTeleport:
		t.MoveTo(d.Vector)
		result.Applied = true
	case KindModifier:
		result.Applied = t.AddModifier(d.Modifier, a.clock.Now())
		result.Amount = d.Modifier.Value
	}
	return result
}

// ApplyAll applies each delta in order and returns the results.
func (a *Applier) ApplyAll(t Damageable, deltas []Delta) []Result {
	results := make([]Result, 0, len(deltas))
	for _, d := range deltas {
		results = append(results, a.Apply(t, d))
	}
	return results
}

// Reconcile expires timed modifiers on t and returns the ones removed.
func (a *Applier) Reconcile(t Target) []Modifier {
	if t == nil {
		return nil
	}
	return t.ExpireModifiers(a.clock.Now())
}
