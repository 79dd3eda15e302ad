// Package effect describes gameplay effects as data and applies them to entities.
//
// Systems such as the environment engine never mutate entities directly; they
// build Delta values and hand them to an Applier, which is the only code that
// touches entity fields.
package effect

import (
	"time"

	"github.com/samdwyer/survivalarena/internal/world"
)

// Kind identifies what a Delta changes.
type Kind string

const (
	KindDamage   Kind = "damage"
	KindHeal     Kind = "heal"
	KindShield   Kind = "shield"
	KindAmmo     Kind = "ammo"
	KindEnergy   Kind = "energy"
	KindUpgrade  Kind = "upgrade"
	KindImpulse  Kind = "impulse"
	KindTeleport Kind = "teleport"
	KindModifier Kind = "modifier"
)

// Delta is one effect to apply to one target.
type Delta struct {
	Kind     Kind
	Amount   float64   // damage, heal, shield, ammo (0 = refill), energy, upgrade fraction
	Vector   world.Vec // impulse direction*force, or teleport destination
	Stat     string    // upgrade stat name
	Modifier Modifier  // timed modifier for KindModifier
	Source   string    // archetype or system that produced the delta
}

// Damage builds a damage delta.
func Damage(amount int, source string) Delta {
	return Delta{Kind: KindDamage, Amount: float64(amount), Source: source}
}

// Heal builds a heal delta.
func Heal(amount int, source string) Delta {
	return Delta{Kind: KindHeal, Amount: float64(amount), Source: source}
}

// Shield builds a persistent shield delta.
func Shield(amount int, source string) Delta {
	return Delta{Kind: KindShield, Amount: float64(amount), Source: source}
}

// Ammo builds an ammo delta. An amount of 0 refills to capacity.
func Ammo(amount int, source string) Delta {
	return Delta{Kind: KindAmmo, Amount: float64(amount), Source: source}
}

// Energy builds an energy restoration delta.
func Energy(amount int, source string) Delta {
	return Delta{Kind: KindEnergy, Amount: float64(amount), Source: source}
}

// Upgrade builds a weapon/stat upgrade delta raising stat by fraction.
func Upgrade(stat string, fraction float64, source string) Delta {
	return Delta{Kind: KindUpgrade, Stat: stat, Amount: fraction, Source: source}
}

// Impulse builds a velocity impulse delta.
func Impulse(v world.Vec, source string) Delta {
	return Delta{Kind: KindImpulse, Vector: v, Source: source}
}

// Teleport builds a relocation delta.
func Teleport(dest world.Vec, source string) Delta {
	return Delta{Kind: KindTeleport, Vector: dest, Source: source}
}

// Timed builds a modifier delta lasting d from now.
func Timed(kind ModifierKind, value float64, now time.Time, d time.Duration, source string) Delta {
	return Delta{
		Kind: KindModifier,
		Modifier: Modifier{
			Kind:      kind,
			Value:     value,
			ExpiresAt: now.Add(d),
			Source:    source,
		},
		Source: source,
	}
}
