package effect

import "time"

// ModifierKind identifies a timed modifier.
type ModifierKind string

const (
	ModSpeed        ModifierKind = "speed"        // Value multiplies speed
	ModSlow         ModifierKind = "slow"         // Value multiplies speed
	ModShieldField  ModifierKind = "shield_field" // Value is the fraction of damage absorbed
	ModInvulnerable ModifierKind = "invulnerable" // Blocks all damage
)

// Modifier is a temporary (value, expiresAt) adjustment.
type Modifier struct {
	Kind      ModifierKind
	Value     float64
	ExpiresAt time.Time
	Source    string
}

// Active reports whether the modifier has not yet expired at now.
func (m Modifier) Active(now time.Time) bool {
	return now.Before(m.ExpiresAt)
}

// Modifiers holds at most one modifier per kind.
type Modifiers []Modifier

// Add installs m unless an active modifier of the same kind already lasts at
// least as long. Returns true if m was installed.
func (ms *Modifiers) Add(m Modifier, now time.Time) bool {
	if !m.Active(now) {
		return false
	}
	for i, existing := range *ms {
		if existing.Kind != m.Kind {
			continue
		}
		if existing.Active(now) && !m.ExpiresAt.After(existing.ExpiresAt) {
			return false
		}
		(*ms)[i] = m
		return true
	}
	*ms = append(*ms, m)
	return true
}

// Expire removes modifiers that are no longer active and returns them.
func (ms *Modifiers) Expire(now time.Time) []Modifier {
	var expired []Modifier
	kept := (*ms)[:0]
	for _, m := range *ms {
		if m.Active(now) {
			kept = append(kept, m)
		} else {
			expired = append(expired, m)
		}
	}
	*ms = kept
	return expired
}

// Get returns the modifier of the given kind, if present.
func (ms Modifiers) Get(kind ModifierKind) (Modifier, bool) {
	for _, m := range ms {
		if m.Kind == kind {
			return m, true
		}
	}
	return Modifier{}, false
}

// Has reports whether a modifier of the given kind is present.
func (ms Modifiers) Has(kind ModifierKind) bool {
	_, ok := ms.Get(kind)
	return ok
}

// SpeedFactor returns the product of all speed-affecting modifiers.
func (ms Modifiers) SpeedFactor() float64 {
	factor := 1.0
	for _, m := range ms {
		if m.Kind == ModSpeed || m.Kind == ModSlow {
			factor *= m.Value
		}
	}
	return factor
}
