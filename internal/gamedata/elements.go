package gamedata

import "time"

// =============================================================================
// ENVIRONMENTAL ELEMENT DESIGN
// =============================================================================
//
// Archetypes are static templates for world objects spawned around the arena.
// Every archetype belongs to one class and names one effect:
//
//  1. destructible - destroyed by player projectiles; fires its effect once:
//     - explode: area damage + knockback (radius, damage, knockback)
//     - restore: ammo + energy restoration (amount)
//     - loot:    every kind in lootTable handed to the power-up spawner
//     - shield:  persistent shield points (amount)
//
//  2. station - limited uses, player-triggered, cooldown between uses:
//     - heal:     restore health (amount)
//     - upgrade:  one stat from upgradeTypes chosen uniformly (upgradeAmount)
//     - teleport: random offset within radius + invulnerability (durationMs)
//     - ammo:     refill ammo (amount, 0 means full)
//
//  3. trap - triggers on proximity (radius) when off cooldown; deals damage plus:
//     - none
//     - slow:    speed multiplier for durationMs
//     - gravity: pull toward the trap center (knockback as pull strength)
//
//  4. dynamic - continuous effect while the player is within size+20:
//     - bounce:       impulse away from center (knockback)
//     - speed:        speed multiplier for durationMs
//     - shield_field: damage reduction fraction (multiplier) for durationMs
//
// Spawn selection: each archetype contributes floor(spawnWeight*100) tickets.

// ElementClass is the behavioral class of an environmental element.
type ElementClass string

const (
	ClassDestructible ElementClass = "destructible"
	ClassStation      ElementClass = "station"
	ClassTrap         ElementClass = "trap"
	ClassDynamic      ElementClass = "dynamic"
)

// EffectKind names what an element does when it triggers.
type EffectKind string

const (
	EffectNone EffectKind = "none"

	// Destruction effects
	EffectExplode EffectKind = "explode"
	EffectRestore EffectKind = "restore"
	EffectLoot    EffectKind = "loot"
	EffectShield  EffectKind = "shield"

	// Station effects
	EffectHeal     EffectKind = "heal"
	EffectUpgrade  EffectKind = "upgrade"
	EffectTeleport EffectKind = "teleport"
	EffectAmmo     EffectKind = "ammo"

	// Trap secondaries
	EffectSlow    EffectKind = "slow"
	EffectGravity EffectKind = "gravity"

	// Dynamic effects
	EffectBounce      EffectKind = "bounce"
	EffectSpeed       EffectKind = "speed"
	EffectShieldField EffectKind = "shield_field"
)

// ArchetypeDef defines an environmental element template loaded from JSON.
type ArchetypeDef struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Glyph         string       `json:"glyph"`
	Color         string       `json:"color"`
	Class         ElementClass `json:"class"`
	Effect        EffectKind   `json:"effect"`
	SpawnWeight   float64      `json:"spawnWeight"`
	Size          float64      `json:"size"`
	Score         int          `json:"score,omitempty"`
	Health        int          `json:"health,omitempty"`
	Damage        int          `json:"damage,omitempty"`
	Radius        float64      `json:"radius,omitempty"`
	Knockback     float64      `json:"knockback,omitempty"`
	Amount        int          `json:"amount,omitempty"`
	Uses          int          `json:"uses,omitempty"`
	CooldownMs    int          `json:"cooldownMs,omitempty"`
	DurationMs    int          `json:"durationMs,omitempty"`
	Multiplier    float64      `json:"multiplier,omitempty"`
	UpgradeTypes  []string     `json:"upgradeTypes,omitempty"`
	UpgradeAmount float64      `json:"upgradeAmount,omitempty"`
	LootTable     []string     `json:"lootTable,omitempty"`
}

// Cooldown returns the archetype's cooldown between triggers.
func (a *ArchetypeDef) Cooldown() time.Duration {
	return time.Duration(a.CooldownMs) * time.Millisecond
}

// EffectDuration returns how long a timed effect lasts.
func (a *ArchetypeDef) EffectDuration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

// Tickets returns the number of selection tickets this archetype contributes.
func (a *ArchetypeDef) Tickets() int {
	if a.SpawnWeight <= 0 {
		return 0
	}
	return int(a.SpawnWeight * 100)
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ArchetypeDef) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '?'
	}
	return rune(a.Glyph[0])
}

// ArchetypesFile represents the structure of elements.json.
type ArchetypesFile struct {
	Archetypes []ArchetypeDef `json:"archetypes"`
}

// LoadArchetypes loads archetype definitions from the embedded elements.json file.
func LoadArchetypes() ([]ArchetypeDef, error) {
	file, err := Load[ArchetypesFile]("elements.json")
	if err != nil {
		return nil, err
	}
	return file.Archetypes, nil
}
