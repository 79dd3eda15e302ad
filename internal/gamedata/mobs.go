package gamedata

import (
	"errors"
	"math/rand"
)

// MobDef defines a hostile creature type loaded from JSON.
type MobDef struct {
	ID          string  `json:"id"`          // Unique identifier (e.g., "grunt")
	Name        string  `json:"name"`        // Display name (e.g., "Grunt")
	Glyph       string  `json:"glyph"`       // Single character for rendering (e.g., "g")
	Color       string  `json:"color"`       // Hex color code (e.g., "#00FF00")
	Health      int     `json:"health"`      // Base hit points
	Speed       float64 `json:"speed"`       // Movement per second in arena units
	Damage      int     `json:"damage"`      // Contact damage per hit
	Points      int     `json:"points"`      // Base score for a kill
	Boss        bool    `json:"boss"`        // Boss kills also count as boss defeats
	SpawnWeight int     `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MobDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// MobsFile represents the structure of mobs.json.
type MobsFile struct {
	Mobs []MobDef `json:"mobs"`
}

// LoadMobs loads mob definitions from the embedded mobs.json file.
func LoadMobs() ([]MobDef, error) {
	file, err := Load[MobsFile]("mobs.json")
	if err != nil {
		return nil, err
	}
	return file.Mobs, nil
}

// MobRegistry holds loaded mob definitions and provides spawning utilities.
type MobRegistry struct {
	mobs        []MobDef
	totalWeight int
}

// NewMobRegistry creates a registry from loaded mob definitions.
func NewMobRegistry(mobs []MobDef) *MobRegistry {
	totalWeight := 0
	for _, m := range mobs {
		totalWeight += m.SpawnWeight
	}
	return &MobRegistry{
		mobs:        mobs,
		totalWeight: totalWeight,
	}
}

// LoadMobRegistry loads and creates a registry from the embedded mobs.json.
func LoadMobRegistry() (*MobRegistry, error) {
	mobs, err := LoadMobs()
	if err != nil {
		return nil, err
	}
	if len(mobs) == 0 {
		return nil, errors.New("no mobs loaded from mobs.json")
	}
	return NewMobRegistry(mobs), nil
}

// MustLoadMobRegistry loads a registry, panicking on error.
func MustLoadMobRegistry() *MobRegistry {
	registry, err := LoadMobRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random mob definition using weighted probability.
func (r *MobRegistry) SpawnRandom(rng *rand.Rand) *MobDef {
	if r.totalWeight <= 0 || len(r.mobs) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.mobs {
		cumulative += r.mobs[i].SpawnWeight
		if roll < cumulative {
			return &r.mobs[i]
		}
	}

	return &r.mobs[0]
}

// GetByID returns the mob definition with the given ID, or nil if not found.
func (r *MobRegistry) GetByID(id string) *MobDef {
	for i := range r.mobs {
		if r.mobs[i].ID == id {
			return &r.mobs[i]
		}
	}
	return nil
}

// All returns all mob definitions.
func (r *MobRegistry) All() []MobDef {
	return r.mobs
}

// Count returns the number of mob types in the registry.
func (r *MobRegistry) Count() int {
	return len(r.mobs)
}
