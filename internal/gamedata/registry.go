package gamedata

import (
	"errors"
	"math/rand"
)

// ArchetypeRegistry holds element archetypes and draws from them by ticket.
type ArchetypeRegistry struct {
	archetypes   []ArchetypeDef
	byID         map[string]*ArchetypeDef
	totalTickets int
}

// NewArchetypeRegistry creates a registry from loaded archetype definitions.
func NewArchetypeRegistry(archetypes []ArchetypeDef) *ArchetypeRegistry {
	registry := &ArchetypeRegistry{
		archetypes: archetypes,
		byID:       make(map[string]*ArchetypeDef, len(archetypes)),
	}
	for i := range archetypes {
		registry.byID[archetypes[i].ID] = &archetypes[i]
		registry.totalTickets += archetypes[i].Tickets()
	}
	return registry
}

// LoadArchetypeRegistry loads and creates a registry from the embedded elements.json.
func LoadArchetypeRegistry() (*ArchetypeRegistry, error) {
	archetypes, err := LoadArchetypes()
	if err != nil {
		return nil, err
	}
	if len(archetypes) == 0 {
		return nil, errors.New("no archetypes loaded from elements.json")
	}
	return NewArchetypeRegistry(archetypes), nil
}

// MustLoadArchetypeRegistry loads a registry, panicking on error.
func MustLoadArchetypeRegistry() *ArchetypeRegistry {
	registry, err := LoadArchetypeRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom draws one ticket uniformly from the pool and returns its archetype.
// Returns nil when no archetype holds any tickets.
func (r *ArchetypeRegistry) SpawnRandom(rng *rand.Rand) *ArchetypeDef {
	if r.totalTickets <= 0 {
		return nil
	}

	ticket := rng.Intn(r.totalTickets)

	cumulative := 0
	for i := range r.archetypes {
		cumulative += r.archetypes[i].Tickets()
		if ticket < cumulative {
			return &r.archetypes[i]
		}
	}

	return nil
}

// GetByID returns the archetype with the given ID, or nil if not found.
func (r *ArchetypeRegistry) GetByID(id string) *ArchetypeDef {
	return r.byID[id]
}

// ByClass returns all archetypes of the given class.
func (r *ArchetypeRegistry) ByClass(class ElementClass) []*ArchetypeDef {
	var result []*ArchetypeDef
	for i := range r.archetypes {
		if r.archetypes[i].Class == class {
			result = append(result, &r.archetypes[i])
		}
	}
	return result
}

// All returns all archetype definitions.
func (r *ArchetypeRegistry) All() []ArchetypeDef {
	return r.archetypes
}

// Count returns the number of archetypes in the registry.
func (r *ArchetypeRegistry) Count() int {
	return len(r.archetypes)
}

// TotalTickets returns the size of the selection pool.
func (r *ArchetypeRegistry) TotalTickets() int {
	return r.totalTickets
}
