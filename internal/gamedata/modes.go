package gamedata

import (
	"errors"
	"time"
)

// ModeID identifies a round mode in the catalog.
type ModeID string

const (
	ModeTimeAttack  ModeID = "time_based"
	ModeTeamBattle  ModeID = "team_battle"
	ModePlaceholder ModeID = "placeholder"
)

// TeamDef describes one side of a team battle.
type TeamDef struct {
	ID    string `json:"id"`    // Team identifier (e.g., "blue")
	Name  string `json:"name"`  // Display name (e.g., "Blue Squad")
	Color string `json:"color"` // Hex color used on the HUD
}

// ModeDef defines a round mode loaded from JSON.
type ModeDef struct {
	ID                   ModeID    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	DurationSeconds      *float64  `json:"durationSeconds"` // nil means untimed
	ScoreMultiplier      float64   `json:"scoreMultiplier"`
	SpawnRateMultiplier  float64   `json:"spawnRateMultiplier"`
	DifficultyMultiplier float64   `json:"difficultyMultiplier"`
	Features             []string  `json:"features"`
	Teams                []TeamDef `json:"teams,omitempty"`
	MaxTeamSize          int       `json:"maxTeamSize,omitempty"`
}

// Timed returns true if the mode has a finite duration.
func (m *ModeDef) Timed() bool {
	return m.DurationSeconds != nil && *m.DurationSeconds > 0
}

// Duration returns the mode's length, or 0 for untimed modes.
func (m *ModeDef) Duration() time.Duration {
	if !m.Timed() {
		return 0
	}
	return time.Duration(*m.DurationSeconds * float64(time.Second))
}

// ModesFile represents the structure of modes.json.
type ModesFile struct {
	Modes []ModeDef `json:"modes"`
}

// LoadModes loads mode definitions from the embedded modes.json file.
func LoadModes() ([]ModeDef, error) {
	file, err := Load[ModesFile]("modes.json")
	if err != nil {
		return nil, err
	}
	return file.Modes, nil
}

// ModeCatalog is the fixed set of selectable round modes.
type ModeCatalog struct {
	modes map[ModeID]*ModeDef
	all   []ModeDef
}

// NewModeCatalog creates a catalog from loaded mode definitions.
func NewModeCatalog(modes []ModeDef) *ModeCatalog {
	catalog := &ModeCatalog{
		modes: make(map[ModeID]*ModeDef, len(modes)),
		all:   modes,
	}
	for i := range modes {
		catalog.modes[modes[i].ID] = &modes[i]
	}
	return catalog
}

// LoadModeCatalog loads and creates a catalog from the embedded modes.json.
func LoadModeCatalog() (*ModeCatalog, error) {
	modes, err := LoadModes()
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		return nil, errors.New("no modes loaded from modes.json")
	}
	return NewModeCatalog(modes), nil
}

// MustLoadModeCatalog loads a catalog, panicking on error.
func MustLoadModeCatalog() *ModeCatalog {
	catalog, err := LoadModeCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// GetByID returns the mode definition with the given ID, or nil if not found.
func (c *ModeCatalog) GetByID(id ModeID) *ModeDef {
	return c.modes[id]
}

// All returns all mode definitions in catalog order.
func (c *ModeCatalog) All() []ModeDef {
	return c.all
}

// Count returns the number of modes in the catalog.
func (c *ModeCatalog) Count() int {
	return len(c.all)
}
