package gamedata

import "errors"

// LoadoutDef defines a selectable character loadout loaded from JSON.
type LoadoutDef struct {
	ID       string  `json:"id"`       // Unique identifier (e.g., "assault")
	Name     string  `json:"name"`     // Display name (e.g., "Assault")
	Symbol   string  `json:"symbol"`   // Single character for rendering (e.g., "@")
	Health   int     `json:"health"`   // Max health
	Speed    float64 `json:"speed"`    // Base movement speed per second
	Damage   float64 `json:"damage"`   // Damage per projectile
	FireRate float64 `json:"fireRate"` // Shots per second
	Ammo     int     `json:"ammo"`     // Magazine capacity
	Energy   int     `json:"energy"`   // Ability resource capacity
}

// SymbolRune returns the symbol as a rune for rendering.
func (l *LoadoutDef) SymbolRune() rune {
	if len(l.Symbol) == 0 {
		return '@'
	}
	return rune(l.Symbol[0])
}

// LoadoutsFile represents the structure of loadouts.json.
type LoadoutsFile struct {
	Loadouts []LoadoutDef `json:"loadouts"`
}

// LoadLoadouts loads loadout definitions from the embedded loadouts.json file.
func LoadLoadouts() ([]LoadoutDef, error) {
	file, err := Load[LoadoutsFile]("loadouts.json")
	if err != nil {
		return nil, err
	}
	if len(file.Loadouts) == 0 {
		return nil, errors.New("no loadouts loaded from loadouts.json")
	}
	return file.Loadouts, nil
}

// FindLoadout returns the loadout with the given ID from loadouts, or nil.
func FindLoadout(loadouts []LoadoutDef, id string) *LoadoutDef {
	for i := range loadouts {
		if loadouts[i].ID == id {
			return &loadouts[i]
		}
	}
	return nil
}
