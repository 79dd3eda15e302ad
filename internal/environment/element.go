package environment

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Element is a spawned environmental object.
type Element struct {
	ID        string
	Def       *gamedata.ArchetypeDef
	X, Y      float64
	Size      float64
	Health    int // Destructibles only
	MaxHealth int
	UsesLeft  int // Stations only
	Active    bool
	Cooldown  clock.Cooldown
	Phase     float64 // Animation phase in radians
}

func newElement(def *gamedata.ArchetypeDef, pos world.Vec) *Element {
	return &Element{
		ID:        uuid.NewString(),
		Def:       def,
		X:         pos.X,
		Y:         pos.Y,
		Size:      def.Size,
		Health:    def.Health,
		MaxHealth: def.Health,
		UsesLeft:  def.Uses,
		Active:    true,
	}
}

// Position returns the element's center.
func (e *Element) Position() world.Vec {
	return world.Vec{X: e.X, Y: e.Y}
}

// Class returns the element's behavioral class.
func (e *Element) Class() gamedata.ElementClass {
	return e.Def.Class
}

// Ready reports whether the element is off cooldown at now.
func (e *Element) Ready(now time.Time) bool {
	return e.Cooldown.Ready(now)
}

// StationReady reports whether a station can be used at now.
func (e *Element) StationReady(now time.Time) bool {
	return e.Active && e.Class() == gamedata.ClassStation && e.UsesLeft > 0 && e.Ready(now)
}

// Particle is a cosmetic spark emitted when an element triggers.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Seconds remaining
	Color  string
	Glyph  rune
}

// Prompt is the interaction hint for the nearest ready station.
type Prompt struct {
	ElementID string
	Name      string
	UsesLeft  int
}
