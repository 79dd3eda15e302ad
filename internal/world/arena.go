// Package world provides arena geometry and spawn placement.
package world

import (
	"math"
	"math/rand"
)

const (
	// Default arena dimensions in world units.
	DefaultWidth  = 800
	DefaultHeight = 600

	// DefaultPlacementAttempts bounds the resampling loop in PlaceAwayFrom.
	DefaultPlacementAttempts = 30

	// TeleportMargin keeps teleport destinations off the arena edge.
	TeleportMargin = 20
)

// Vec is a point or offset in arena coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the vector's length.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns a unit vector in v's direction, or the zero vector.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Arena is the rectangular play field.
type Arena struct {
	Width  float64
	Height float64
	rng    *rand.Rand
}

// NewArena creates an arena of the given size. Randomness comes from rng.
func NewArena(width, height float64, rng *rand.Rand) *Arena {
	return &Arena{
		Width:  width,
		Height: height,
		rng:    rng,
	}
}

// Center returns the middle of the arena.
func (a *Arena) Center() Vec {
	return Vec{a.Width / 2, a.Height / 2}
}

// Contains returns true if p lies inside the arena.
func (a *Arena) Contains(p Vec) bool {
	return p.X >= 0 && p.X <= a.Width && p.Y >= 0 && p.Y <= a.Height
}

// Clamp moves p inside the arena, keeping margin from every edge.
func (a *Arena) Clamp(p Vec, margin float64) Vec {
	return Vec{
		X: clamp(p.X, margin, a.Width-margin),
		Y: clamp(p.Y, margin, a.Height-margin),
	}
}

// RandomPoint returns a uniform point inside the arena inset by inset on every side.
// If the inset leaves no room, the center is returned.
func (a *Arena) RandomPoint(inset float64) Vec {
	w := a.Width - 2*inset
	h := a.Height - 2*inset
	if w <= 0 || h <= 0 {
		return a.Center()
	}
	return Vec{
		X: inset + a.rng.Float64()*w,
		Y: inset + a.rng.Float64()*h,
	}
}

// RandomOffset returns a uniform offset with each axis in [-r, r].
func (a *Arena) RandomOffset(r float64) Vec {
	return Vec{
		X: (a.rng.Float64()*2 - 1) * r,
		Y: (a.rng.Float64()*2 - 1) * r,
	}
}

// PlaceAwayFrom samples up to attempts random points (inset from the edges) and
// returns the first one at least minDist from avoid. A nil avoid accepts the first
// sample. ok is false if every attempt landed too close.
func (a *Arena) PlaceAwayFrom(inset float64, avoid *Vec, minDist float64, attempts int) (p Vec, ok bool) {
	if attempts <= 0 {
		attempts = DefaultPlacementAttempts
	}

	for i := 0; i < attempts; i++ {
		p = a.RandomPoint(inset)
		if avoid == nil || Distance(p, *avoid) >= minDist {
			return p, true
		}
	}
	return Vec{}, false
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
