package entity

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/survivalarena/internal/world"
)

func TestProjectileStep(t *testing.T) {
	p := NewProjectile(world.Vec{X: 100, Y: 100}, world.Vec{X: 3, Y: 0}, 12, true)

	p.Step(0.1, nil)

	if p.X != 150 || p.Y != 100 {
		t.Errorf("position = (%v, %v), want (150, 100)", p.X, p.Y)
	}
	if !p.IsActive() {
		t.Error("IsActive() = false after one step, want true")
	}
	if p.DamageAmount() != 12 || !p.PlayerOwned() {
		t.Errorf("DamageAmount() = %d, PlayerOwned() = %v", p.DamageAmount(), p.PlayerOwned())
	}
}

func TestProjectileExpires(t *testing.T) {
	arena := world.NewArena(800, 600, rand.New(rand.NewSource(1)))

	tests := []struct {
		name string
		from world.Vec
		dt   float64
	}{
		{"lifetime", world.Vec{X: 10, Y: 300}, ProjectileLifetime},
		{"leaves arena", world.Vec{X: 790, Y: 300}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjectile(tt.from, world.Vec{X: 1}, 1, true)
			if tt.name == "lifetime" {
				p.VX = 0
			}
			p.Step(tt.dt, arena)
			if p.IsActive() {
				t.Error("IsActive() = true, want false")
			}
		})
	}
}

func TestProjectileSpend(t *testing.T) {
	p := NewProjectile(world.Vec{}, world.Vec{Y: 1}, 1, false)
	p.Spend()
	p.Step(0.1, nil)

	if p.IsActive() {
		t.Error("spent projectile is active")
	}
	if p.Y != 0 {
		t.Errorf("spent projectile moved to y=%v", p.Y)
	}
}
