package effect

import (
	"testing"
	"time"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/world"
)

// mockTarget records every call for verification.
type mockTarget struct {
	pos       world.Vec
	health    int
	shield    int
	ammo      int
	energy    int
	upgrades  map[string]float64
	pushes    []world.Vec
	modifiers Modifiers
}

func newMockTarget() *mockTarget {
	return &mockTarget{health: 100, upgrades: map[string]float64{}}
}

func (m *mockTarget) Position() world.Vec { return m.pos }
func (m *mockTarget) IsAlive() bool       { return m.health > 0 }
func (m *mockTarget) TakeDamage(n int) int {
	n = min(n, m.health)
	m.health -= n
	return n
}
func (m *mockTarget) Push(v world.Vec)        { m.pushes = append(m.pushes, v) }
func (m *mockTarget) Heal(n int) int          { m.health += n; return n }
func (m *mockTarget) AddShield(n int) int     { m.shield += n; return n }
func (m *mockTarget) RestoreAmmo(n int) int   { m.ammo += n; return n }
func (m *mockTarget) RestoreEnergy(n int) int { m.energy += n; return n }
func (m *mockTarget) Upgrade(stat string, f float64) bool {
	m.upgrades[stat] += f
	return true
}
func (m *mockTarget) MoveTo(p world.Vec) { m.pos = p }
func (m *mockTarget) AddModifier(mod Modifier, now time.Time) bool {
	return m.modifiers.Add(mod, now)
}
func (m *mockTarget) ExpireModifiers(now time.Time) []Modifier {
	return m.modifiers.Expire(now)
}

// mockDamageable only supports damage and impulses.
type mockDamageable struct {
	health int
	pushes int
}

func (m *mockDamageable) Position() world.Vec { return world.Vec{} }
func (m *mockDamageable) IsAlive() bool       { return m.health > 0 }
func (m *mockDamageable) TakeDamage(n int) int {
	n = min(n, m.health)
	m.health -= n
	return n
}
func (m *mockDamageable) Push(world.Vec) { m.pushes++ }

func TestApplierApply(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	a := NewApplier(clk)
	target := newMockTarget()

	tests := []struct {
		delta      Delta
		wantAmount float64
	}{
		{Damage(30, "spike_trap"), 30},
		{Heal(10, "health_station"), 10},
		{Shield(25, "shield_pylon"), 25},
		{Ammo(12, "ammo_depot"), 12},
		{Energy(20, "energy_crystal"), 20},
		{Upgrade("damage", 0.15, "weapon_forge"), 0.15},
	}

	for _, tt := range tests {
		r := a.Apply(target, tt.delta)
		if !r.Applied {
			t.Errorf("Apply(%s).Applied = false, want true", tt.delta.Kind)
		}
		if r.Amount != tt.wantAmount {
			t.Errorf("Apply(%s).Amount = %v, want %v", tt.delta.Kind, r.Amount, tt.wantAmount)
		}
	}

	if target.health != 80 {
		t.Errorf("health = %d, want 80", target.health)
	}
	if target.shield != 25 || target.ammo != 12 || target.energy != 20 {
		t.Errorf("shield/ammo/energy = %d/%d/%d, want 25/12/20", target.shield, target.ammo, target.energy)
	}
	if target.upgrades["damage"] != 0.15 {
		t.Errorf("upgrades[damage] = %v, want 0.15", target.upgrades["damage"])
	}
}

func TestApplierTeleportAndImpulse(t *testing.T) {
	a := NewApplier(nil)
	target := newMockTarget()

	a.Apply(target, Teleport(world.Vec{X: 10, Y: 20}, "teleporter"))
	a.Apply(target, Impulse(world.Vec{X: 5}, "bounce_pad"))

	if target.pos != (world.Vec{X: 10, Y: 20}) {
		t.Errorf("pos = %v, want {10 20}", target.pos)
	}
	if len(target.pushes) != 1 {
		t.Errorf("pushes = %d, want 1", len(target.pushes))
	}
}

func TestApplierDamageableSkipsTargetKinds(t *testing.T) {
	a := NewApplier(nil)
	mob := &mockDamageable{health: 50}

	results := a.ApplyAll(mob, []Delta{
		Damage(20, "explosive_barrel"),
		Impulse(world.Vec{X: 1}, "explosive_barrel"),
		Heal(10, "health_station"),
	})

	if !results[0].Applied || !results[1].Applied {
		t.Error("damage and impulse should apply to a Damageable")
	}
	if results[2].Applied {
		t.Error("heal should not apply to a Damageable")
	}
	if mob.health != 30 || mob.pushes != 1 {
		t.Errorf("mob health/pushes = %d/%d, want 30/1", mob.health, mob.pushes)
	}
}

func TestApplierNilTarget(t *testing.T) {
	a := NewApplier(nil)
	if r := a.Apply(nil, Damage(10, "x")); r.Applied {
		t.Error("Apply(nil) should not apply")
	}
	if got := a.Reconcile(nil); got != nil {
		t.Errorf("Reconcile(nil) = %v, want nil", got)
	}
}

func TestApplierTimedModifierReconcile(t *testing.T) {
	start := time.Unix(100, 0)
	clk := clock.NewManual(start)
	a := NewApplier(clk)
	target := newMockTarget()

	r := a.Apply(target, Timed(ModSpeed, 1.5, clk.Now(), 3*time.Second, "speed_zone"))
	if !r.Applied {
		t.Fatal("timed modifier should apply")
	}

	clk.Advance(2 * time.Second)
	if expired := a.Reconcile(target); len(expired) != 0 {
		t.Errorf("Reconcile() at 2s expired %d, want 0", len(expired))
	}

	clk.Advance(time.Second)
	if expired := a.Reconcile(target); len(expired) != 1 {
		t.Errorf("Reconcile() at 3s expired %d, want 1", len(expired))
	}
}
