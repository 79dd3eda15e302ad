package entity

import (
	"testing"
	"time"

	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/world"
)

func TestNewPlayerFromLoadout(t *testing.T) {
	def := &gamedata.LoadoutDef{
		ID: "tank", Name: "Tank", Symbol: "T",
		Health: 150, Speed: 160, Damage: 14, FireRate: 2.5, Ammo: 20, Energy: 80,
	}
	p := NewPlayerFromLoadout("Sam", def, world.Vec{X: 400, Y: 300})

	if p.MaxHealth != 150 || p.Health != 150 {
		t.Errorf("health = %d/%d, want 150/150", p.Health, p.MaxHealth)
	}
	if p.BaseSpeed != 160 || p.Speed != 160 {
		t.Errorf("speed = %v/%v, want 160/160", p.Speed, p.BaseSpeed)
	}
	if p.MaxAmmo != 20 || p.Symbol != 'T' {
		t.Errorf("MaxAmmo/Symbol = %d/%c, want 20/T", p.MaxAmmo, p.Symbol)
	}
	if p.SpawnPoint() != (world.Vec{X: 400, Y: 300}) {
		t.Errorf("SpawnPoint() = %v, want {400 300}", p.SpawnPoint())
	}
	if !p.Visible || p.Dead {
		t.Error("new player should be visible and alive")
	}
}

func TestNewPlayerFromNilLoadout(t *testing.T) {
	p := NewPlayerFromLoadout("Sam", nil, world.Vec{})
	if p.MaxHealth != 100 {
		t.Errorf("MaxHealth = %d, want default 100", p.MaxHealth)
	}
}

func TestPlayerTakeDamage(t *testing.T) {
	now := time.Unix(0, 0)

	tests := []struct {
		name       string
		shield     int
		modifier   *effect.Modifier
		damage     int
		wantLost   int
		wantShield int
	}{
		{"plain", 0, nil, 30, 30, 0},
		{"shield absorbs", 20, nil, 30, 10, 0},
		{"shield covers all", 50, nil, 30, 0, 20},
		{"shield field halves", 0, &effect.Modifier{Kind: effect.ModShieldField, Value: 0.5, ExpiresAt: now.Add(time.Second)}, 30, 15, 0},
		{"invulnerable", 0, &effect.Modifier{Kind: effect.ModInvulnerable, ExpiresAt: now.Add(time.Second)}, 30, 0, 0},
		{"capped at health", 0, nil, 500, 100, 0},
		{"non-positive", 0, nil, -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("p", world.Vec{})
			p.Shield = tt.shield
			if tt.modifier != nil {
				p.AddModifier(*tt.modifier, now)
			}
			got := p.TakeDamage(tt.damage)
			if got != tt.wantLost {
				t.Errorf("TakeDamage(%d) = %d, want %d", tt.damage, got, tt.wantLost)
			}
			if p.Shield != tt.wantShield {
				t.Errorf("Shield = %d, want %d", p.Shield, tt.wantShield)
			}
		})
	}
}

func TestPlayerHealCapped(t *testing.T) {
	p := NewPlayer("p", world.Vec{})
	p.Health = 90
	if got := p.Heal(40); got != 10 {
		t.Errorf("Heal(40) = %d, want 10", got)
	}
	if p.Health != p.MaxHealth {
		t.Errorf("Health = %d, want %d", p.Health, p.MaxHealth)
	}
}

func TestPlayerRestoreAmmo(t *testing.T) {
	p := NewPlayer("p", world.Vec{})
	p.Ammo = 5

	if got := p.RestoreAmmo(10); got != 10 || p.Ammo != 15 {
		t.Errorf("RestoreAmmo(10) = %d (ammo %d), want 10 (15)", got, p.Ammo)
	}
	if got := p.RestoreAmmo(0); got != 15 || p.Ammo != p.MaxAmmo {
		t.Errorf("RestoreAmmo(0) = %d (ammo %d), want refill", got, p.Ammo)
	}
}

func TestPlayerUpgrade(t *testing.T) {
	p := NewPlayer("p", world.Vec{})

	if !p.Upgrade(StatDamage, 0.5) || p.Damage != 15 {
		t.Errorf("Upgrade(damage) Damage = %v, want 15", p.Damage)
	}
	if !p.Upgrade(StatSpeed, 0.5) || p.Speed != 300 {
		t.Errorf("Upgrade(speed) Speed = %v, want 300", p.Speed)
	}
	if p.Upgrade("luck", 0.5) {
		t.Error("Upgrade(luck) should be rejected")
	}
}

func TestPlayerSpeedModifiers(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewPlayer("p", world.Vec{})

	p.AddModifier(effect.Modifier{Kind: effect.ModSlow, Value: 0.5, ExpiresAt: now.Add(2 * time.Second)}, now)
	if p.Speed != 100 {
		t.Errorf("slowed Speed = %v, want 100", p.Speed)
	}

	p.ExpireModifiers(now.Add(2 * time.Second))
	if p.Speed != p.BaseSpeed {
		t.Errorf("restored Speed = %v, want %v", p.Speed, p.BaseSpeed)
	}
}

func TestPlayerStepClampsToArena(t *testing.T) {
	arena := world.NewArena(100, 100, nil)
	p := NewPlayer("p", world.Vec{X: 95, Y: 50})
	p.Push(world.Vec{X: 1000})

	p.Step(1, arena)

	if p.X != 100 {
		t.Errorf("X = %v, want 100", p.X)
	}
	if p.VX != 1000*VelocityDamping {
		t.Errorf("VX = %v, want %v", p.VX, 1000*VelocityDamping)
	}
}
