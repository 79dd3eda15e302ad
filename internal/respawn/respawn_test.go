package respawn

import (
	"context"
	"testing"
	"time"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/world"
)

// mockSubject is a minimal player for respawn tests.
type mockSubject struct {
	pos       world.Vec
	spawn     world.Vec
	health    int
	maxHealth int
	visible   bool
	dead      bool
}

func newMockSubject() *mockSubject {
	return &mockSubject{
		pos:       world.Vec{X: 10, Y: 10},
		spawn:     world.Vec{X: 400, Y: 300},
		maxHealth: 100,
		visible:   true,
	}
}

func (m *mockSubject) SpawnPoint() world.Vec { return m.spawn }
func (m *mockSubject) MoveTo(p world.Vec)    { m.pos = p }
func (m *mockSubject) SetVisible(v bool)     { m.visible = v }
func (m *mockSubject) SetDead(d bool)        { m.dead = d }
func (m *mockSubject) RestoreHealth()        { m.health = m.maxHealth }

// mockOwner records resume calls.
type mockOwner struct {
	respawning bool
	resumed    int
}

func (o *mockOwner) IsRespawning() bool { return o.respawning }
func (o *mockOwner) ResumePlaying()     { o.resumed++; o.respawning = false }

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateAlive, "alive"},
		{StateCounting, "counting"},
		{StateResetting, "resetting"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestRespawnRoundTrip(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(100, 0))
	c := NewController(clk, 3*time.Second)
	owner := &mockOwner{respawning: true}
	c.SetOwner(owner)
	s := newMockSubject()

	calls := 0
	if !c.Start(ctx, s, func() { calls++ }) {
		t.Fatal("Start() = false, want true")
	}
	if s.visible || !s.dead {
		t.Error("subject should be hidden and dead after Start")
	}

	for i := 0; i < 29; i++ {
		clk.Advance(100 * time.Millisecond)
		if c.UpdateCountdown(ctx) {
			t.Fatalf("completed early at poll %d", i+1)
		}
	}

	clk.Advance(100 * time.Millisecond)
	if !c.UpdateCountdown(ctx) {
		t.Fatal("UpdateCountdown() after delay = false, want true")
	}
	c.UpdateCountdown(ctx)

	if !s.visible || s.dead {
		t.Error("subject should be visible and alive after respawn")
	}
	if s.health != s.maxHealth {
		t.Errorf("health = %d, want %d", s.health, s.maxHealth)
	}
	if s.pos != s.spawn {
		t.Errorf("pos = %v, want spawn %v", s.pos, s.spawn)
	}
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1", calls)
	}
	if owner.resumed != 1 {
		t.Errorf("owner resumed %d times, want 1", owner.resumed)
	}
	if c.IsRespawning() {
		t.Error("controller should be alive")
	}
}

func TestStartIgnoresReentry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	c := NewController(clk, time.Second)

	first := newMockSubject()
	second := newMockSubject()
	second.spawn = world.Vec{X: 1, Y: 1}

	c.Start(ctx, first, nil)
	if c.Start(ctx, second, nil) {
		t.Error("second Start() = true, want false")
	}
	if !second.visible {
		t.Error("second subject should be untouched")
	}
}

func TestSpawnPointCapturedAtStart(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	c := NewController(clk, time.Second)
	s := newMockSubject()

	c.Start(ctx, s, nil)
	s.spawn = world.Vec{X: 5, Y: 5}
	clk.Advance(time.Second)
	c.UpdateCountdown(ctx)

	if s.pos != (world.Vec{X: 400, Y: 300}) {
		t.Errorf("pos = %v, want spawn captured at start", s.pos)
	}
}

func TestTickIsPollGated(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	c := NewController(clk, 50*time.Millisecond)
	s := newMockSubject()
	c.Start(ctx, s, nil)

	clk.Advance(60 * time.Millisecond)
	if c.Tick(ctx) {
		t.Error("Tick() before poll interval should not evaluate")
	}

	clk.Advance(40 * time.Millisecond)
	if !c.Tick(ctx) {
		t.Error("Tick() at poll interval should complete")
	}
}

func TestCancelLeavesSubject(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	c := NewController(clk, time.Second)
	s := newMockSubject()
	called := false

	c.Start(ctx, s, func() { called = true })
	c.Cancel()
	clk.Advance(2 * time.Second)
	c.UpdateCountdown(ctx)

	if c.IsRespawning() {
		t.Error("IsRespawning() after Cancel = true")
	}
	if s.visible || called {
		t.Error("Cancel should not restore the subject or run the callback")
	}
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Unix(0, 0))
	c := NewController(clk, 3*time.Second)

	if o := c.Overlay(); o.Visible {
		t.Error("overlay visible while alive")
	}

	c.Start(ctx, newMockSubject(), nil)
	tests := []struct {
		advance time.Duration
		want    Overlay
	}{
		{0, Overlay{Visible: true, Seconds: 3}},
		{500 * time.Millisecond, Overlay{Visible: true, Seconds: 3}},
		{time.Second, Overlay{Visible: true, Seconds: 2}},
		{1400 * time.Millisecond, Overlay{Visible: true, Seconds: 1}},
		{100 * time.Millisecond, Overlay{Visible: false, Seconds: 0}},
	}
	for _, tt := range tests {
		clk.Advance(tt.advance)
		if got := c.Overlay(); got != tt.want {
			t.Errorf("Overlay() after +%v = %+v, want %+v", tt.advance, got, tt.want)
		}
	}
}

func TestDefaultDelay(t *testing.T) {
	c := NewController(nil, 0)
	if c.Delay() != DefaultDelay {
		t.Errorf("Delay() = %v, want %v", c.Delay(), DefaultDelay)
	}
}
