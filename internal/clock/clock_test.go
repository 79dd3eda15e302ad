package clock

import (
	"testing"
	"time"
)

func TestCeilSeconds(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Millisecond, 1},
		{999 * time.Millisecond, 1},
		{time.Second, 1},
		{1001 * time.Millisecond, 2},
		{3 * time.Second, 3},
	}

	for _, tt := range tests {
		got := CeilSeconds(tt.input)
		if got != tt.expected {
			t.Errorf("CeilSeconds(%v) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestCountdownRemaining(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewCountdown(start, 3*time.Second)

	if got := c.Remaining(start); got != 3*time.Second {
		t.Errorf("Remaining(start) = %v, want 3s", got)
	}
	if got := c.Seconds(start.Add(500 * time.Millisecond)); got != 3 {
		t.Errorf("Seconds(+0.5s) = %d, want 3", got)
	}
	if got := c.Seconds(start.Add(2100 * time.Millisecond)); got != 1 {
		t.Errorf("Seconds(+2.1s) = %d, want 1", got)
	}
	if c.Expired(start.Add(2999 * time.Millisecond)) {
		t.Error("Countdown should not be expired before total elapses")
	}
	if !c.Expired(start.Add(3 * time.Second)) {
		t.Error("Countdown should be expired once total elapses")
	}
	if got := c.Remaining(start.Add(time.Hour)); got != 0 {
		t.Errorf("Remaining long after = %v, want 0", got)
	}
	if got := c.Elapsed(start.Add(-time.Second)); got != 0 {
		t.Errorf("Elapsed before start = %v, want 0", got)
	}
}

func TestCooldown(t *testing.T) {
	now := time.Unix(0, 0)
	var cd Cooldown

	if !cd.Ready(now) {
		t.Fatal("zero Cooldown should be ready")
	}

	cd.Reset(now, 2*time.Second)
	if cd.Ready(now.Add(time.Second)) {
		t.Error("Cooldown should not be ready after 1s of 2s")
	}
	if got := cd.Remaining(now.Add(500 * time.Millisecond)); got != 1500*time.Millisecond {
		t.Errorf("Remaining = %v, want 1.5s", got)
	}
	if !cd.Ready(now.Add(2 * time.Second)) {
		t.Error("Cooldown should be ready at exactly its expiry")
	}
}

func TestManualClock(t *testing.T) {
	start := time.Unix(50, 0)
	m := NewManual(start)
	m.Advance(1500 * time.Millisecond)
	if got := m.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("Advance moved clock by %v, want 1.5s", got)
	}

	if _, ok := Or(nil).(Real); !ok {
		t.Error("Or(nil) should fall back to Real")
	}
	if Or(m) != Clock(m) {
		t.Error("Or(m) should return m")
	}
}
