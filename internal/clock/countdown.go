package clock

import "time"

// Countdown is a fixed-length interval anchored at a wall-clock start time.
type Countdown struct {
	Start time.Time
	Total time.Duration
}

// NewCountdown creates a countdown of length total starting at start.
func NewCountdown(start time.Time, total time.Duration) Countdown {
	return Countdown{Start: start, Total: total}
}

// Elapsed returns how much of the countdown has passed at now.
// Times before Start count as zero elapsed.
func (c Countdown) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(c.Start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns max(0, Total - Elapsed).
func (c Countdown) Remaining(now time.Time) time.Duration {
	remaining := c.Total - c.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether no time remains.
func (c Countdown) Expired(now time.Time) bool {
	return c.Remaining(now) <= 0
}

// Seconds returns the remaining time rounded up to whole seconds, as shown on a HUD.
func (c Countdown) Seconds(now time.Time) int {
	return CeilSeconds(c.Remaining(now))
}

// CeilSeconds rounds d up to whole seconds. Negative durations yield 0.
func CeilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

// Cooldown tracks when something becomes usable again.
// The zero value is ready immediately.
type Cooldown struct {
	readyAt time.Time
}

// Ready reports whether the cooldown has elapsed at now.
func (c Cooldown) Ready(now time.Time) bool {
	return !now.Before(c.readyAt)
}

// Reset starts a new cooldown of length d at now.
func (c *Cooldown) Reset(now time.Time, d time.Duration) {
	c.readyAt = now.Add(d)
}

// Remaining returns the time left before the cooldown is ready.
func (c Cooldown) Remaining(now time.Time) time.Duration {
	if c.Ready(now) {
		return 0
	}
	return c.readyAt.Sub(now)
}

// ReadyAt returns the timestamp at which the cooldown expires.
func (c Cooldown) ReadyAt() time.Time {
	return c.readyAt
}
