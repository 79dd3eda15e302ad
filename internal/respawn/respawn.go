// Package respawn runs the player's dead -> countdown -> alive cycle.
package respawn

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/telemetry"
	"github.com/samdwyer/survivalarena/internal/world"
)

const (
	// DefaultDelay is the time between death and respawn.
	DefaultDelay = 3 * time.Second
	// PollInterval is the minimum wall-clock time between Tick evaluations.
	PollInterval = 100 * time.Millisecond
)

// State is the controller's position in the respawn cycle.
type State int

const (
	StateAlive State = iota
	StateCounting
	StateResetting // Transient while the subject is being restored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateCounting:
		return "counting"
	case StateResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Subject is the entity being respawned.
type Subject interface {
	SpawnPoint() world.Vec
	MoveTo(p world.Vec)
	SetVisible(v bool)
	SetDead(d bool)
	RestoreHealth()
}

// Owner is the game whose state follows the respawn cycle.
type Owner interface {
	IsRespawning() bool
	ResumePlaying()
}

// Overlay is the data needed to draw the countdown.
type Overlay struct {
	Visible bool
	Seconds int
}

// Controller manages one subject's respawn at a time.
type Controller struct {
	clock clock.Clock
	delay time.Duration
	poll  time.Duration
	owner Owner

	state      State
	subject    Subject
	spawn      world.Vec
	countdown  clock.Countdown
	onComplete func()
	lastPoll   time.Time
}

// NewController creates a controller. A non-positive delay uses DefaultDelay.
func NewController(c clock.Clock, delay time.Duration) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Controller{
		clock: clock.Or(c),
		delay: delay,
		poll:  PollInterval,
	}
}

// SetOwner sets the game resumed when a respawn completes.
func (c *Controller) SetOwner(o Owner) { c.owner = o }

// Delay returns the configured respawn delay.
func (c *Controller) Delay() time.Duration { return c.delay }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// IsRespawning reports whether a countdown is running.
func (c *Controller) IsRespawning() bool { return c.state == StateCounting }

// Start begins a respawn countdown for s. It returns false and does nothing if a
// countdown is already running or s is nil.
func (c *Controller) Start(ctx context.Context, s Subject, onComplete func()) bool {
	if c.state != StateAlive || s == nil {
		return false
	}

	tracer := telemetry.Tracer("respawn")
	_, span := tracer.Start(ctx, "respawn.start")
	defer span.End()

	now := c.clock.Now()
	c.state = StateCounting
	c.subject = s
	c.spawn = s.SpawnPoint()
	c.countdown = clock.NewCountdown(now, c.delay)
	c.onComplete = onComplete
	c.lastPoll = now

	s.SetVisible(false)
	s.SetDead(true)

	span.SetAttributes(
		attribute.Int64("delay_ms", c.delay.Milliseconds()),
		attribute.Float64("spawn_x", c.spawn.X),
		attribute.Float64("spawn_y", c.spawn.Y),
	)
	return true
}

// Tick evaluates the countdown if at least PollInterval has passed since the last
// evaluation. Returns true if the respawn completed.
func (c *Controller) Tick(ctx context.Context) bool {
	if c.state != StateCounting {
		return false
	}
	now := c.clock.Now()
	if now.Sub(c.lastPoll) < c.poll {
		return false
	}
	c.lastPoll = now
	return c.evaluate(ctx, now)
}

// UpdateCountdown evaluates the countdown immediately. Returns true if the respawn
// completed.
func (c *Controller) UpdateCountdown(ctx context.Context) bool {
	if c.state != StateCounting {
		return false
	}
	return c.evaluate(ctx, c.clock.Now())
}

func (c *Controller) evaluate(ctx context.Context, now time.Time) bool {
	if !c.countdown.Expired(now) {
		return false
	}
	c.complete(ctx)
	return true
}

func (c *Controller) complete(ctx context.Context) {
	tracer := telemetry.Tracer("respawn")
	_, span := tracer.Start(ctx, "respawn.complete")
	defer span.End()

	c.state = StateResetting
	s, cb := c.subject, c.onComplete

	s.RestoreHealth()
	s.MoveTo(c.spawn)
	s.SetDead(false)
	s.SetVisible(true)

	c.reset()

	if cb != nil {
		cb()
	}
	if c.owner != nil && c.owner.IsRespawning() {
		c.owner.ResumePlaying()
	}
}

// Cancel stops a running countdown without restoring the subject.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = StateAlive
	c.subject = nil
	c.onComplete = nil
	c.countdown = clock.Countdown{}
	c.lastPoll = time.Time{}
}

// Remaining returns the time left on the countdown, or 0 when not counting.
func (c *Controller) Remaining() time.Duration {
	if c.state != StateCounting {
		return 0
	}
	return c.countdown.Remaining(c.clock.Now())
}

// Seconds returns the countdown rounded up to whole seconds.
func (c *Controller) Seconds() int {
	return clock.CeilSeconds(c.Remaining())
}

// Overlay returns what the countdown overlay should show. It has no side effects.
func (c *Controller) Overlay() Overlay {
	secs := c.Seconds()
	return Overlay{
		Visible: c.state == StateCounting && secs > 0,
		Seconds: secs,
	}
}
