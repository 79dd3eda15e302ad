package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/storage"
	"github.com/samdwyer/survivalarena/internal/telemetry"
	"github.com/samdwyer/survivalarena/internal/ui"
	"github.com/samdwyer/survivalarena/internal/world"
)

// A key press keeps the player moving this long, since terminals report no key-up.
const moveHold = 0.15

// Game runs a Session in the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	cfg      Config
	logger   logrus.FieldLogger

	moveDir  world.Vec
	moveLeft float64
	running  bool
}

// New creates a new game instance on the real terminal.
func New(cfg Config, kv storage.KV, logger logrus.FieldLogger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := NewWithScreen(cfg, kv, logger, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to screen.
func NewWithScreen(cfg Config, kv storage.KV, logger logrus.FieldLogger, screen *ui.Screen) (*Game, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	session, err := NewSession(cfg, kv, clock.Real{}, logger)
	if err != nil {
		return nil, err
	}
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
		cfg:      cfg,
		logger:   logger.WithField("component", "game"),
		running:  true,
	}, nil
}

// Session returns the simulation the game drives.
func (g *Game) Session() *Session { return g.session }

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	if err := g.session.Start(ctx); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("mode", string(g.cfg.Mode)))

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(g.cfg.TickRate)
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		g.renderer.Render(BuildFrame(g.session))

		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.step(ctx, dt)
		}
	}

	g.session.End(ctx)
	g.screen.Close()
	return nil
}

func (g *Game) step(ctx context.Context, dt float64) {
	if g.moveLeft > 0 {
		g.session.Move(g.moveDir, dt)
		g.moveLeft -= dt
	}
	g.session.Tick(ctx, dt)
}

func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyUp:
		g.steer(0, -1)
	case tcell.KeyDown:
		g.steer(0, 1)
	case tcell.KeyLeft:
		g.steer(-1, 0)
	case tcell.KeyRight:
		g.steer(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'w', 'W':
			g.steer(0, -1)
		case 's', 'S':
			g.steer(0, 1)
		case 'a', 'A':
			g.steer(-1, 0)
		case 'd', 'D':
			g.steer(1, 0)
		case ' ':
			g.session.Fire()
		case 'e', 'E':
			g.session.Interact(ctx)
		case 'r', 'R':
			if g.session.State() == StateRoundOver {
				if err := g.session.Start(ctx); err != nil {
					g.logger.WithError(err).Error("failed to restart round")
				}
			}
		}
	}
}

func (g *Game) steer(dx, dy float64) {
	g.moveDir = world.Vec{X: dx, Y: dy}
	g.moveLeft = moveHold
	// Face the new direction immediately so a shot fired before the next tick goes that way.
	g.session.Move(g.moveDir, 0)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
