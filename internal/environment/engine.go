// Package environment spawns and runs the arena's environmental elements:
// destructibles, stations, traps and dynamic fields.
//
// The engine never writes to the player or mobs directly. It describes every
// effect as an effect.Delta and hands it to an effect.Applier.
package environment

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/telemetry"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Config tunes spawning and interaction.
type Config struct {
	MaxElements       int
	InitialCount      int
	SpawnInterval     time.Duration
	SpawnChance       float64 // Probability of a spawn each interval
	MinSpawnDistance  float64 // Exclusion radius around the player
	InteractionRadius float64 // Stations show a prompt inside this radius
	ContactRadius     float64 // Stations trigger automatically inside this radius
	DynamicReach      float64 // Added to size for dynamic element range
	PlacementAttempts int
	ParticleDamping   float64
	KnockbackScale    float64 // Converts archetype knockback to velocity
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MaxElements:       15,
		InitialCount:      8,
		SpawnInterval:     10 * time.Second,
		SpawnChance:       0.3,
		MinSpawnDistance:  150,
		InteractionRadius: 60,
		ContactRadius:     25,
		DynamicReach:      20,
		PlacementAttempts: world.DefaultPlacementAttempts,
		ParticleDamping:   0.95,
		KnockbackScale:    30,
	}
}

// ScoreSink receives points for destroyed elements.
type ScoreSink interface {
	AddScore(points int, reason string) int
}

// PowerUpSpawner drops power-ups where loot elements are destroyed.
type PowerUpSpawner interface {
	SpawnPowerUp(kind string, x, y float64)
}

// Projectile is a shot that can hit destructible elements.
type Projectile interface {
	Position() world.Vec
	IsActive() bool
	PlayerOwned() bool
	DamageAmount() int
	Spend()
}

// Scene is what the engine sees each tick. Any field may be empty.
type Scene struct {
	Player      effect.Target
	Mobs        []effect.Damageable
	Projectiles []Projectile
}

// Report summarizes one tick or interaction.
type Report struct {
	Applied      []effect.Result     // Deltas applied to the player
	Score        int                 // Points awarded for destruction
	PlayerDamage int                 // Health the player lost to elements
	DamageDealt  int                 // Projectile damage absorbed by elements
	Killed       []effect.Damageable // Mobs killed by element effects
	Destroyed    []*Element
	Spawned      []*Element
	Stations     []*Element // Stations used
	Prompt       *Prompt
}

func (r *Report) merge(o Report) {
	r.Applied = append(r.Applied, o.Applied...)
	r.Score += o.Score
	r.PlayerDamage += o.PlayerDamage
	r.DamageDealt += o.DamageDealt
	r.Killed = append(r.Killed, o.Killed...)
	r.Destroyed = append(r.Destroyed, o.Destroyed...)
	r.Spawned = append(r.Spawned, o.Spawned...)
	r.Stations = append(r.Stations, o.Stations...)
}

// Engine owns the element list.
type Engine struct {
	cfg      Config
	registry *gamedata.ArchetypeRegistry
	arena    *world.Arena
	rng      *rand.Rand
	clock    clock.Clock
	applier  *effect.Applier
	score    ScoreSink
	spawner  PowerUpSpawner
	logger   logrus.FieldLogger

	elements   []*Element
	particles  []Particle
	spawnTimer time.Duration
	prompt     *Prompt
}

// Option configures an Engine.
type Option func(*Engine)

// WithScoreSink sets where destruction points go.
func WithScoreSink(s ScoreSink) Option {
	return func(e *Engine) { e.score = s }
}

// WithPowerUpSpawner sets the loot spawner.
func WithPowerUpSpawner(s PowerUpSpawner) Option {
	return func(e *Engine) { e.spawner = s }
}

// WithLogger sets the engine's logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine spawning from registry into arena.
func NewEngine(cfg Config, registry *gamedata.ArchetypeRegistry, arena *world.Arena, rng *rand.Rand, c clock.Clock, opts ...Option) *Engine {
	c = clock.Or(c)
	e := &Engine{
		cfg:      cfg,
		registry: registry,
		arena:    arena,
		rng:      rng,
		clock:    c,
		applier:  effect.NewApplier(c),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithField("component", "environment")
	return e
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config { return e.cfg }

// Elements returns the live elements.
func (e *Engine) Elements() []*Element { return e.elements }

// Count returns the number of live elements.
func (e *Engine) Count() int { return len(e.elements) }

// Element returns the live element with the given id, or nil.
func (e *Engine) Element(id string) *Element {
	for _, el := range e.elements {
		if el.ID == id && el.Active {
			return el
		}
	}
	return nil
}

// Particles returns the live particles.
func (e *Engine) Particles() []Particle { return e.particles }

// Prompt returns the current interaction prompt, or nil.
func (e *Engine) Prompt() *Prompt { return e.prompt }

// Clear removes every element and particle.
func (e *Engine) Clear() {
	e.elements = nil
	e.particles = nil
	e.spawnTimer = 0
	e.prompt = nil
}

// SpawnInitial populates the arena with the configured number of elements,
// keeping clear of the player when one is given.
func (e *Engine) SpawnInitial(ctx context.Context, player *world.Vec) []*Element {
	var spawned []*Element
	for i := 0; i < e.cfg.InitialCount && len(e.elements) < e.cfg.MaxElements; i++ {
		if el, ok := e.SpawnRandom(ctx, player); ok {
			spawned = append(spawned, el)
		}
	}
	return spawned
}

// SpawnRandom spawns one element chosen by weighted draw.
func (e *Engine) SpawnRandom(ctx context.Context, player *world.Vec) (*Element, bool) {
	if e.registry == nil {
		return nil, false
	}
	def := e.registry.SpawnRandom(e.rng)
	if def == nil {
		return nil, false
	}
	return e.SpawnElement(ctx, def, player)
}

// SpawnElement places an element of def at a random position at least
// MinSpawnDistance from player. If no acceptable position is found within the
// attempt budget, nothing is spawned.
func (e *Engine) SpawnElement(ctx context.Context, def *gamedata.ArchetypeDef, player *world.Vec) (*Element, bool) {
	if def == nil || e.arena == nil {
		return nil, false
	}

	pos, ok := e.arena.PlaceAwayFrom(def.Size, player, e.cfg.MinSpawnDistance, e.cfg.PlacementAttempts)
	if !ok {
		e.logger.WithField("element", def.ID).Debug("no spawn position clear of the player")
		return nil, false
	}
	return e.spawnAt(ctx, def, pos), true
}

// SpawnAt places an element of def at pos, bypassing placement rules.
func (e *Engine) SpawnAt(ctx context.Context, def *gamedata.ArchetypeDef, pos world.Vec) *Element {
	if def == nil {
		return nil
	}
	return e.spawnAt(ctx, def, pos)
}

func (e *Engine) spawnAt(ctx context.Context, def *gamedata.ArchetypeDef, pos world.Vec) *Element {
	tracer := telemetry.Tracer("environment")
	_, span := tracer.Start(ctx, "environment.spawn")
	defer span.End()

	el := newElement(def, pos)
	e.elements = append(e.elements, el)

	span.SetAttributes(
		attribute.String("element", def.ID),
		attribute.String("class", string(def.Class)),
		attribute.Float64("x", pos.X),
		attribute.Float64("y", pos.Y),
	)
	return el
}
