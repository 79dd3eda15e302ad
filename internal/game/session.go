package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/effect"
	"github.com/samdwyer/survivalarena/internal/entity"
	"github.com/samdwyer/survivalarena/internal/environment"
	"github.com/samdwyer/survivalarena/internal/event"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/mode"
	"github.com/samdwyer/survivalarena/internal/respawn"
	"github.com/samdwyer/survivalarena/internal/score"
	"github.com/samdwyer/survivalarena/internal/storage"
	"github.com/samdwyer/survivalarena/internal/telemetry"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Tuning for mobs, shots and pickups.
const (
	baseMobInterval = 2.0  // Seconds between mob spawns before the mode multiplier
	mobSpawnClear   = 200  // Mobs spawn at least this far from the player
	mobReach        = 20   // Contact distance for mob attacks
	mobHitRadius    = 14   // Projectile hit radius against mobs
	pickupRadius    = 20   // Power-up pickup distance
	aiInterval      = 2.0  // Seconds between simulated team-battle exchanges
	aiKillChance    = 0.35 // Probability an AI exchange ends in a kill
	aiKillPoints    = 10
)

// PowerUp is a pickup dropped by loot elements.
type PowerUp struct {
	Kind   string
	X, Y   float64
	Active bool
}

// Position returns the power-up's position.
func (p *PowerUp) Position() world.Vec { return world.Vec{X: p.X, Y: p.Y} }

// Session is one player's game: the round, the arena and everything in it.
// Tick advances the whole simulation; the terminal loop and tests both drive it.
type Session struct {
	ID     string
	cfg    Config
	clock  clock.Clock
	rng    *rand.Rand
	logger logrus.FieldLogger

	arena      *world.Arena
	bus        *event.Bus
	modes      *mode.Engine
	env        *environment.Engine
	respawn    *respawn.Controller
	score      *score.Aggregator
	milestones *score.Milestones
	applier    *effect.Applier
	mobDefs    *gamedata.MobRegistry
	loadout    *gamedata.LoadoutDef

	player      *entity.Player
	mobs        []*entity.Mob
	projectiles []*entity.Projectile
	powerUps    []*PowerUp

	state       State
	humanID     string // Player's team-battle member id
	mobTimer    float64
	aiTimer     float64
	fireTimer   float64
	aim         world.Vec
	results     *mode.Results
	finalScore  score.Stats
	lastMessage string
}

// NewSession wires every system together. kv may be nil to keep scores in memory.
func NewSession(cfg Config, kv storage.KV, c clock.Clock, logger logrus.FieldLogger) (*Session, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c = clock.Or(c)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	modes, err := gamedata.LoadModeCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load modes: %w", err)
	}
	archetypes, err := gamedata.LoadArchetypeRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load archetypes: %w", err)
	}
	mobDefs, err := gamedata.LoadMobRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load mobs: %w", err)
	}
	loadouts, err := gamedata.LoadLoadouts()
	if err != nil {
		return nil, fmt.Errorf("failed to load loadouts: %w", err)
	}

	id := uuid.NewString()
	logger = logger.WithField("session", id)

	s := &Session{
		ID:         id,
		cfg:        cfg,
		clock:      c,
		rng:        rng,
		logger:     logger.WithField("component", "session"),
		arena:      world.NewArena(cfg.ArenaWidth, cfg.ArenaHeight, rng),
		bus:        event.NewBus(logger),
		respawn:    respawn.NewController(c, cfg.RespawnDelay),
		score:      score.NewAggregator(kv, c, logger),
		milestones: score.NewMilestones(),
		applier:    effect.NewApplier(c),
		mobDefs:    mobDefs,
		loadout:    gamedata.FindLoadout(loadouts, cfg.Loadout),
		aim:        world.Vec{X: 1},
	}
	if s.loadout == nil {
		s.loadout = &loadouts[0]
	}
	s.modes = mode.NewEngine(modes, s.bus, c, mode.WithLogger(logger))
	s.env = environment.NewEngine(cfg.Environment, archetypes, s.arena, rng, c,
		environment.WithScoreSink(s.score),
		environment.WithPowerUpSpawner(s),
		environment.WithLogger(logger),
	)
	s.respawn.SetOwner(s)
	s.score.BindRewards(s.milestones)
	return s, nil
}

// Bus returns the event bus shared by the session's systems.
func (s *Session) Bus() *event.Bus { return s.bus }

// Modes returns the round mode engine.
func (s *Session) Modes() *mode.Engine { return s.modes }

// Environment returns the environmental engine.
func (s *Session) Environment() *environment.Engine { return s.env }

// Respawn returns the respawn controller.
func (s *Session) Respawn() *respawn.Controller { return s.respawn }

// Score returns the score aggregator.
func (s *Session) Score() *score.Aggregator { return s.score }

// Arena returns the play field.
func (s *Session) Arena() *world.Arena { return s.arena }

// Player returns the player, or nil before the first round.
func (s *Session) Player() *entity.Player { return s.player }

// Mobs returns the live mobs.
func (s *Session) Mobs() []*entity.Mob { return s.mobs }

// Projectiles returns the shots in flight.
func (s *Session) Projectiles() []*entity.Projectile { return s.projectiles }

// PowerUps returns the uncollected power-ups.
func (s *Session) PowerUps() []*PowerUp { return s.powerUps }

// State returns the session state.
func (s *Session) State() State { return s.state }

// Results returns the last round's results, or nil.
func (s *Session) Results() *mode.Results { return s.results }

// FinalScore returns the score snapshot taken when the last round ended.
func (s *Session) FinalScore() score.Stats { return s.finalScore }

// Message returns the latest status line.
func (s *Session) Message() string { return s.lastMessage }

// IsRespawning reports whether the session is waiting on a respawn.
func (s *Session) IsRespawning() bool { return s.state == StateRespawning }

// ResumePlaying returns to play after a respawn.
func (s *Session) ResumePlaying() {
	if s.state == StateRespawning {
		s.state = StatePlaying
	}
}

// Start begins a round of the configured mode.
func (s *Session) Start(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.start")
	defer span.End()

	if err := s.modes.SelectMode(ctx, s.cfg.Mode, mode.Options{PlayerName: s.cfg.PlayerName}); err != nil {
		return err
	}

	s.player = entity.NewPlayerFromLoadout(s.cfg.PlayerName, s.loadout, s.arena.Center())
	s.mobs = nil
	s.projectiles = nil
	s.powerUps = nil
	s.mobTimer = 0
	s.aiTimer = 0
	s.fireTimer = 0
	s.results = nil
	s.respawn.Cancel()
	s.env.Clear()
	s.milestones.Reset()

	if err := s.modes.StartMode(ctx); err != nil {
		return err
	}
	s.humanID = s.findHumanID()
	s.score.StartNewGame()

	pos := s.player.Position()
	s.env.SpawnInitial(ctx, &pos)
	s.state = StatePlaying
	s.lastMessage = s.modes.Current().Def().Name + " started"

	span.SetAttributes(
		attribute.String("mode", string(s.cfg.Mode)),
		attribute.String("loadout", s.loadout.ID),
		attribute.Int("elements", s.env.Count()),
	)
	return nil
}

func (s *Session) findHumanID() string {
	tb, ok := s.modes.Current().(*mode.TeamBattle)
	if !ok {
		return ""
	}
	for _, m := range tb.Own().Members {
		if m.Kind == mode.MemberHuman {
			return m.ID
		}
	}
	return ""
}

// Move steers the player along dir for dt seconds.
func (s *Session) Move(dir world.Vec, dt float64) {
	if s.state != StatePlaying || s.player == nil {
		return
	}
	if dir != (world.Vec{}) {
		s.aim = dir.Normalize()
	}
	s.player.Move(dir, dt)
	pos := s.arena.Clamp(s.player.Position(), 0)
	s.player.MoveTo(pos)
}

// Fire shoots along the last movement direction, respecting fire rate and ammo.
func (s *Session) Fire() bool {
	if s.state != StatePlaying || s.player == nil || s.fireTimer > 0 {
		return false
	}
	if !s.player.SpendAmmo() {
		s.lastMessage = "Out of ammo"
		return false
	}
	shot := entity.NewProjectile(s.player.Position(), s.aim, int(s.player.Damage), true)
	s.projectiles = append(s.projectiles, shot)
	if s.player.FireRate > 0 {
		s.fireTimer = 1 / s.player.FireRate
	}
	return true
}

// Interact uses the nearest ready station.
func (s *Session) Interact(ctx context.Context) bool {
	if s.state != StatePlaying || s.player == nil {
		return false
	}
	report, ok := s.env.InteractNearest(ctx, s.player)
	if ok {
		s.absorb(ctx, report)
		for _, st := range report.Stations {
			s.lastMessage = "Used " + st.Def.Name
		}
	}
	return ok
}

// SpawnPowerUp drops a pickup. It implements environment.PowerUpSpawner.
func (s *Session) SpawnPowerUp(kind string, x, y float64) {
	s.powerUps = append(s.powerUps, &PowerUp{Kind: kind, X: x, Y: y, Active: true})
}

// Tick advances the session by dt seconds. The order is fixed: round timer, then
// mobs and projectiles, then the environment, then the respawn check. A round
// that ran out this tick ends only after this tick's damage has resolved.
func (s *Session) Tick(ctx context.Context, dt float64) {
	if s.state == StateReady || s.state == StateRoundOver {
		return
	}

	signal := s.modes.Update(dt)

	s.tickCombat(ctx, dt)

	var scene environment.Scene
	if s.player != nil {
		scene.Player = s.player
	}
	for _, m := range s.mobs {
		scene.Mobs = append(scene.Mobs, m)
	}
	for _, p := range s.projectiles {
		scene.Projectiles = append(scene.Projectiles, p)
	}
	s.absorb(ctx, s.env.Update(ctx, dt, scene))

	s.collectPowerUps()
	s.pruneEntities()
	s.checkDeath(ctx)
	s.respawn.Tick(ctx)

	if _, ok := s.modes.Current().(*mode.TeamBattle); ok {
		s.tickTeamAI(dt)
	}
	s.milestones.ObserveSurvival(s.score.PlayTime().Seconds())

	if signal == mode.Stop {
		s.endRound(ctx)
	}
}

func (s *Session) tickCombat(ctx context.Context, dt float64) {
	if s.fireTimer > 0 {
		s.fireTimer -= dt
	}

	target := s.player.Position()
	alive := s.player.IsAlive()
	if alive {
		s.player.Step(dt, s.arena)
	}

	s.spawnMobs(dt)
	for _, m := range s.mobs {
		m.Step(dt, target, s.arena)
		if !alive {
			continue
		}
		if dmg, ok := m.TryAttack(target, mobReach); ok {
			s.hurtPlayer(int(s.applier.Apply(s.player, effect.Damage(dmg, m.Kind())).Amount))
		}
	}

	for _, p := range s.projectiles {
		p.Step(dt, s.arena)
		if !p.IsActive() || !p.PlayerOwned() {
			continue
		}
		for _, m := range s.mobs {
			if !m.IsAlive() || world.Distance(p.Position(), m.Position()) > mobHitRadius {
				continue
			}
			dealt := m.TakeDamage(p.DamageAmount())
			p.Spend()
			s.modes.AddDamageDealt(dealt)
			s.score.AddDamageDealt(dealt)
			if !m.IsAlive() {
				s.creditKill(ctx, m)
			}
			break
		}
	}
}

func (s *Session) spawnMobs(dt float64) {
	def := s.modes.Current().Def()
	rate := def.SpawnRateMultiplier
	if rate <= 0 {
		rate = 1
	}
	s.mobTimer += dt
	if s.mobTimer < baseMobInterval/rate {
		return
	}
	s.mobTimer = 0
	if len(s.mobs) >= s.cfg.MaxMobs {
		return
	}

	mobDef := s.mobDefs.SpawnRandom(s.rng)
	if mobDef == nil {
		return
	}
	avoid := s.player.Position()
	pos, ok := s.arena.PlaceAwayFrom(10, &avoid, mobSpawnClear, world.DefaultPlacementAttempts)
	if !ok {
		return
	}
	s.mobs = append(s.mobs, entity.NewMobFromDef(mobDef, pos, def.DifficultyMultiplier))
}

func (s *Session) hurtPlayer(n int) {
	if n <= 0 {
		return
	}
	s.modes.AddDamageTaken(n)
	s.score.AddDamageTaken(n)
	if s.humanID != "" {
		health := s.player.Health
		if health <= 0 {
			health = 0
		}
		s.modes.UpdateTeamMemberHealth(s.ownTeam(), s.humanID, health)
	}
}

func (s *Session) ownTeam() string {
	if tb, ok := s.modes.Current().(*mode.TeamBattle); ok {
		return tb.PlayerTeam
	}
	return ""
}

// creditKill records a mob kill with the round and the score keeper.
func (s *Session) creditKill(ctx context.Context, m *entity.Mob) {
	if tb, ok := s.modes.Current().(*mode.TeamBattle); ok {
		s.modes.AddTeamKill(tb.PlayerTeam, s.humanID, m.Points())
	} else {
		s.modes.AddKill(m.Kind(), m.Points())
	}
	s.score.AddKill(&score.MobInfo{Kind: m.Kind(), Health: m.MaxHealth, Speed: m.Speed / 60})
	if m.IsBoss() {
		s.modes.DefeatBoss(m.Kind())
		s.milestones.ObserveBoss()
	}
	s.milestones.ObserveKills(s.score.Kills())
}

// absorb folds an environment report into the round and score.
func (s *Session) absorb(ctx context.Context, r environment.Report) {
	s.hurtPlayer(r.PlayerDamage)
	s.modes.AddDamageDealt(r.DamageDealt)
	s.score.AddDamageDealt(r.DamageDealt)
	for _, k := range r.Killed {
		if m, ok := k.(*entity.Mob); ok {
			s.creditKill(ctx, m)
		}
	}
	for _, el := range r.Destroyed {
		s.lastMessage = el.Def.Name + " destroyed"
	}
}

func (s *Session) collectPowerUps() {
	if !s.player.IsAlive() {
		return
	}
	for _, pu := range s.powerUps {
		if !pu.Active || world.Distance(pu.Position(), s.player.Position()) > pickupRadius {
			continue
		}
		pu.Active = false
		for _, d := range powerUpDeltas(pu.Kind) {
			s.applier.Apply(s.player, d)
		}
		s.modes.AddPowerUp()
		s.lastMessage = "Picked up " + pu.Kind
	}
}

func powerUpDeltas(kind string) []effect.Delta {
	switch kind {
	case "health":
		return []effect.Delta{effect.Heal(25, "powerup")}
	case "ammo":
		return []effect.Delta{effect.Ammo(0, "powerup")}
	case "shield":
		return []effect.Delta{effect.Shield(20, "powerup")}
	case "energy":
		return []effect.Delta{effect.Energy(50, "powerup")}
	default:
		return nil
	}
}

func (s *Session) pruneEntities() {
	mobs := s.mobs[:0]
	for _, m := range s.mobs {
		if m.IsAlive() {
			mobs = append(mobs, m)
		}
	}
	s.mobs = mobs

	shots := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.IsActive() {
			shots = append(shots, p)
		}
	}
	s.projectiles = shots

	pickups := s.powerUps[:0]
	for _, pu := range s.powerUps {
		if pu.Active {
			pickups = append(pickups, pu)
		}
	}
	s.powerUps = pickups
}

// checkDeath starts the respawn countdown on the tick the player dies.
func (s *Session) checkDeath(ctx context.Context) {
	if s.state != StatePlaying || s.player.Health > 0 {
		return
	}
	if s.respawn.Start(ctx, s.player, s.onRespawned) {
		s.state = StateRespawning
		s.lastMessage = "You died"
		s.logger.Info("player died")
	}
}

func (s *Session) onRespawned() {
	s.lastMessage = "Respawned"
	if tb, ok := s.modes.Current().(*mode.TeamBattle); ok && s.modes.IsActive() {
		if tb.Own().Member(s.humanID) == nil {
			if id, ok := s.modes.AddTeamMember(tb.PlayerTeam, mode.MemberHuman, s.cfg.PlayerName); ok {
				s.humanID = id
			}
		}
	}
}

// tickTeamAI simulates the AI members of both teams trading blows.
func (s *Session) tickTeamAI(dt float64) {
	s.aiTimer += dt
	if s.aiTimer < aiInterval {
		return
	}
	s.aiTimer = 0

	tb := s.modes.Current().(*mode.TeamBattle)
	attackerTeam := tb.Own()
	defenderTeam := tb.Opponent()
	if s.rng.Intn(2) == 1 {
		attackerTeam, defenderTeam = defenderTeam, attackerTeam
	}

	attacker := s.randomAIMember(attackerTeam)
	defender := s.randomAIMember(defenderTeam)
	if attacker == nil || defender == nil {
		return
	}

	if s.rng.Float64() < aiKillChance {
		s.modes.AddTeamKill(attackerTeam.ID, attacker.ID, aiKillPoints)
		s.modes.UpdateTeamMemberHealth(defenderTeam.ID, defender.ID, 0)
		return
	}
	s.modes.UpdateTeamMemberHealth(defenderTeam.ID, defender.ID, defender.Health-(10+s.rng.Intn(20)))
}

func (s *Session) randomAIMember(t *mode.Team) *mode.Member {
	var ai []*mode.Member
	for _, m := range t.Members {
		if m.Kind != mode.MemberHuman {
			ai = append(ai, m)
		}
	}
	if len(ai) == 0 {
		return nil
	}
	return ai[s.rng.Intn(len(ai))]
}

// endRound closes the round and folds it into lifetime stats.
func (s *Session) endRound(ctx context.Context) {
	s.respawn.Cancel()
	s.results = s.modes.EndMode(ctx)
	s.finalScore = s.score.EndGame()
	s.state = StateRoundOver
	if s.results != nil {
		s.lastMessage = fmt.Sprintf("Round over: %s", s.results.Outcome)
	}
	s.logger.WithFields(logrus.Fields{
		"score":      s.finalScore.Score,
		"high_score": s.finalScore.HighScore,
	}).Info("session round ended")
}

// End stops the current round early.
func (s *Session) End(ctx context.Context) {
	if s.state == StatePlaying || s.state == StateRespawning {
		s.endRound(ctx)
	}
}
