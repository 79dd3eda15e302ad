// Package mode implements the round mode engine: mode selection, round timing,
// time warnings, team battles and end-of-round results.
package mode

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/event"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/telemetry"
)

var (
	// ErrUnknownMode is returned when selecting a mode missing from the catalog.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrNoModeSelected is returned when starting a round before selecting a mode.
	ErrNoModeSelected = errors.New("no mode selected")
)

// BossBonus is the base score for defeating a boss, before the mode multiplier.
const BossBonus = 500

// Signal tells the game loop whether the round continues.
type Signal int

const (
	Continue Signal = iota
	Stop
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Options are caller overrides applied when selecting a mode.
type Options struct {
	Duration   *time.Duration // Overrides the catalog duration; 0 makes the round untimed
	PlayerName string         // Name of the human team member
}

// Engine runs one round at a time.
type Engine struct {
	catalog *gamedata.ModeCatalog
	bus     *event.Bus
	clock   clock.Clock
	logger  logrus.FieldLogger

	current    Variant
	playerName string
	active     bool
	finished   bool // Stop has been signalled for the active round
	startedAt  time.Time
	elapsed    float64
	stats      Stats
	warned     map[int]bool
	outcome    Outcome
	winner     string
	reason     string
	results    *Results
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine over catalog. Events go to bus; a nil bus gets a
// private one. A nil clock uses wall-clock time.
func NewEngine(catalog *gamedata.ModeCatalog, bus *event.Bus, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		bus:     bus,
		clock:   clock.Or(c),
		logger:  logrus.StandardLogger(),
		warned:  make(map[int]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = event.NewBus(e.logger)
	}
	e.logger = e.logger.WithField("component", "mode")
	return e
}

// On registers the single handler for name. A later registration replaces it.
func (e *Engine) On(name event.Name, h event.Handler) {
	e.bus.On(name, h)
}

// AvailableModes returns the mode catalog.
func (e *Engine) AvailableModes() []gamedata.ModeDef {
	if e.catalog == nil {
		return nil
	}
	return e.catalog.All()
}

// SelectMode prepares a round of the given mode. Any round in progress is discarded.
func (e *Engine) SelectMode(ctx context.Context, id gamedata.ModeID, opts Options) error {
	tracer := telemetry.Tracer("mode")
	_, span := tracer.Start(ctx, "round.select")
	span.SetAttributes(attribute.String("mode", string(id)))
	defer span.End()

	var def *gamedata.ModeDef
	if e.catalog != nil {
		def = e.catalog.GetByID(id)
	}
	if def == nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}

	e.current = newVariant(def, opts)
	e.playerName = opts.PlayerName
	e.active = false
	e.finished = false
	e.results = nil

	e.bus.Emit(EventModeSelected, SelectedEvent{
		Mode:     def.ID,
		Name:     def.Name,
		Duration: e.current.Duration(),
	})
	return nil
}

// Current returns the selected mode, or nil.
func (e *Engine) Current() Variant { return e.current }

// IsActive reports whether a round is running.
func (e *Engine) IsActive() bool { return e.active }

// IsFinished reports whether the running round has signalled Stop.
func (e *Engine) IsFinished() bool { return e.finished }

// StartMode begins a round of the selected mode.
func (e *Engine) StartMode(ctx context.Context) error {
	if e.current == nil {
		return ErrNoModeSelected
	}

	tracer := telemetry.Tracer("mode")
	_, span := tracer.Start(ctx, "round.start")
	defer span.End()

	e.startedAt = e.clock.Now()
	e.elapsed = 0
	e.stats = Stats{}
	e.warned = make(map[int]bool)
	e.finished = false
	e.outcome = OutcomeNone
	e.winner = ""
	e.reason = ""
	e.results = nil
	e.active = true

	if tb, ok := e.current.(*TeamBattle); ok {
		e.populateRosters(tb)
	}

	def := e.current.Def()
	span.SetAttributes(
		attribute.String("mode", string(def.ID)),
		attribute.Float64("duration_seconds", e.current.Duration().Seconds()),
	)
	e.logger.WithField("mode", def.ID).Info("round started")

	e.bus.Emit(EventModeStart, StartEvent{
		Mode:      def.ID,
		Duration:  e.current.Duration(),
		StartedAt: e.startedAt,
	})
	return nil
}

func (e *Engine) populateRosters(tb *TeamBattle) {
	for _, t := range tb.Teams {
		t.Members = nil
		t.Score = 0
		t.Kills = 0
	}

	name := e.playerName
	if name == "" {
		name = "Player"
	}
	own, opp := tb.Own(), tb.Opponent()
	e.addMember(tb, own, MemberHuman, name)
	for i := 1; i <= tb.MaxTeamSize-1; i++ {
		e.addMember(tb, own, MemberAIAlly, fmt.Sprintf("Ally %d", i))
	}
	for i := 1; i <= tb.MaxTeamSize; i++ {
		e.addMember(tb, opp, MemberAIEnemy, fmt.Sprintf("Rival %d", i))
	}
}

// Elapsed returns round time accumulated by Update.
func (e *Engine) Elapsed() time.Duration {
	return time.Duration(e.elapsed * float64(time.Second))
}

// TimeRemaining returns seconds left in the round, +Inf for untimed rounds, and 0
// when no round is selected.
func (e *Engine) TimeRemaining() float64 {
	if e.current == nil {
		return 0
	}
	return math.Max(0, remaining(e.current, e.elapsed))
}

// Update advances the round by dt seconds and returns Stop once a win condition or
// the time limit is reached. An inactive round always continues.
func (e *Engine) Update(dt float64) Signal {
	if !e.active || e.current == nil {
		return Continue
	}
	if e.finished {
		return Stop
	}
	if dt > 0 {
		e.elapsed += dt
	}
	left := remaining(e.current, e.elapsed)

	switch v := e.current.(type) {
	case *TimeAttack:
		e.fireWarnings(timeAttackWarnings, left)
		if left <= 0 {
			e.finish(OutcomeTimeUp, "", ReasonTime)
			e.bus.Emit(EventTimeUp, TimeUpEvent{Elapsed: e.elapsed, Stats: e.stats})
			return Stop
		}
	case *TeamBattle:
		if e.checkElimination(v) {
			return Stop
		}
		e.fireWarnings(teamBattleWarnings, left)
		if left <= 0 {
			e.resolveByScore(v, ReasonTime)
			return Stop
		}
	case *Placeholder:
	}
	return Continue
}

// fireWarnings emits one time_warning for every threshold crossed and not yet fired,
// largest first.
func (e *Engine) fireWarnings(thresholds []int, left float64) {
	if left <= 0 {
		return
	}
	for _, th := range thresholds {
		if left <= float64(th) && !e.warned[th] {
			e.warned[th] = true
			e.bus.Emit(EventTimeWarning, WarningEvent{Threshold: th, Remaining: left})
		}
	}
}

func (e *Engine) checkElimination(tb *TeamBattle) bool {
	own, opp := tb.Own(), tb.Opponent()
	switch {
	case opp.Eliminated():
		e.finish(OutcomeVictory, own.ID, ReasonElimination)
		e.bus.Emit(EventTeamVictory, VictoryEvent{Winner: own.ID, Loser: opp.ID, Reason: ReasonElimination})
		return true
	case own.Eliminated():
		e.finish(OutcomeDefeat, opp.ID, ReasonElimination)
		e.bus.Emit(EventTeamDefeat, VictoryEvent{Winner: opp.ID, Loser: own.ID, Reason: ReasonElimination})
		return true
	}
	return false
}

// resolveByScore decides a team battle on score, then kills.
func (e *Engine) resolveByScore(tb *TeamBattle, reason string) {
	own, opp := tb.Own(), tb.Opponent()
	cmp := own.Score - opp.Score
	if cmp == 0 {
		cmp = own.Kills - opp.Kills
	}

	switch {
	case cmp > 0:
		e.finish(OutcomeVictory, own.ID, reason)
		e.bus.Emit(EventTeamVictory, VictoryEvent{Winner: own.ID, Loser: opp.ID, Reason: reason})
	case cmp < 0:
		e.finish(OutcomeDefeat, opp.ID, reason)
		e.bus.Emit(EventTeamDefeat, VictoryEvent{Winner: opp.ID, Loser: own.ID, Reason: reason})
	default:
		e.finish(OutcomeDraw, "", reason)
		e.bus.Emit(EventTeamDraw, VictoryEvent{Reason: reason})
	}
}

func (e *Engine) finish(outcome Outcome, winner, reason string) {
	e.finished = true
	e.outcome = outcome
	e.winner = winner
	e.reason = reason
}

// EndMode ends the round and returns its results. Calling it again, or without an
// active round, returns the cached results (nil if no round ever ended).
func (e *Engine) EndMode(ctx context.Context) *Results {
	if !e.active {
		return e.results
	}

	tracer := telemetry.Tracer("mode")
	_, span := tracer.Start(ctx, "round.end")
	defer span.End()

	e.active = false
	def := e.current.Def()
	r := &Results{
		Mode:      def.ID,
		ModeName:  def.Name,
		Stats:     e.stats,
		Elapsed:   e.Elapsed(),
		StartedAt: e.startedAt,
		EndedAt:   e.clock.Now(),
		Outcome:   e.outcome,
	}

	switch v := e.current.(type) {
	case *TimeAttack:
		r.TimeAttack = &TimeAttackResults{
			PointsPerMinute: perMinute(e.stats.Score, r.Elapsed),
			KillsPerMinute:  perMinute(e.stats.Kills, r.Elapsed),
		}
	case *TeamBattle:
		if !e.finished {
			e.resolveByScore(v, ReasonTime)
		}
		r.Outcome = e.outcome
		own, opp := v.Own(), v.Opponent()
		r.TeamBattle = &TeamBattleResults{
			Winner: e.winner,
			Reason: e.reason,
			Teams:  e.Teams(),
			Rating: RateTeamwork(own.Score-opp.Score, own.Kills),
		}
	case *Placeholder:
	}
	if r.Outcome == OutcomeNone {
		r.Outcome = OutcomeEnded
	}
	e.finished = true
	e.results = r

	span.SetAttributes(
		attribute.String("mode", string(def.ID)),
		attribute.String("outcome", string(r.Outcome)),
		attribute.Int("score", r.Stats.Score),
		attribute.Int("kills", r.Stats.Kills),
	)
	e.logger.WithFields(logrus.Fields{
		"mode":    def.ID,
		"outcome": r.Outcome,
		"score":   r.Stats.Score,
	}).Info("round ended")

	e.bus.Emit(EventModeEnd, *r)
	return r
}

// Stats returns a snapshot of the round's counters.
func (e *Engine) Stats() Stats { return e.stats }

// Multiplier returns the active mode's scoring multiplier.
func (e *Engine) Multiplier() float64 {
	switch v := e.current.(type) {
	case *TimeAttack:
		return v.multiplier()
	case *TeamBattle:
		return v.multiplier()
	case *Placeholder:
		return v.multiplier()
	}
	return 1
}

func (e *Engine) scale(points int) int {
	return int(math.Floor(float64(points) * e.Multiplier()))
}

// AddKill records a kill and returns the points awarded.
func (e *Engine) AddKill(mobKind string, basePoints int) int {
	if !e.active {
		return 0
	}
	points := e.scale(basePoints)
	e.stats.Kills++
	e.stats.Score += points
	e.bus.Emit(EventKillRegistered, KillEvent{MobKind: mobKind, Points: points, TotalKills: e.stats.Kills})
	return points
}

// AddDamageDealt records damage dealt by the player.
func (e *Engine) AddDamageDealt(n int) {
	if !e.active || n <= 0 {
		return
	}
	e.stats.DamageDealt += n
}

// AddDamageTaken records damage taken by the player.
func (e *Engine) AddDamageTaken(n int) {
	if !e.active || n <= 0 {
		return
	}
	e.stats.DamageTaken += n
}

// AddPowerUp records a collected power-up.
func (e *Engine) AddPowerUp() {
	if !e.active {
		return
	}
	e.stats.PowerUpsCollected++
}

// DefeatBoss records a boss defeat and returns the bonus awarded.
func (e *Engine) DefeatBoss(bossKind string) int {
	if !e.active {
		return 0
	}
	points := e.scale(BossBonus)
	e.stats.BossesDefeated++
	e.stats.Score += points
	e.bus.Emit(EventBossDefeated, BossEvent{BossKind: bossKind, Points: points})
	return points
}

func (e *Engine) teamBattle() (*TeamBattle, bool) {
	if !e.active {
		return nil, false
	}
	tb, ok := e.current.(*TeamBattle)
	return tb, ok
}

func (e *Engine) addMember(tb *TeamBattle, t *Team, kind MemberKind, name string) (string, bool) {
	if t == nil || len(t.Members) >= tb.MaxTeamSize {
		return "", false
	}
	m := &Member{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Health:    100,
		MaxHealth: 100,
	}
	t.Members = append(t.Members, m)
	e.bus.Emit(EventTeamMemberAdded, MemberEvent{TeamID: t.ID, Member: *m})
	return m.ID, true
}

// AddTeamMember adds a member to a team and returns its id. It fails when the
// round is not a team battle, the team is unknown or the team is full.
func (e *Engine) AddTeamMember(teamID string, kind MemberKind, name string) (string, bool) {
	tb, ok := e.teamBattle()
	if !ok {
		return "", false
	}
	return e.addMember(tb, tb.Team(teamID), kind, name)
}

// RemoveTeamMember removes a member from a team.
func (e *Engine) RemoveTeamMember(teamID, memberID string) bool {
	tb, ok := e.teamBattle()
	if !ok {
		return false
	}
	t := tb.Team(teamID)
	if t == nil {
		return false
	}
	m, ok := t.remove(memberID)
	if !ok {
		return false
	}
	e.bus.Emit(EventTeamMemberRemoved, MemberEvent{TeamID: t.ID, Member: *m})
	return true
}

// AddTeamKill credits a kill to a team. Kills by the player's team also count
// toward the round stats.
func (e *Engine) AddTeamKill(teamID, memberID string, basePoints int) int {
	tb, ok := e.teamBattle()
	if !ok {
		return 0
	}
	t := tb.Team(teamID)
	if t == nil {
		return 0
	}
	points := e.scale(basePoints)
	t.Kills++
	t.Score += points
	if t.ID == tb.PlayerTeam {
		e.stats.Kills++
		e.stats.Score += points
	}
	e.bus.Emit(EventTeamKill, TeamKillEvent{TeamID: t.ID, MemberID: memberID, Points: points, Kills: t.Kills})
	return points
}

// UpdateTeamMemberHealth sets a member's health, clamped to [0, max]. A member at
// zero health is removed from the team.
func (e *Engine) UpdateTeamMemberHealth(teamID, memberID string, health int) bool {
	tb, ok := e.teamBattle()
	if !ok {
		return false
	}
	t := tb.Team(teamID)
	if t == nil {
		return false
	}
	m := t.Member(memberID)
	if m == nil {
		return false
	}
	m.Health = min(max(0, health), m.MaxHealth)
	if m.Health == 0 {
		e.RemoveTeamMember(teamID, memberID)
	}
	return true
}

// TeamStats returns a snapshot of one team.
func (e *Engine) TeamStats(teamID string) (TeamStats, bool) {
	tb, ok := e.current.(*TeamBattle)
	if !ok {
		return TeamStats{}, false
	}
	t := tb.Team(teamID)
	if t == nil {
		return TeamStats{}, false
	}
	return t.snapshot(), true
}

// Teams returns snapshots of both teams, player's team first. Nil outside team battles.
func (e *Engine) Teams() []TeamStats {
	tb, ok := e.current.(*TeamBattle)
	if !ok {
		return nil
	}
	out := make([]TeamStats, 0, len(tb.Teams))
	for _, t := range tb.Teams {
		out = append(out, t.snapshot())
	}
	return out
}
