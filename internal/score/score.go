// Package score accumulates points, kills and damage for a play session and
// persists the high score and lifetime stats.
package score

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/storage"
)

// Persistence keys.
const (
	KeyHighScore   = "high_score"
	KeyPlayerStats = "player_stats"
)

const (
	// DefaultKillPoints is awarded for a kill with no mob information.
	DefaultKillPoints = 10
	// MaxTimeMultiplier caps the time-survived kill multiplier.
	MaxTimeMultiplier = 3.0
)

// MobInfo describes a killed mob for scoring.
type MobInfo struct {
	Kind   string
	Health int
	Speed  float64
}

// PlayerStats are lifetime totals persisted across sessions.
type PlayerStats struct {
	GamesPlayed      int     `json:"gamesPlayed"`
	TotalKills       int     `json:"totalKills"`
	TotalScore       int     `json:"totalScore"`
	BestScore        int     `json:"bestScore"`
	DamageDealt      int     `json:"damageDealt"`
	DamageTaken      int     `json:"damageTaken"`
	MedalBonus       int     `json:"medalBonus"`
	AchievementBonus int     `json:"achievementBonus"`
	PlayTimeSeconds  float64 `json:"playTimeSeconds"`
}

// Stats is a snapshot of the aggregator.
type Stats struct {
	Score       int
	Kills       int
	HighScore   int
	TotalScore  int // Points earned across all games this process
	DamageDealt int
	DamageTaken int
	PlayTime    time.Duration
	PlayTimeFmt string // mm:ss
	Lifetime    PlayerStats
}

// Aggregator is the score keeper. It is not safe for concurrent use.
type Aggregator struct {
	kv     storage.KV
	clock  clock.Clock
	logger logrus.FieldLogger

	score       int
	kills       int
	totalScore  int
	highScore   int
	damageDealt int
	damageTaken int

	sessionStart time.Time
	inGame       bool
	lifetime     PlayerStats
	medalBonus   int
	achieveBonus int
}

// NewAggregator creates an aggregator and loads persisted values from kv.
// A nil kv keeps everything in memory.
func NewAggregator(kv storage.KV, c clock.Clock, logger logrus.FieldLogger) *Aggregator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	a := &Aggregator{
		kv:     kv,
		clock:  clock.Or(c),
		logger: logger.WithField("component", "score"),
	}
	a.sessionStart = a.clock.Now()
	a.load()
	return a
}

func (a *Aggregator) load() {
	if a.kv == nil {
		return
	}

	if v, ok, err := a.kv.Get(KeyHighScore); err != nil {
		a.logger.WithError(err).Warn("failed to load high score")
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			a.highScore = n
		} else {
			a.logger.WithError(err).Warn("ignoring malformed high score")
		}
	}

	if v, ok, err := a.kv.Get(KeyPlayerStats); err != nil {
		a.logger.WithError(err).Warn("failed to load player stats")
	} else if ok {
		if err := json.Unmarshal([]byte(v), &a.lifetime); err != nil {
			a.logger.WithError(err).Warn("ignoring malformed player stats")
		}
	}
}

func (a *Aggregator) persist(key, value string) {
	if a.kv == nil {
		return
	}
	if err := a.kv.Set(key, value); err != nil {
		a.logger.WithError(err).WithField("key", key).Warn("failed to persist")
	}
}

// AddScore adds points. Non-positive amounts are ignored. A new maximum is
// persisted as the high score immediately.
func (a *Aggregator) AddScore(points int, reason string) int {
	if points <= 0 {
		return 0
	}
	a.score += points
	a.totalScore += points

	if a.score > a.highScore {
		a.highScore = a.score
		a.persist(KeyHighScore, strconv.Itoa(a.highScore))
	}
	a.logger.WithFields(logrus.Fields{"points": points, "reason": reason}).Debug("score added")
	return points
}

// AddKill counts a kill and awards points for it. Returns the points awarded.
func (a *Aggregator) AddKill(mob *MobInfo) int {
	a.kills++
	return a.AddScore(a.KillPoints(mob), "kill")
}

// KillPoints returns what a kill of mob is worth now.
func (a *Aggregator) KillPoints(mob *MobInfo) int {
	base := DefaultKillPoints
	if mob != nil {
		base = mob.Health/10 + int(mob.Speed*5)
	}
	return int(math.Floor(float64(base) * a.TimeMultiplier()))
}

// TimeMultiplier rewards survival: 1 + 0.1 per minute played, capped.
func (a *Aggregator) TimeMultiplier() float64 {
	minutes := a.clock.Now().Sub(a.sessionStart).Minutes()
	return math.Min(MaxTimeMultiplier, 1+max(0, minutes)*0.1)
}

// AddDamageDealt accumulates damage dealt.
func (a *Aggregator) AddDamageDealt(n int) {
	if n > 0 {
		a.damageDealt += n
	}
}

// AddDamageTaken accumulates damage taken.
func (a *Aggregator) AddDamageTaken(n int) {
	if n > 0 {
		a.damageTaken += n
	}
}

// Score returns the current score.
func (a *Aggregator) Score() int { return a.score }

// Kills returns the current kill count.
func (a *Aggregator) Kills() int { return a.kills }

// HighScore returns the best score seen.
func (a *Aggregator) HighScore() int { return a.highScore }

// PlayTime returns time spent in the current game.
func (a *Aggregator) PlayTime() time.Duration {
	if !a.inGame {
		return 0
	}
	return a.clock.Now().Sub(a.sessionStart)
}

// Stats returns a snapshot.
func (a *Aggregator) Stats() Stats {
	pt := a.PlayTime()
	return Stats{
		Score:       a.score,
		Kills:       a.kills,
		HighScore:   a.highScore,
		TotalScore:  a.totalScore,
		DamageDealt: a.damageDealt,
		DamageTaken: a.damageTaken,
		PlayTime:    pt,
		PlayTimeFmt: FormatPlayTime(pt),
		Lifetime:    a.lifetime,
	}
}

// Reset clears the per-round score, kills and damage. Lifetime stats are kept.
func (a *Aggregator) Reset() {
	a.score = 0
	a.kills = 0
	a.damageDealt = 0
	a.damageTaken = 0
	a.medalBonus = 0
	a.achieveBonus = 0
}

// StartNewGame resets round counters and starts the play clock.
func (a *Aggregator) StartNewGame() {
	a.Reset()
	a.sessionStart = a.clock.Now()
	a.inGame = true
}

// EndGame folds the game into lifetime stats and persists them.
func (a *Aggregator) EndGame() Stats {
	if !a.inGame {
		return a.Stats()
	}
	played := a.PlayTime()

	a.lifetime.GamesPlayed++
	a.lifetime.TotalKills += a.kills
	a.lifetime.TotalScore += a.score
	a.lifetime.BestScore = max(a.lifetime.BestScore, a.score)
	a.lifetime.DamageDealt += a.damageDealt
	a.lifetime.DamageTaken += a.damageTaken
	a.lifetime.MedalBonus += a.medalBonus
	a.lifetime.AchievementBonus += a.achieveBonus
	a.lifetime.PlayTimeSeconds += played.Seconds()

	stats := a.Stats()
	stats.PlayTime = played
	stats.PlayTimeFmt = FormatPlayTime(played)
	a.inGame = false

	data, err := json.Marshal(a.lifetime)
	if err != nil {
		a.logger.WithError(err).Warn("failed to encode player stats")
		return stats
	}
	a.persist(KeyPlayerStats, string(data))
	return stats
}

// FormatPlayTime renders d as mm:ss.
func FormatPlayTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
