package mode

import (
	"time"

	"github.com/samdwyer/survivalarena/internal/gamedata"
)

// Stats holds the running counters of a round.
type Stats struct {
	Kills             int
	Score             int
	DamageDealt       int
	DamageTaken       int
	PowerUpsCollected int
	BossesDefeated    int
}

// Outcome describes how a round ended.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeTimeUp  Outcome = "time_up"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeDraw    Outcome = "draw"
	OutcomeEnded   Outcome = "ended" // Ended by the caller before any win condition
)

// Results is the snapshot returned when a round ends.
type Results struct {
	Mode      gamedata.ModeID
	ModeName  string
	Stats     Stats
	Elapsed   time.Duration // Round time accumulated by Update
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   Outcome

	TimeAttack *TimeAttackResults // Set for TimeAttack rounds
	TeamBattle *TeamBattleResults // Set for TeamBattle rounds
}

// TimeAttackResults are the derived metrics of a TimeAttack round.
type TimeAttackResults struct {
	PointsPerMinute float64
	KillsPerMinute  float64
}

// TeamBattleResults are the derived metrics of a TeamBattle round.
type TeamBattleResults struct {
	Winner string // Empty for a draw
	Reason string
	Teams  []TeamStats
	Rating TeamworkRating
}

// perMinute returns n per minute of elapsed, or 0 when no time has passed.
func perMinute(n int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return float64(n) / minutes
}
