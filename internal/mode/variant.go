package mode

import (
	"math"
	"time"

	"github.com/samdwyer/survivalarena/internal/gamedata"
)

// Variant is the active round mode. It is one of *TimeAttack, *TeamBattle or
// *Placeholder; the unexported method keeps the set closed.
type Variant interface {
	Def() *gamedata.ModeDef
	Duration() time.Duration // 0 for untimed
	variant()
}

// Warning thresholds in seconds remaining, descending.
var (
	timeAttackWarnings = []int{60, 30, 10, 5}
	teamBattleWarnings = []int{30, 15, 10, 5}
)

type base struct {
	def      *gamedata.ModeDef
	duration time.Duration
}

func (b *base) Def() *gamedata.ModeDef  { return b.def }
func (b *base) Duration() time.Duration { return b.duration }
func (b *base) variant()                {}

func (b *base) multiplier() float64 {
	if b.def == nil || b.def.ScoreMultiplier <= 0 {
		return 1
	}
	return b.def.ScoreMultiplier
}

// TimeAttack is a timed round scored on points.
type TimeAttack struct {
	base
}

// TeamBattle pits the player's team against an AI team.
type TeamBattle struct {
	base
	Teams       []*Team
	PlayerTeam  string
	MaxTeamSize int
}

// Placeholder is an untimed round with no win condition.
type Placeholder struct {
	base
}

// newVariant builds the variant for def, applying the duration override.
func newVariant(def *gamedata.ModeDef, opts Options) Variant {
	b := base{def: def, duration: def.Duration()}
	if opts.Duration != nil {
		b.duration = max(0, *opts.Duration)
	}

	switch def.ID {
	case gamedata.ModeTimeAttack:
		return &TimeAttack{base: b}
	case gamedata.ModeTeamBattle:
		return newTeamBattle(b)
	default:
		return &Placeholder{base: b}
	}
}

func newTeamBattle(b base) *TeamBattle {
	defs := b.def.Teams
	if len(defs) < 2 {
		defs = []gamedata.TeamDef{
			{ID: "blue", Name: "Blue Team"},
			{ID: "red", Name: "Red Team"},
		}
	}
	size := b.def.MaxTeamSize
	if size <= 0 {
		size = DefaultMaxTeamSize
	}

	tb := &TeamBattle{
		base:        b,
		PlayerTeam:  defs[0].ID,
		MaxTeamSize: size,
	}
	for _, d := range defs[:2] {
		tb.Teams = append(tb.Teams, &Team{ID: d.ID, Name: d.Name, Color: d.Color})
	}
	return tb
}

// Team returns the team with the given id, or nil.
func (tb *TeamBattle) Team(id string) *Team {
	for _, t := range tb.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Own returns the player's team.
func (tb *TeamBattle) Own() *Team { return tb.Team(tb.PlayerTeam) }

// Opponent returns the AI team.
func (tb *TeamBattle) Opponent() *Team {
	for _, t := range tb.Teams {
		if t.ID != tb.PlayerTeam {
			return t
		}
	}
	return nil
}

// remaining returns seconds left in a round of v after elapsed seconds.
func remaining(v Variant, elapsed float64) float64 {
	d := v.Duration()
	if d <= 0 {
		return math.Inf(1)
	}
	return d.Seconds() - elapsed
}
