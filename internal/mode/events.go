package mode

import (
	"time"

	"github.com/samdwyer/survivalarena/internal/event"
	"github.com/samdwyer/survivalarena/internal/gamedata"
)

// Events emitted by the engine.
const (
	EventModeSelected      event.Name = "mode_selected"
	EventModeStart         event.Name = "mode_start"
	EventTimeWarning       event.Name = "time_warning"
	EventTimeUp            event.Name = "time_up"
	EventTeamVictory       event.Name = "team_victory"
	EventTeamDefeat        event.Name = "team_defeat"
	EventTeamDraw          event.Name = "team_draw"
	EventModeEnd           event.Name = "mode_end"
	EventKillRegistered    event.Name = "kill_registered"
	EventBossDefeated      event.Name = "boss_defeated"
	EventTeamMemberAdded   event.Name = "team_member_added"
	EventTeamMemberRemoved event.Name = "team_member_removed"
	EventTeamKill          event.Name = "team_kill"
)

// SelectedEvent is the payload of mode_selected.
type SelectedEvent struct {
	Mode     gamedata.ModeID
	Name     string
	Duration time.Duration // 0 for untimed modes
}

// StartEvent is the payload of mode_start.
type StartEvent struct {
	Mode      gamedata.ModeID
	Duration  time.Duration
	StartedAt time.Time
}

// WarningEvent is the payload of time_warning.
type WarningEvent struct {
	Threshold int     // Seconds remaining that triggered the warning
	Remaining float64 // Actual seconds remaining
}

// TimeUpEvent is the payload of time_up.
type TimeUpEvent struct {
	Elapsed float64
	Stats   Stats
}

// Victory reasons.
const (
	ReasonElimination = "elimination"
	ReasonTime        = "time"
)

// VictoryEvent is the payload of team_victory, team_defeat and team_draw.
// Winner is empty for a draw.
type VictoryEvent struct {
	Winner string
	Loser  string
	Reason string
}

// KillEvent is the payload of kill_registered.
type KillEvent struct {
	MobKind    string
	Points     int
	TotalKills int
}

// BossEvent is the payload of boss_defeated.
type BossEvent struct {
	BossKind string
	Points   int
}

// MemberEvent is the payload of team_member_added and team_member_removed.
type MemberEvent struct {
	TeamID string
	Member Member
}

// TeamKillEvent is the payload of team_kill.
type TeamKillEvent struct {
	TeamID   string
	MemberID string
	Points   int
	Kills    int
}
