package game

import (
	"testing"
	"time"

	"github.com/samdwyer/survivalarena/internal/gamedata"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SURVIVALARENA_SEED", "42")
	t.Setenv("SURVIVALARENA_MODE", "team_battle")
	t.Setenv("SURVIVALARENA_RESPAWN_DELAY", "5s")
	t.Setenv("SURVIVALARENA_MAX_ELEMENTS", "6")
	t.Setenv("SURVIVALARENA_LOADOUT", "tank")

	cfg := ConfigFromEnv()

	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Mode != gamedata.ModeTeamBattle {
		t.Errorf("Mode = %q, want %q", cfg.Mode, gamedata.ModeTeamBattle)
	}
	if cfg.RespawnDelay != 5*time.Second {
		t.Errorf("RespawnDelay = %v, want 5s", cfg.RespawnDelay)
	}
	if cfg.Environment.MaxElements != 6 {
		t.Errorf("MaxElements = %d, want 6", cfg.Environment.MaxElements)
	}
	if cfg.Loadout != "tank" {
		t.Errorf("Loadout = %q, want tank", cfg.Loadout)
	}
	if cfg.DBPath != "survivalarena.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
}

func TestConfigFromEnvNoPersist(t *testing.T) {
	t.Setenv("SURVIVALARENA_NO_PERSIST", "true")

	if cfg := ConfigFromEnv(); cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateReady, "ready"},
		{StatePlaying, "playing"},
		{StateRespawning, "respawning"},
		{StateRoundOver, "round_over"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
