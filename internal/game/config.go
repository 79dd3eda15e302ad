package game

import (
	"time"

	"github.com/samdwyer/survivalarena/internal/environment"
	"github.com/samdwyer/survivalarena/internal/gamedata"
	"github.com/samdwyer/survivalarena/internal/respawn"
	"github.com/samdwyer/survivalarena/internal/settings"
	"github.com/samdwyer/survivalarena/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible arenas.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	ArenaWidth   float64
	ArenaHeight  float64
	TickRate     time.Duration // Time between simulation ticks
	RespawnDelay time.Duration
	Mode         gamedata.ModeID
	Loadout      string // Loadout ID from loadouts.json
	PlayerName   string
	DBPath       string // SQLite file for scores; empty keeps scores in memory
	MaxMobs      int
	Environment  environment.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ArenaWidth:   world.DefaultWidth,
		ArenaHeight:  world.DefaultHeight,
		TickRate:     50 * time.Millisecond,
		RespawnDelay: respawn.DefaultDelay,
		Mode:         gamedata.ModeTimeAttack,
		Loadout:      "assault",
		PlayerName:   "Player",
		DBPath:       "survivalarena.db",
		MaxMobs:      20,
		Environment:  environment.DefaultConfig(),
	}
}

// ConfigFromEnv returns DefaultConfig overridden by SURVIVALARENA_* variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := settings.GetenvInt("SEED"); v != 0 {
		cfg.Seed = int64(v)
	}
	if v := settings.GetenvFloat("ARENA_WIDTH"); v > 0 {
		cfg.ArenaWidth = v
	}
	if v := settings.GetenvFloat("ARENA_HEIGHT"); v > 0 {
		cfg.ArenaHeight = v
	}
	if v := settings.GetenvDuration("TICK_RATE"); v > 0 {
		cfg.TickRate = v
	}
	if v := settings.GetenvDuration("RESPAWN_DELAY"); v > 0 {
		cfg.RespawnDelay = v
	}
	if v := settings.GetenvStr("MODE"); v != "" {
		cfg.Mode = gamedata.ModeID(v)
	}
	if v := settings.GetenvInt("MAX_MOBS"); v > 0 {
		cfg.MaxMobs = v
	}
	if v := settings.GetenvInt("MAX_ELEMENTS"); v > 0 {
		cfg.Environment.MaxElements = v
	}
	cfg.Loadout = settings.GetenvStrDefault("LOADOUT", cfg.Loadout)
	cfg.PlayerName = settings.GetenvStrDefault("PLAYER_NAME", cfg.PlayerName)
	cfg.DBPath = settings.GetenvStrDefault("DB_PATH", cfg.DBPath)
	if settings.GetenvBool("NO_PERSIST") {
		cfg.DBPath = ""
	}
	return cfg
}
