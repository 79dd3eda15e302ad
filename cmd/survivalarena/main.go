// Package main is the entry point for Survival Arena.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/samdwyer/survivalarena/internal/game"
	"github.com/samdwyer/survivalarena/internal/settings"
	"github.com/samdwyer/survivalarena/internal/storage"
	"github.com/samdwyer/survivalarena/internal/telemetry"
)

func main() {
	settings.LoadEnvFiles()
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		// The game still works without observability.
		log.WithError(err).Warn("telemetry setup failed")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("telemetry shutdown failed")
			}
		}()
	}

	cfg := game.ConfigFromEnv()

	var kv storage.KV
	if cfg.DBPath != "" {
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.WithError(err).WithField("path", cfg.DBPath).Warn("scores will not be saved")
		} else {
			defer db.Close()
			kv = db
		}
	}

	g, err := game.New(cfg, kv, log.StandardLogger())
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupLogging sends logs to a file so they do not draw over the terminal UI.
func setupLogging() {
	level, err := log.ParseLevel(settings.GetenvStrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	path := settings.GetenvStrDefault("LOG_FILE", "survivalarena.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.WithError(err).Warn("failed to open log file")
		return
	}
	log.SetOutput(f)
}
