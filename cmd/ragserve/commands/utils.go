// ABOUTME: Shared wiring helpers for CLI commands
// ABOUTME: Builds config, logger, and engine once per command invocation
package commands

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/minwoo/ragserve/internal/app"
	"github.com/minwoo/ragserve/internal/config"
	"github.com/minwoo/ragserve/internal/log"
	"github.com/minwoo/ragserve/internal/rag"
)

// buildLogger creates a logger honoring the global flags.
func buildLogger() log.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelWarn
	}
	return log.New(log.Config{Level: level, Text: true})
}

// buildEngine loads .env and config, then wires the engine. The cleanup
// func must be called when the command finishes.
func buildEngine() (*rag.Engine, func() error, log.Logger, error) {
	// Load .env for API keys; absence is fine in production
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := buildLogger()

	engine, cleanup, err := app.Build(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building engine: %w", err)
	}
	return engine, cleanup, logger, nil
}
