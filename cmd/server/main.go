// ABOUTME: Main entry point for the RAG HTTP server
// ABOUTME: Loads config, wires the engine, and serves until interrupted
package main

import (
	"context"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/minwoo/ragserve/internal/app"
	"github.com/minwoo/ragserve/internal/config"
	"github.com/minwoo/ragserve/internal/log"
	"github.com/minwoo/ragserve/internal/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		stdlog.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		stdlog.Println("Warning: OPENAI_API_KEY not set - embedding and generation calls will fail")
	}

	logger := log.New(log.Config{Level: slog.LevelInfo})

	engine, cleanup, err := app.Build(cfg, logger)
	if err != nil {
		stdlog.Fatalf("Failed to build engine: %v", err)
	}
	defer func() { _ = cleanup() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.EnsureIndex(ctx); err != nil {
		logger.Warn("could not ensure vector index at startup", "error", err)
	}

	srv := server.New(engine, logger.With("component", "http"), cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			stdlog.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
