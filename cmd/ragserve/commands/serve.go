// ABOUTME: Serve command running the HTTP API until interrupted
// ABOUTME: Graceful shutdown on SIGINT/SIGTERM with a drain timeout
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/minwoo/ragserve/internal/config"
	"github.com/minwoo/ragserve/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Exposes POST /openai/chat, /openai/chat-rag, /openai/rag/init and
/openai/rag/reset. Listen address comes from LISTEN_ADDR.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	engine, cleanup, logger, err := buildEngine()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.EnsureIndex(ctx); err != nil {
		logger.Warn("could not ensure vector index at startup", "error", err)
	}

	srv := server.New(engine, logger.With("component", "http"), cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	}
	return nil
}
