// ABOUTME: Logger factory producing structured slog loggers for dependency injection
// ABOUTME: JSON output by default to match the service's structured log lines
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is an alias for *slog.Logger so components can accept it as a
// constructor dependency without defining their own interface.
type Logger = *slog.Logger

// Config defines logger options.
type Config struct {
	Level slog.Level
	// Text switches to the human-readable text handler. Default is JSON.
	Text bool
}

// New creates a logger writing to stderr.
func New(cfg Config) Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger writing to w. Useful for capturing
// output in tests.
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
