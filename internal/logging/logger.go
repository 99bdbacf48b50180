// Package logging builds the structured loggers used across the service.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Config holds configuration parameters for logging.
type Config struct {
	// AppName is added to every entry.
	AppName string
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Format selects "json" or human-readable "text" output.
	Format string
	// Output defaults to stderr when nil.
	Output io.Writer
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New constructs the root logger.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level, slog.LevelInfo)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if cfg.AppName != "" {
		logger = logger.With("app", cfg.AppName)
	}
	return logger
}

// Named returns a child logger tagged with the component name.
func Named(logger *slog.Logger, name string) *slog.Logger {
	return logger.With("logger", name)
}

// Nop returns a logger that drops everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StdLogger adapts logger for code that expects a *log.Logger, such as
// http.Server.ErrorLog.
func StdLogger(logger *slog.Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Handler(), level)
}

// ParseLevel maps a level name to its slog.Level, falling back when unknown.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fallback
	}
	return level
}
