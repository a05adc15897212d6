// Package logging builds the slog loggers used across waypoint.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/panbanda/waypoint/pkg/config"
)

// QuietEnv suppresses per-phase diagnostics when set to a true value.
const QuietEnv = "WAYPOINT_QUIET"

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewDiscard creates a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromString converts a string to a slog.Level.
// Supports: debug, info, warn, error (case-insensitive).
// Returns slog.LevelInfo for unrecognized strings.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Level maps the output flags to a level. Quiet wins over verbose and
// only hides diagnostics; findings are never written through the logger.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// QuietFromEnv reports whether QuietEnv holds a true value.
func QuietFromEnv() bool {
	v, ok := os.LookupEnv(QuietEnv)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// FromConfig creates a logger for the output section of cfg, honouring
// QuietEnv on top of it. LogLevel is used only when neither flag is set.
func FromConfig(w io.Writer, cfg config.OutputConfig) *slog.Logger {
	quiet := cfg.Quiet || QuietFromEnv()
	level := Level(cfg.Verbose, quiet)
	if !cfg.Verbose && !quiet && cfg.LogLevel != "" {
		level = LevelFromString(cfg.LogLevel)
	}
	return New(w, level)
}
