// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the output format and minimum level.
type Config struct {
	// Level is a zerolog level name (debug, info, warn, error). Empty means info.
	Level string
	// Format is "json" or "console". Empty means console.
	Format string
}

// Init replaces the global logger according to cfg and returns it.
func Init(cfg Config) zerolog.Logger {
	return InitWriter(cfg, os.Stderr)
}

// InitWriter is Init with an explicit destination.
func InitWriter(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	out := w
	if !strings.EqualFold(cfg.Format, "json") {
		// Use ConsoleWriter for human-readable output in development
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
	return log.Logger
}

// ParseLevel returns the named level, falling back to info.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
