package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/moshehbenavraham/graphmind/internal/config"
)

// newLogger builds the structured logger from configuration. Logs go to
// stderr so they never interleave with the report on stdout.
func newLogger(cfg config.LoggingConfig, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	var log zerolog.Logger
	if cfg.Format == "json" {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return log.Level(level).With().Timestamp().Logger()
}
