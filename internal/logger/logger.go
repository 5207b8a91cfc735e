// Package logger constructs the zerolog loggers used across the
// application.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a structured logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger for interactive runs.
// Logs go to stderr so the report table on stdout stays machine-readable.
func NewConsole(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}
