// Package logx provides the shared logger for finboard.
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger at the given level. Unknown levels fall back
// to info.
func New(level string) zerolog.Logger {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Silent returns a logger that discards all output, for tests.
func Silent() zerolog.Logger {
	return zerolog.New(io.Discard)
}
