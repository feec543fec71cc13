// Package logging sets up zerolog for the CLI and adapts it to the
// spotify client's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger with the specified configuration.
// An empty logFile logs to stderr with the console writer.
func New(logFile, logLevel string) zerolog.Logger {
	// Set up output
	var output io.Writer = os.Stderr
	console := true
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			output = f
			console = false
		}
	}

	if console {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(ParseLevel(logLevel)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a flag value to a zerolog level, defaulting to info.
func ParseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SpotifyLogger adapts a zerolog.Logger to spotify.Logger.
type SpotifyLogger struct {
	Logger zerolog.Logger
}

// Debugf implements spotify.Logger.
func (l SpotifyLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug().Msgf(format, args...)
}
