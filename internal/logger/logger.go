package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup builds the application logger. Level is one of zerolog's level
// strings; format is "pretty" for human-readable dev output and anything
// else for JSON.
func Setup(level, format string) zerolog.Logger {
	var writer io.Writer
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	} else {
		writer = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Str("service", "campus-backend").
		Logger()

	// Code without an injected logger reports through the global.
	log.Logger = l
	return l
}
