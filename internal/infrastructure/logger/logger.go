package logger

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu           sync.RWMutex
	globalLogger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// Get returns the process-wide logger. Until New is called it writes
// console output at info level.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New constructs a logger from level and format ("json" or "console") and
// installs it as the global one.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var l zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}
	l = l.Level(lvl)

	mu.Lock()
	globalLogger = l
	mu.Unlock()
	return l, nil
}
