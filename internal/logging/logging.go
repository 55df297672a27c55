// Package logging configures zerolog for processes that run outside Nakama
// and adapts it to runtime.Logger so shared code logs the same way in both hosts.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	once sync.Once
	log  zerolog.Logger
)

func configure(out io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = timeFormat
	zerolog.SetGlobalLevel(level)
	log = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}).
		With().Timestamp().Logger()
}

// GetLoggerConfigured returns the process logger, configuring it on first use.
// Later calls return the same logger regardless of level.
func GetLoggerConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() { configure(os.Stdout, level) })
	return &log
}

// GetLogger returns the process logger at info level.
func GetLogger() *zerolog.Logger {
	return GetLoggerConfigured(zerolog.InfoLevel)
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
