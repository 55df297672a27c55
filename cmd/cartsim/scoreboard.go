package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"chillista/internal/ports"
)

// localScoreboard keeps the best day of this run in memory and logs every result.
type localScoreboard struct {
	mu   sync.Mutex
	log  zerolog.Logger
	best ports.DayResult
}

var _ ports.ScoreboardPort = (*localScoreboard)(nil)

func newLocalScoreboard(log zerolog.Logger) *localScoreboard {
	return &localScoreboard{log: log}
}

func (l *localScoreboard) RecordDay(ctx context.Context, result ports.DayResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record := result.Earnings > l.best.Earnings
	if record {
		l.best = result
	}
	l.log.Info().
		Int("day", result.Day).
		Float64("earnings", result.Earnings).
		Int("served", result.Served).
		Int("reputation", result.Reputation).
		Bool("best_day", record).
		Msg("Day recorded")
	return nil
}
