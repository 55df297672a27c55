package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chillista/internal/app"
	"chillista/internal/autopilot"
	"chillista/internal/session"
)

// maxActionsPerMinute bounds how much the barista does between two ticks.
const maxActionsPerMinute = 12

var errSimDone = errors.New("simulation finished")

type simulator struct {
	sess  *session.Session
	agent *autopilot.Agent
	log   zerolog.Logger
	days  int
}

// finished reports whether the last requested day has closed.
func (s *simulator) finished() bool {
	st := s.sess.State()
	return st.DayEnded && st.Day >= s.days
}

// act lets the barista work until it has nothing to do or is told no.
func (s *simulator) act(ctx context.Context) {
	for i := 0; i < maxActionsPerMinute; i++ {
		if s.finished() {
			return
		}
		cmd, ok := s.agent.Act(s.sess.State())
		if !ok {
			return
		}
		events, err := s.sess.Handle(ctx, cmd)
		s.logEvents(events)
		if err != nil {
			return
		}
	}
}

func (s *simulator) tick(ctx context.Context) {
	s.logEvents(s.sess.Tick(ctx))
}

// runFast plays minute by minute without waiting on the wall clock.
func (s *simulator) runFast(ctx context.Context) error {
	for !s.finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.act(ctx)
		if s.finished() {
			break
		}
		s.tick(ctx)
	}
	return nil
}

// runRealtime drives the clock and the barista from separate goroutines.
// The barista gets four chances per game minute.
func (s *simulator) runRealtime(ctx context.Context, minute time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if s.finished() {
					return errSimDone
				}
				s.tick(ctx)
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(minute / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				s.act(ctx)
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, errSimDone) {
		return nil
	}
	return err
}

func (s *simulator) logEvents(events []app.Event) {
	for _, ev := range events {
		if ev.Message == "" {
			continue
		}
		level := zerolog.InfoLevel
		switch {
		case ev.Kind == app.EventDayEnded || ev.Kind == app.EventDayStarted:
		case ev.Tone == app.ToneError:
			level = zerolog.WarnLevel
		case ev.Tone == app.ToneSystem:
			level = zerolog.DebugLevel
		}
		s.log.WithLevel(level).Str("kind", string(ev.Kind)).Str("sound", string(ev.Sound)).Msg(ev.Message)
	}
}

func (s *simulator) summary() {
	st := s.sess.State()
	entry := s.log.Info().
		Int("day", st.Day).
		Float64("cash", st.Cash).
		Int("reputation", st.Stats.Reputation).
		Strs("upgrades", st.Upgrades)
	if b, ok := s.agent.Strategy.(*autopilot.CarefulBarista); ok {
		entry = entry.Int("served", b.Served).Int("walkouts", b.Walkouts)
	}
	entry.Msg("Cart closed")
}
