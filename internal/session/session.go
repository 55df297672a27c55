// Package session runs one player's cart: the store, its save slot and the
// scoreboard. Hosts (the Nakama match loop, the simulator) feed it ticks and
// commands and forward the events it returns.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"chillista/internal/app"
	"chillista/internal/domain"
	"chillista/internal/persist"
	"chillista/internal/ports"
)

// Options identify the player and set the autosave cadence.
type Options struct {
	UserID   string
	Username string
	// AutosaveEvery saves after this many ticks; zero disables periodic saves.
	AutosaveEvery int
}

// Session is one live cart. It is safe for concurrent use.
type Session struct {
	opts   Options
	svc    *app.Service
	store  *app.Store
	saves  ports.SaveStore
	scores ports.ScoreboardPort
	logger runtime.Logger
	now    func() time.Time

	mu     sync.Mutex
	paused bool
	ticks  int
}

// Open loads the player's save and returns a running session. A missing or
// unreadable save starts a fresh cart; only store I/O failures are returned.
// scores may be nil.
func Open(ctx context.Context, svc *app.Service, saves ports.SaveStore, scores ports.ScoreboardPort, logger runtime.Logger, opts Options) (*Session, error) {
	if saves == nil {
		return nil, errors.New("session: nil save store")
	}
	logger = logger.WithField("user_id", opts.UserID)

	state, err := load(ctx, svc, saves, logger, opts.UserID)
	if err != nil {
		return nil, err
	}
	return &Session{
		opts:   opts,
		svc:    svc,
		store:  app.NewStore(svc, state),
		saves:  saves,
		scores: scores,
		logger: logger,
		now:    time.Now,
	}, nil
}

func load(ctx context.Context, svc *app.Service, saves ports.SaveStore, logger runtime.Logger, userID string) (*domain.State, error) {
	blob, err := saves.LoadSave(ctx, userID)
	if errors.Is(err, ports.ErrSaveNotFound) {
		logger.Info("No save found, starting a new cart")
		return svc.NewGame(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load save: %w", err)
	}

	state, savedAt, err := persist.Decode(blob, svc.Tuning())
	if err != nil {
		logger.Warn("Save unreadable, starting a new cart: %v", err)
		return svc.NewGame(), nil
	}
	logger.WithFields(map[string]interface{}{"day": state.Day, "saved_at": savedAt}).Info("Save loaded")
	return state, nil
}

// State returns the current snapshot. Callers must not modify it.
func (s *Session) State() *domain.State { return s.store.State() }

// UserID returns the owner of the cart.
func (s *Session) UserID() string { return s.opts.UserID }

// Subscribe forwards every committed transition to l.
func (s *Session) Subscribe(l app.Listener) { s.store.Subscribe(l) }

// Pause stops the clock without touching game state.
func (s *Session) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume restarts the clock.
func (s *Session) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Paused reports whether ticks are being ignored.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Tick advances the clock by one tick. It does nothing while paused.
func (s *Session) Tick(ctx context.Context) []app.Event {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return nil
	}
	s.ticks++
	due := s.opts.AutosaveEvery > 0 && s.ticks%s.opts.AutosaveEvery == 0
	s.mu.Unlock()

	events, _ := s.store.Dispatch(app.Command{Kind: app.CmdTick})
	events = append(events, s.afterCommit(ctx, events, due)...)
	return events
}

// Handle applies a player command. A rejected command returns its
// action_rejected event together with the error.
func (s *Session) Handle(ctx context.Context, cmd app.Command) ([]app.Event, error) {
	if cmd.Kind == app.CmdTick {
		return nil, app.ErrUnknownCommand
	}
	events, err := s.store.Dispatch(cmd)
	if err != nil {
		s.logger.WithField("command", string(cmd.Kind)).Debug("Command rejected: %v", err)
		return events, err
	}
	events = append(events, s.afterCommit(ctx, events, cmd.Persistent())...)
	return events, nil
}

func (s *Session) afterCommit(ctx context.Context, events []app.Event, save bool) []app.Event {
	var extra []app.Event
	for _, ev := range events {
		if ev.Kind != app.EventDayEnded {
			continue
		}
		save = true
		if p, ok := ev.Payload.(app.DayEndedPayload); ok {
			if e, ok := s.recordDay(ctx, p.Summary); ok {
				extra = append(extra, e)
			}
		}
	}
	if save {
		if err := s.Save(ctx); err != nil {
			extra = append(extra, app.Event{
				Kind:    app.EventSaveFailed,
				Tone:    app.ToneError,
				Message: "Couldn't save your progress. We'll try again shortly.",
			})
		}
	}
	return extra
}

func (s *Session) recordDay(ctx context.Context, sum domain.DaySummary) (app.Event, bool) {
	if s.scores == nil {
		return app.Event{}, false
	}
	result := ports.DayResult{
		UserID:     s.opts.UserID,
		Username:   s.opts.Username,
		Day:        sum.Day,
		Earnings:   sum.Earnings,
		Served:     sum.CustomersServed,
		Reputation: sum.Reputation,
	}
	if err := s.scores.RecordDay(ctx, result); err != nil {
		s.logger.WithField("day", sum.Day).Warn("Failed to record day result: %v", err)
		return app.Event{}, false
	}
	return app.Event{
		Kind:    app.EventScoreboardUpdated,
		Tone:    app.ToneSystem,
		Payload: app.DayEndedPayload{Summary: sum},
	}, true
}

// Save writes the current state to the player's slot. Failures are logged
// and returned; the game keeps running either way.
func (s *Session) Save(ctx context.Context) error {
	blob, err := persist.Encode(s.store.State(), s.now())
	if err != nil {
		s.logger.Error("Failed to encode save: %v", err)
		return err
	}
	if err := s.saves.WriteSave(ctx, s.opts.UserID, blob); err != nil {
		s.logger.Error("Failed to write save: %v", err)
		return fmt.Errorf("session: write save: %w", err)
	}
	return nil
}

// Reset deletes the save and starts the cart over.
func (s *Session) Reset(ctx context.Context) ([]app.Event, error) {
	if err := s.saves.DeleteSave(ctx, s.opts.UserID); err != nil {
		return nil, fmt.Errorf("session: delete save: %w", err)
	}
	ev := app.Event{
		Kind:    app.EventGameReset,
		Tone:    app.ToneSystem,
		Sound:   domain.SoundChime,
		Message: "Progress reset. A brand new cart awaits.",
	}
	s.store.Replace(s.svc.NewGame(), ev)

	s.mu.Lock()
	s.ticks = 0
	s.mu.Unlock()
	s.logger.Info("Save reset")
	return []app.Event{ev}, nil
}
