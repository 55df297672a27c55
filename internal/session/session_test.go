package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"chillista/internal/app"
	"chillista/internal/domain"
	"chillista/internal/persist"
	"chillista/internal/ports"
)

type noopLogger struct{}

func (l noopLogger) Debug(format string, v ...interface{})                   {}
func (l noopLogger) Info(format string, v ...interface{})                    {}
func (l noopLogger) Warn(format string, v ...interface{})                    {}
func (l noopLogger) Error(format string, v ...interface{})                   {}
func (l noopLogger) WithField(key string, v interface{}) runtime.Logger      { return l }
func (l noopLogger) WithFields(fields map[string]interface{}) runtime.Logger { return l }
func (l noopLogger) Fields() map[string]interface{}                          { return nil }

type memSaves struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	writes   int
	writeErr error
	loadErr  error
}

func newMemSaves() *memSaves { return &memSaves{blobs: map[string][]byte{}} }

func (m *memSaves) LoadSave(ctx context.Context, userID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	b, ok := m.blobs[userID]
	if !ok {
		return nil, ports.ErrSaveNotFound
	}
	return b, nil
}

func (m *memSaves) WriteSave(ctx context.Context, userID string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.blobs[userID] = blob
	return nil
}

func (m *memSaves) CreateSaveOnce(ctx context.Context, userID string, blob []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[userID]; ok {
		return false, nil
	}
	m.blobs[userID] = blob
	return true, nil
}

func (m *memSaves) DeleteSave(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, userID)
	return nil
}

type fakeScores struct {
	results []ports.DayResult
	err     error
}

func (f *fakeScores) RecordDay(ctx context.Context, r ports.DayResult) error {
	if f.err != nil {
		return f.err
	}
	f.results = append(f.results, r)
	return nil
}

func testService() *app.Service {
	t := domain.DefaultTuning
	t.MishapChance = 0
	return app.NewService(rand.New(rand.NewSource(3)), t)
}

func seed(t *testing.T, saves *memSaves, svc *app.Service, mutate func(*domain.State)) {
	t.Helper()
	st := svc.NewGame()
	st.GameStarted = true
	st.Debug.CustomerArrivalDisabled = true
	if mutate != nil {
		mutate(st)
	}
	blob, err := persist.Encode(st, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	saves.blobs["u1"] = blob
}

func open(t *testing.T, saves *memSaves, scores ports.ScoreboardPort, every int) *Session {
	t.Helper()
	s, err := Open(context.Background(), testService(), saves, scores, noopLogger{}, Options{UserID: "u1", Username: "ken", AutosaveEvery: every})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func hasKind(events []app.Event, k app.EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestOpen_FreshWhenMissingOrMalformed(t *testing.T) {
	saves := newMemSaves()
	s := open(t, saves, nil, 0)
	if s.State().GameStarted || s.State().Day != 1 {
		t.Fatalf("expected a fresh cart, got %+v", s.State())
	}

	saves.blobs["u1"] = []byte("{broken")
	s = open(t, saves, nil, 0)
	if s.State().Cash != domain.DefaultTuning.StartingCash {
		t.Fatalf("malformed save should start fresh, cash=%v", s.State().Cash)
	}
}

func TestOpen_StoreErrorIsReturned(t *testing.T) {
	saves := newMemSaves()
	saves.loadErr = errors.New("disk on fire")
	if _, err := Open(context.Background(), testService(), saves, nil, noopLogger{}, Options{UserID: "u1"}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestOpen_RestoresSave(t *testing.T) {
	saves := newMemSaves()
	svc := testService()
	seed(t, saves, svc, func(st *domain.State) {
		st.Day = 4
		st.Cash = 88.5
	})
	s := open(t, saves, nil, 0)
	if s.State().Day != 4 || s.State().Cash != 88.5 {
		t.Fatalf("save not restored: day=%d cash=%v", s.State().Day, s.State().Cash)
	}
}

func TestTick_PausedDoesNothing(t *testing.T) {
	saves := newMemSaves()
	seed(t, saves, testService(), nil)
	s := open(t, saves, nil, 0)

	s.Pause()
	s.Tick(context.Background())
	if s.State().MinutesElapsed != 0 {
		t.Fatalf("paused session advanced the clock")
	}
	s.Resume()
	s.Tick(context.Background())
	if s.State().MinutesElapsed != 1 {
		t.Fatalf("minutes = %d, want 1", s.State().MinutesElapsed)
	}
}

func TestTick_Autosave(t *testing.T) {
	saves := newMemSaves()
	seed(t, saves, testService(), nil)
	s := open(t, saves, nil, 3)

	for i := 0; i < 7; i++ {
		s.Tick(context.Background())
	}
	if saves.writes != 2 {
		t.Fatalf("writes = %d, want 2", saves.writes)
	}
}

func TestTick_DayEndSavesAndRecords(t *testing.T) {
	saves := newMemSaves()
	scores := &fakeScores{}
	seed(t, saves, testService(), func(st *domain.State) {
		st.MinutesElapsed = domain.DefaultTuning.DayLengthMinutes - 1
		st.Stats.DailyEarnings = 42
		st.Stats.Reputation = 9
	})
	s := open(t, saves, scores, 0)

	events := s.Tick(context.Background())
	if !hasKind(events, app.EventDayEnded) || !hasKind(events, app.EventScoreboardUpdated) {
		t.Fatalf("events = %+v", events)
	}
	if saves.writes != 1 {
		t.Fatalf("day end should save, writes=%d", saves.writes)
	}
	if len(scores.results) != 1 {
		t.Fatalf("results = %+v", scores.results)
	}
	if r := scores.results[0]; r.Earnings != 42 || r.Reputation != 9 || r.Day != 1 || r.Username != "ken" {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestTick_ScoreboardFailureIsSoft(t *testing.T) {
	saves := newMemSaves()
	scores := &fakeScores{err: errors.New("leaderboard down")}
	seed(t, saves, testService(), func(st *domain.State) {
		st.MinutesElapsed = domain.DefaultTuning.DayLengthMinutes - 1
	})
	s := open(t, saves, scores, 0)

	events := s.Tick(context.Background())
	if !hasKind(events, app.EventDayEnded) || hasKind(events, app.EventScoreboardUpdated) {
		t.Fatalf("events = %+v", events)
	}
	if saves.writes != 1 {
		t.Fatalf("save should still happen")
	}
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name      string
		cmd       app.Command
		wantErr   bool
		wantSaves int
	}{
		{name: "purchase saves", cmd: app.Command{Kind: app.CmdBuy, Item: "CUPS", Quantity: 10}, wantSaves: 1},
		{name: "trash does not save", cmd: app.Command{Kind: app.CmdTrash}, wantSaves: 0},
		{name: "rejection does not save", cmd: app.Command{Kind: app.CmdNewDay}, wantErr: true},
		{name: "tick is not a player command", cmd: app.Command{Kind: app.CmdTick}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saves := newMemSaves()
			seed(t, saves, testService(), nil)
			s := open(t, saves, nil, 0)

			_, err := s.Handle(context.Background(), tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if saves.writes != tt.wantSaves {
				t.Fatalf("writes = %d, want %d", saves.writes, tt.wantSaves)
			}
		})
	}
}

func TestHandle_SaveFailureIsReported(t *testing.T) {
	saves := newMemSaves()
	seed(t, saves, testService(), nil)
	s := open(t, saves, nil, 0)
	saves.writeErr = errors.New("quota")

	events, err := s.Handle(context.Background(), app.Command{Kind: app.CmdBuy, Item: "CUPS", Quantity: 10})
	if err != nil {
		t.Fatalf("a failed save must not fail the command: %v", err)
	}
	if !hasKind(events, app.EventSaveFailed) {
		t.Fatalf("expected save_failed, got %+v", events)
	}
}

func TestReset(t *testing.T) {
	saves := newMemSaves()
	seed(t, saves, testService(), func(st *domain.State) { st.Day = 9 })
	s := open(t, saves, nil, 0)

	var seen []app.Event
	s.Subscribe(func(_ *domain.State, events []app.Event) { seen = append(seen, events...) })

	if _, err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.State().Day != 1 || s.State().GameStarted {
		t.Fatalf("state not reset: %+v", s.State())
	}
	if _, ok := saves.blobs["u1"]; ok {
		t.Fatalf("save should be deleted")
	}
	if !hasKind(seen, app.EventGameReset) {
		t.Fatalf("subscribers should see the reset")
	}
}
