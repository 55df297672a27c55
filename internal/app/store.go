package app

import (
	"sync"

	"chillista/internal/domain"
)

// Reduce is the pure transition function: it never mutates prev. On success
// it returns the next state; on failure it returns prev itself together with
// an action_rejected event carrying the user-facing message.
func (s *Service) Reduce(prev *domain.State, cmd Command) (*domain.State, []Event, error) {
	next := prev.Clone()
	events, err := s.Execute(next, cmd)
	if err != nil {
		return prev, []Event{{
			Kind:    EventActionRejected,
			Tone:    ToneError,
			Sound:   domain.SoundError,
			Message: RejectionMessage(err),
			Payload: ActionRejectedPayload{Command: cmd.Kind, Reason: err.Error()},
		}}, err
	}
	return next, events, nil
}

// Listener receives every committed state with the events that produced it.
// Snapshots are shared; listeners must not modify them.
type Listener func(state *domain.State, events []Event)

// Store holds the single live state of one cart and serialises dispatches.
type Store struct {
	mu        sync.Mutex
	svc       *Service
	state     *domain.State
	listeners []Listener
}

// NewStore wraps an initial state. A nil state starts a new game.
func NewStore(svc *Service, initial *domain.State) *Store {
	if initial == nil {
		initial = svc.NewGame()
	}
	return &Store{svc: svc, state: initial}
}

// Subscribe registers a listener for committed transitions.
func (st *Store) Subscribe(l Listener) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.listeners = append(st.listeners, l)
}

// State returns the current snapshot.
func (st *Store) State() *domain.State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Dispatch reduces cmd against the current state and commits the result.
// Rejections are still delivered to listeners so the log can show them.
func (st *Store) Dispatch(cmd Command) ([]Event, error) {
	st.mu.Lock()
	next, events, err := st.svc.Reduce(st.state, cmd)
	st.state = next
	listeners := append([]Listener(nil), st.listeners...)
	st.mu.Unlock()

	for _, l := range listeners {
		l(next, events)
	}
	return events, err
}

// Replace swaps in a whole new state, e.g. after a save reset.
func (st *Store) Replace(state *domain.State, events ...Event) {
	st.mu.Lock()
	st.state = state
	listeners := append([]Listener(nil), st.listeners...)
	st.mu.Unlock()

	for _, l := range listeners {
		l(state, events)
	}
}
