package autopilot

import (
	"fmt"

	"github.com/google/uuid"
)

// NewBrain creates a new strategy for the given level.
func NewBrain(level Level) (Brain, error) {
	switch level {
	case LevelSteady:
		return &SteadyBarista{}, nil
	case LevelCareful:
		return &CarefulBarista{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown barista level: %d", level)
	}
}

// NewAgent builds an agent with a fresh id. An empty name picks one from the roster.
func NewAgent(name string, level Level) (*Agent, error) {
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	if name == "" {
		name = RosterName(id)
	}
	return &Agent{ID: id, Name: name, Strategy: brain}, nil
}
