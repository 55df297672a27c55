package autopilot

import (
	"chillista/internal/app"
	"chillista/internal/domain"
)

// Brain is the interface that all barista strategies must implement.
type Brain interface {
	// NextCommand picks the next command for st. ok is false when the
	// barista has nothing to do and should let the clock run.
	NextCommand(st *domain.State) (cmd app.Command, ok bool)
	OnEvent(event app.Event)
}

// Level selects a strategy.
type Level int

const (
	LevelSteady Level = iota
	LevelCareful
)

// ParseLevel maps a strategy name to its level.
func ParseLevel(name string) (Level, bool) {
	switch name {
	case "steady":
		return LevelSteady, true
	case "careful":
		return LevelCareful, true
	default:
		return 0, false
	}
}

func (l Level) String() string {
	switch l {
	case LevelSteady:
		return "steady"
	case LevelCareful:
		return "careful"
	default:
		return "unknown"
	}
}
