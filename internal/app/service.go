package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"chillista/internal/domain"
)

// Service contains the coffee cart use-cases operating on domain state.
// It owns every source of randomness so transitions are reproducible under a seeded rng.
type Service struct {
	rng    *rand.Rand
	tuning domain.Tuning
	newID  func() string
	now    func() time.Time
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, tuning domain.Tuning) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:    rng,
		tuning: tuning,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Tuning returns the numbers the service plays with.
func (s *Service) Tuning() domain.Tuning { return s.tuning }

// NewGame returns a fresh cart.
func (s *Service) NewGame() *domain.State {
	return domain.NewState(s.tuning)
}

var ErrUnknownCommand = errors.New("unknown command")

// Execute applies cmd to st in place. Callers that need the previous state
// intact on failure go through Reduce instead.
func (s *Service) Execute(st *domain.State, cmd Command) ([]Event, error) {
	switch cmd.Kind {
	case CmdTick:
		return s.Tick(st)
	case CmdStartGame:
		return s.StartGame(st, cmd.PlayerName)
	case CmdSettings:
		return s.UpdateSettings(st, cmd.Settings)
	case CmdDebug:
		return s.Debug(st, cmd)
	}

	if !st.GameStarted {
		return nil, domain.ErrGameNotStarted
	}

	switch cmd.Kind {
	case CmdBrew:
		return s.Brew(st, cmd.Action, cmd.Bean)
	case CmdSwitchMode:
		return s.SwitchMode(st, cmd.Mode)
	case CmdServe:
		return s.Serve(st)
	case CmdTrash:
		return s.Trash(st)
	case CmdBuy:
		return s.Buy(st, cmd.Item, cmd.Quantity)
	case CmdBuyUpgrade:
		return s.BuyUpgrade(st, cmd.Upgrade)
	case CmdTalk:
		return s.Talk(st)
	case CmdChoose:
		return s.Choose(st, cmd.Choice)
	case CmdSmallTalk:
		return s.SmallTalk(st)
	case CmdUpsell:
		return s.Upsell(st)
	case CmdRelax:
		return s.Relax(st)
	case CmdNewDay:
		return s.StartNewDay(st)
	case CmdTravel:
		return s.Travel(st, cmd.Location)
	case CmdDarkMode:
		return s.SetDarkMode(st, cmd.Enabled)
	default:
		return nil, ErrUnknownCommand
	}
}

// StartGame closes the intro: the clock starts and input is accepted.
func (s *Service) StartGame(st *domain.State, playerName string) ([]Event, error) {
	if playerName != "" {
		st.PlayerName = playerName
	}
	if st.GameStarted {
		return nil, nil
	}
	st.GameStarted = true
	name := st.PlayerName
	if name == "" {
		name = "barista"
	}
	return []Event{{
		Kind:    EventGameStarted,
		Tone:    ToneSystem,
		Sound:   domain.SoundChime,
		Message: fmt.Sprintf("Welcome to the cart, %s! Day %d begins.", name, st.Day),
	}}, nil
}

func (s *Service) chance(p float64) bool {
	return s.rng.Float64() < p
}

func (s *Service) pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[s.rng.Intn(len(lines))]
}
