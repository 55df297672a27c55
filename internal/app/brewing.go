package app

import (
	"errors"
	"fmt"
	"strings"

	"chillista/internal/domain"
)

// Brew performs one recipe step for the waiting customer. A rejected step
// leaves inventory and brewing progress untouched. After a successful step a
// mishap may strike.
func (s *Service) Brew(st *domain.State, action domain.Action, bean domain.BeanType) ([]Event, error) {
	if st.CurrentCustomer == nil {
		return nil, domain.ErrNoCustomer
	}
	if !st.ModeUnlocked(st.Brewing.Mode) {
		return nil, domain.ErrModeLocked
	}

	res, err := st.Brewing.Advance(action, bean, st.Inventory, !st.Debug.InfiniteResources)
	if err != nil {
		return nil, err
	}
	if !st.Debug.InfiniteResources {
		st.TrackUsage(res.Cost)
	}

	msg := res.Step.Message
	if action == domain.ActionGrind && st.Brewing.Mode == domain.ModeCoffee && st.HasUpgrade(domain.UpgradeFastGrinder) {
		msg += " Fast grinder goes brrr!"
	}
	tone := ToneSystem
	if res.Ready {
		tone = ToneSuccess
	}
	events := []Event{{
		Kind:    EventBrewStep,
		Tone:    tone,
		Sound:   res.Step.Sound,
		Message: msg,
		Payload: BrewStepPayload{
			Mode:   st.Brewing.Mode,
			Action: action,
			Step:   st.Brewing.Step,
			Ready:  res.Ready,
			Cost:   res.Cost,
		},
	}}

	if s.chance(s.tuning.MishapChance) {
		events = append(events, s.mishap(st)...)
	}
	events = append(events, s.checkStock(st)...)
	return events, nil
}

func (s *Service) mishap(st *domain.State) []Event {
	out := domain.ApplyMishap(st, domain.PickMishap(s.rng.Float64()), s.tuning)
	events := []Event{{
		Kind:    EventMishap,
		Tone:    ToneError,
		Sound:   domain.SoundError,
		Message: out.Message,
		Payload: out,
	}}
	if out.MinutesLost > 0 {
		events = append(events, s.advance(st, out.MinutesLost)...)
	}
	return events
}

// SwitchMode moves to another station. Switching with a brew in progress is
// refused; Trash discards progress explicitly.
func (s *Service) SwitchMode(st *domain.State, mode domain.Mode) ([]Event, error) {
	recipe, ok := domain.RecipeFor(mode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	if !st.ModeUnlocked(mode) {
		return nil, domain.ErrModeLocked
	}
	if st.Brewing.Mode == mode && st.Brewing.Step == 0 {
		return nil, nil
	}
	if err := st.Brewing.SwitchMode(mode); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventModeSwitched,
		Tone:    ToneSystem,
		Sound:   domain.SoundAction,
		Message: "Switched to " + recipe.Label + ".",
		Payload: ModeSwitchedPayload{Mode: mode},
	}}, nil
}

// Trash throws away the drink in progress.
func (s *Service) Trash(st *domain.State) ([]Event, error) {
	st.Brewing.Reset()
	return []Event{logEvent(EventBrewTrashed, ToneSystem, domain.SoundTrash, "Tossed the brew. Starting fresh.")}, nil
}

// Serve hands the finished drink over. It consumes exactly one cup, books
// the receipt, clears the customer and resets the station.
func (s *Service) Serve(st *domain.State) ([]Event, error) {
	c := st.CurrentCustomer
	if c == nil {
		return nil, domain.ErrNoCustomer
	}
	if !st.Brewing.Ready() {
		return nil, domain.ErrNotReady
	}
	if !st.Debug.InfiniteResources {
		cup := map[domain.Resource]int{domain.ResourceCups: 1}
		if err := st.Inventory.Consume(cup); err != nil {
			return nil, err
		}
		st.TrackUsage(cup)
	}

	receipt := domain.PriceServe(*c, st.Brewing, s.tuning)
	st.Cash += receipt.Total
	st.Stats.RecordServe(receipt)
	st.RecordVisit(c.Name, receipt.Total)
	st.ClearCustomer()
	st.Brewing.Reset()

	events := []Event{{
		Kind:    EventDrinkServed,
		Tone:    ToneSuccess,
		Sound:   domain.SoundSuccess,
		Message: serveMessage(receipt),
		Payload: DrinkServedPayload{Receipt: receipt},
	}}
	events = append(events, s.unlocks(st)...)
	events = append(events, s.checkStock(st)...)
	return events, nil
}

func serveMessage(r domain.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Served %s! Earned $%.2f (Tip: $%.2f).", r.CustomerName, r.Total, r.Tip)
	switch {
	case r.Perfect() && r.Archetype == domain.ArchetypeCritic:
		fmt.Fprintf(&b, " The critic loved it! +%d Rep", r.ReputationDelta)
	case r.Perfect():
		fmt.Fprintf(&b, " Perfect! +%d Rep", r.ReputationDelta)
	case r.Poor() && r.Archetype == domain.ArchetypeCritic:
		fmt.Fprintf(&b, " Scathing review! %d Rep", r.ReputationDelta)
	case r.Poor():
		fmt.Fprintf(&b, " That wasn't what they ordered. %d Rep", r.ReputationDelta)
	}
	return b.String()
}

// unlocks grants dark mode and new locations once their thresholds are met.
func (s *Service) unlocks(st *domain.State) []Event {
	var events []Event
	if !st.DarkModeUnlocked && st.Stats.CustomersServed >= s.tuning.DarkModeServeCount {
		st.DarkModeUnlocked = true
		events = append(events, logEvent(EventDarkModeUnlocked, ToneSuccess, domain.SoundChime, "Dark mode unlocked! Toggle it in the settings."))
	}
	for _, loc := range domain.UnlockLocations(st, s.tuning) {
		events = append(events, Event{
			Kind:    EventLocationUnlocked,
			Tone:    ToneSuccess,
			Sound:   domain.SoundChime,
			Message: fmt.Sprintf("New location unlocked: %s!", loc.Name),
			Payload: LocationPayload{Location: loc.ID},
		})
	}
	return events
}

// checkStock announces depleted supplies once, until every one is restocked.
func (s *Service) checkStock(st *domain.State) []Event {
	out := domain.BuildStockReport(st).Out()
	if len(out) == 0 {
		st.StockWarningShown = false
		return nil
	}
	if st.StockWarningShown {
		return nil
	}
	st.StockWarningShown = true
	names := make([]string, len(out))
	for i, r := range out {
		names[i] = strings.ReplaceAll(string(r), "_", " ")
	}
	return []Event{{
		Kind:    EventStockAlert,
		Tone:    ToneError,
		Sound:   domain.SoundError,
		Message: "OUT OF STOCK: " + strings.Join(names, ", ") + "!",
		Payload: StockAlertPayload{Resources: out},
	}}
}

// RejectionMessage renders a rejected command for the game log.
func RejectionMessage(err error) string {
	var short *domain.InsufficientResourceError
	switch {
	case errors.As(err, &short):
		return fmt.Sprintf("Out of %s! Need %d, have %d.", strings.ReplaceAll(string(short.Resource), "_", " "), short.Need, short.Have)
	case errors.Is(err, domain.ErrNoCustomer):
		return "Relax... wait for a guest."
	case errors.Is(err, domain.ErrNotReady):
		return "Not ready yet! Finish the brew."
	case errors.Is(err, domain.ErrBrewInProgress):
		return "Finish or trash the current drink before switching stations."
	case errors.Is(err, domain.ErrCustomerWaiting):
		return "Can't do that now, customer waiting!"
	default:
		return capitalize(err.Error()) + "."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
