package app

import (
	"fmt"

	"chillista/internal/domain"
)

// Tick advances the clock by one timer period: one simulated minute per
// unit of debug time speed.
func (s *Service) Tick(st *domain.State) ([]Event, error) {
	if !st.GameStarted {
		return nil, nil
	}
	speed := st.Debug.TimeSpeed
	if speed < 1 {
		speed = 1
	}
	return s.advance(st, speed), nil
}

// advance runs the clock minute by minute. Each minute ages the waiting
// customer and, when the counter is empty, rolls for an arrival. Nothing
// happens while time is paused or once the day is over.
func (s *Service) advance(st *domain.State, minutes int) []Event {
	if st.Debug.TimePaused || st.DayEnded {
		return nil
	}
	var events []Event
	modifier := domain.DecayModifier(st.Decorations, s.tuning.PlantDecayFactor)

	for i := 0; i < minutes; i++ {
		st.MinutesElapsed++

		if c := st.CurrentCustomer; c != nil {
			c.DecayPatience(1, modifier)
			if c.HasLeft() {
				events = append(events, s.walkout(st)...)
			}
		}

		if st.CurrentCustomer == nil && !st.Debug.CustomerArrivalDisabled {
			if s.chance(st.Weather.ArrivalChance(s.tuning)) {
				events = append(events, s.spawnCustomer(st, ""))
			}
		}

		if st.MinutesElapsed >= s.tuning.DayLengthMinutes {
			events = append(events, s.endDay(st))
			break
		}
	}
	return events
}

func (s *Service) walkout(st *domain.State) []Event {
	c := st.CurrentCustomer
	st.ClearCustomer()
	st.Brewing.Reset()
	st.Stats.AdjustReputation(-s.tuning.WalkoutPenalty)
	return []Event{{
		Kind:    EventCustomerLeft,
		Tone:    ToneError,
		Sound:   domain.SoundError,
		Message: fmt.Sprintf("%s got tired of waiting and left. -%d Rep", c.Name, s.tuning.WalkoutPenalty),
		Payload: CustomerLeftPayload{CustomerID: c.ID, Name: c.Name, Penalty: s.tuning.WalkoutPenalty},
	}}
}

// spawnCustomer seats a new guest. An empty archetype is rolled.
func (s *Service) spawnCustomer(st *domain.State, archetype domain.Archetype) Event {
	if archetype == "" || !archetype.Valid() {
		archetype = domain.RollArchetype(s.rng.Float64())
	}
	order := domain.PickOrder(
		archetype,
		st.HasUpgrade(domain.UpgradeMatcha),
		st.HasUpgrade(domain.UpgradeEspresso),
		s.rng.Float64(), s.rng.Float64(),
	)
	c := domain.NewCustomer(domain.CustomerSpec{
		ID:        s.newID(),
		Name:      s.pick(domain.CustomerNames),
		Archetype: archetype,
		Order:     order,
		Weather:   st.Weather,
		Location:  st.Location,
		Minute:    st.MinutesElapsed,
	}, s.tuning)
	st.CurrentCustomer = &c
	st.Dialogue = nil

	profile := archetype.Profile()
	msg := fmt.Sprintf("%s arrives and orders a %s.", c.Name, c.Order)
	if archetype != domain.ArchetypeDefault {
		msg = fmt.Sprintf("%s the %s arrives and orders a %s.", c.Name, profile.Label, c.Order)
	}
	return Event{
		Kind:    EventCustomerArrived,
		Tone:    ToneSystem,
		Sound:   domain.SoundChime,
		Message: msg,
		Payload: CustomerArrivedPayload{Customer: c, Greeting: s.pick(profile.ArrivalLines)},
	}
}

func (s *Service) endDay(st *domain.State) Event {
	st.DayEnded = true
	st.MinutesElapsed = s.tuning.DayLengthMinutes
	st.ClearCustomer()
	st.Brewing.Reset()

	summary := domain.DaySummary{
		Day:             st.Day,
		Earnings:        st.Stats.DailyEarnings,
		CustomersServed: st.Stats.CustomersServed,
		Tips:            st.Stats.TipsEarned,
		Reputation:      st.Stats.Reputation,
		Cash:            st.Cash,
	}
	return Event{
		Kind:    EventDayEnded,
		Tone:    ToneSystem,
		Sound:   domain.SoundSuccess,
		Message: fmt.Sprintf("Day %d is over. Earned $%.2f from %d customers.", summary.Day, summary.Earnings, summary.CustomersServed),
		Payload: DayEndedPayload{Summary: summary},
	}
}

// StartNewDay opens the next morning. It is only allowed once the current day has closed.
func (s *Service) StartNewDay(st *domain.State) ([]Event, error) {
	if !st.DayEnded {
		return nil, domain.ErrDayNotOver
	}
	st.Day++
	st.MinutesElapsed = 0
	st.DayEnded = false
	st.Stats.ResetDaily()
	st.ClearCustomer()
	st.Brewing.Reset()

	st.Weather = domain.WeatherSunny
	if !st.Debug.WeatherDisabled {
		st.Weather = domain.RollWeather(s.rng.Float64(), s.tuning)
	}

	msg := fmt.Sprintf("Day %d started! It's a sunny day, perfect weather for coffee.", st.Day)
	if st.Weather == domain.WeatherRainy {
		msg = fmt.Sprintf("Day %d started! It's a rainy day... fewer customers, and they are less patient.", st.Day)
	}
	return []Event{{
		Kind:    EventDayStarted,
		Tone:    ToneSystem,
		Sound:   domain.SoundChime,
		Message: msg,
		Payload: DayStartedPayload{Day: st.Day, Weather: st.Weather},
	}}, nil
}
