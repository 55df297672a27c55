package app

import (
	"fmt"

	"chillista/internal/domain"
)

const (
	minUIScale = 50
	maxUIScale = 200
	minVolume  = 0
	maxVolume  = 100
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// UpdateSettings applies a settings patch, clamping every value into range.
func (s *Service) UpdateSettings(st *domain.State, patch *SettingsPatch) ([]Event, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: empty patch", domain.ErrInvalidSetting)
	}
	if patch.UIScale != nil {
		st.Settings.UIScale = clampInt(*patch.UIScale, minUIScale, maxUIScale)
	}
	if patch.MusicVolume != nil {
		st.Settings.MusicVolume = clampInt(*patch.MusicVolume, minVolume, maxVolume)
	}
	if patch.SfxVolume != nil {
		st.Settings.SfxVolume = clampInt(*patch.SfxVolume, minVolume, maxVolume)
	}
	if patch.AmbienceVolume != nil {
		st.Settings.AmbienceVolume = clampInt(*patch.AmbienceVolume, minVolume, maxVolume)
	}
	return []Event{{Kind: EventSettingsChanged, Payload: st.Settings}}, nil
}

// SetDarkMode toggles the dark theme once it has been earned.
func (s *Service) SetDarkMode(st *domain.State, enabled bool) ([]Event, error) {
	if !st.DarkModeUnlocked {
		return nil, domain.ErrDarkModeLocked
	}
	st.DarkModeEnabled = enabled
	msg := "Dark mode off."
	if enabled {
		msg = "Dark mode on."
	}
	return []Event{{Kind: EventDarkModeToggled, Tone: ToneSystem, Message: msg, Payload: enabled}}, nil
}

// Debug runs a developer command.
func (s *Service) Debug(st *domain.State, cmd Command) ([]Event, error) {
	d := &st.Debug
	var msg string
	var events []Event

	switch cmd.Debug {
	case DebugToggle:
		d.Enabled = !d.Enabled
		msg = fmt.Sprintf("Debug mode: %v", d.Enabled)
	case DebugToggleWeather:
		d.WeatherDisabled = !d.WeatherDisabled
		if d.WeatherDisabled {
			st.Weather = domain.WeatherSunny
		}
		msg = fmt.Sprintf("Weather disabled: %v", d.WeatherDisabled)
	case DebugToggleArrivals:
		d.CustomerArrivalDisabled = !d.CustomerArrivalDisabled
		msg = fmt.Sprintf("Customer arrivals disabled: %v", d.CustomerArrivalDisabled)
	case DebugTogglePause:
		d.TimePaused = !d.TimePaused
		msg = fmt.Sprintf("Time paused: %v", d.TimePaused)
	case DebugToggleInfinite:
		d.InfiniteResources = !d.InfiniteResources
		msg = fmt.Sprintf("Infinite resources: %v", d.InfiniteResources)
	case DebugCycleSpeed:
		d.TimeSpeed = domain.NextTimeSpeed(d.TimeSpeed)
		msg = fmt.Sprintf("Time speed: %dx", d.TimeSpeed)
	case DebugAddCash:
		amount := cmd.Amount
		if amount <= 0 {
			amount = debugCashGrant
		}
		st.Cash += amount
		msg = fmt.Sprintf("Added $%.2f", amount)
	case DebugAddReputation:
		st.Stats.AdjustReputation(int(cmd.Amount))
		msg = fmt.Sprintf("Reputation: %d", st.Stats.Reputation)
		events = append(events, s.unlocks(st)...)
	case DebugSpawnCustomer:
		if st.CurrentCustomer != nil {
			return nil, domain.ErrCustomerWaiting
		}
		if st.DayEnded {
			return nil, domain.ErrDayOver
		}
		events = append(events, s.spawnCustomer(st, cmd.Archetype))
		msg = "Spawned a customer."
	case DebugForceWeather:
		if cmd.Weather != domain.WeatherSunny && cmd.Weather != domain.WeatherRainy {
			return nil, fmt.Errorf("%w: weather %q", domain.ErrInvalidDebugFlag, cmd.Weather)
		}
		st.Weather = cmd.Weather
		msg = fmt.Sprintf("Weather forced to %s.", cmd.Weather)
	case DebugSkipToDayEnd:
		if st.DayEnded {
			return nil, domain.ErrDayOver
		}
		events = append(events, s.endDay(st))
		msg = "Skipped to the end of the day."
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDebugFlag, cmd.Debug)
	}

	out := []Event{{Kind: EventDebugChanged, Tone: ToneSystem, Message: "[debug] " + msg, Payload: st.Debug}}
	return append(out, events...), nil
}
