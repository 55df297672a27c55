package domain

// Weather is the condition rolled at the start of each day.
type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
)

// ArrivalChance is the per-minute probability that a customer shows up.
func (w Weather) ArrivalChance(t Tuning) float64 {
	switch w {
	case WeatherSunny:
		return t.SunnyArrivalChance
	case WeatherRainy:
		return t.RainyArrivalChance
	default:
		return t.DefaultArrivalChance
	}
}

// PatienceFactor scales a new customer's starting patience.
func (w Weather) PatienceFactor(t Tuning) float64 {
	switch w {
	case WeatherSunny:
		return t.SunnyPatienceFactor
	case WeatherRainy:
		return t.RainyPatienceFactor
	default:
		return 1.0
	}
}

// RollWeather picks tomorrow's weather from a uniform draw in [0,1).
func RollWeather(roll float64, t Tuning) Weather {
	if roll > 1-t.RainChance {
		return WeatherRainy
	}
	return WeatherSunny
}
