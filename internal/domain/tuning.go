package domain

// Tuning holds every numeric policy the simulation uses.
// Config files may override individual fields; zero values are never read as "unset",
// so overrides always start from a copy of DefaultTuning.
type Tuning struct {
	BasePrice        float64 `json:"base_price" yaml:"base_price"`
	StartingCash     float64 `json:"starting_cash" yaml:"starting_cash"`
	DayLengthMinutes int     `json:"day_length_minutes" yaml:"day_length_minutes"`
	DayStartHour     int     `json:"day_start_hour" yaml:"day_start_hour"`

	SunnyArrivalChance   float64 `json:"sunny_arrival_chance" yaml:"sunny_arrival_chance"`
	RainyArrivalChance   float64 `json:"rainy_arrival_chance" yaml:"rainy_arrival_chance"`
	DefaultArrivalChance float64 `json:"default_arrival_chance" yaml:"default_arrival_chance"`
	SunnyPatienceFactor  float64 `json:"sunny_patience_factor" yaml:"sunny_patience_factor"`
	RainyPatienceFactor  float64 `json:"rainy_patience_factor" yaml:"rainy_patience_factor"`
	RainChance           float64 `json:"rain_chance" yaml:"rain_chance"`

	CartDecay        float64 `json:"cart_decay" yaml:"cart_decay"`
	ParkDecay        float64 `json:"park_decay" yaml:"park_decay"`
	ParkBasePatience float64 `json:"park_base_patience" yaml:"park_base_patience"`
	PlantDecayFactor float64 `json:"plant_decay_factor" yaml:"plant_decay_factor"`
	WalkoutPenalty   int     `json:"walkout_penalty" yaml:"walkout_penalty"`

	FastServicePatience float64 `json:"fast_service_patience" yaml:"fast_service_patience"`
	FastServiceBonus    float64 `json:"fast_service_bonus" yaml:"fast_service_bonus"`
	TipPerPatience      float64 `json:"tip_per_patience" yaml:"tip_per_patience"`

	MishapChance      float64 `json:"mishap_chance" yaml:"mishap_chance"`
	GrinderJamFee     float64 `json:"grinder_jam_fee" yaml:"grinder_jam_fee"`
	GrinderJamMinutes int     `json:"grinder_jam_minutes" yaml:"grinder_jam_minutes"`
	ShopMinutes       int     `json:"shop_minutes" yaml:"shop_minutes"`
	RelaxMinutes      int     `json:"relax_minutes" yaml:"relax_minutes"`

	ParkUnlockReputation int `json:"park_unlock_reputation" yaml:"park_unlock_reputation"`
	DarkModeServeCount   int `json:"dark_mode_serve_count" yaml:"dark_mode_serve_count"`
}

// DefaultTuning reproduces the numbers the cart has always been balanced around.
var DefaultTuning = Tuning{
	BasePrice:        4.00,
	StartingCash:     50.00,
	DayLengthMinutes: 480,
	DayStartHour:     5,

	SunnyArrivalChance:   0.5,
	RainyArrivalChance:   0.25,
	DefaultArrivalChance: 0.4,
	SunnyPatienceFactor:  1.2,
	RainyPatienceFactor:  0.8,
	RainChance:           0.3,

	CartDecay:        0.5,
	ParkDecay:        0.8,
	ParkBasePatience: 60,
	PlantDecayFactor: 0.8,
	WalkoutPenalty:   5,

	FastServicePatience: 20,
	FastServiceBonus:    1.2,
	TipPerPatience:      0.05,

	MishapChance:      0.05,
	GrinderJamFee:     5.00,
	GrinderJamMinutes: 10,
	ShopMinutes:       5,
	RelaxMinutes:      15,

	ParkUnlockReputation: 20,
	DarkModeServeCount:   3,
}
