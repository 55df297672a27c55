package domain

// Settings are the player's presentation preferences.
type Settings struct {
	UIScale        int `json:"uiScale"`
	MusicVolume    int `json:"musicVolume"`
	SfxVolume      int `json:"sfxVolume"`
	AmbienceVolume int `json:"ambienceVolume"`
}

// DefaultSettings matches a fresh install.
func DefaultSettings() Settings {
	return Settings{UIScale: 100, MusicVolume: 30, SfxVolume: 10, AmbienceVolume: 30}
}

// DebugFlags are the developer toggles.
type DebugFlags struct {
	Enabled                 bool `json:"enabled"`
	WeatherDisabled         bool `json:"weatherDisabled"`
	CustomerArrivalDisabled bool `json:"customerArrivalDisabled"`
	TimePaused              bool `json:"timePaused"`
	InfiniteResources       bool `json:"infiniteResources"`
	TimeSpeed               int  `json:"timeSpeed"`
}

// TimeSpeeds is the cycle the time-speed toggle walks through.
var TimeSpeeds = []int{1, 2, 5, 10}

// NextTimeSpeed returns the speed after current in the cycle.
func NextTimeSpeed(current int) int {
	for i, s := range TimeSpeeds {
		if s == current {
			return TimeSpeeds[(i+1)%len(TimeSpeeds)]
		}
	}
	return TimeSpeeds[0]
}

// State is everything that describes one cart. It is plain data: all
// transitions live in the app package and operate on clones.
type State struct {
	GameStarted    bool    `json:"gameStarted"`
	PlayerName     string  `json:"playerName"`
	Day            int     `json:"day"`
	MinutesElapsed int     `json:"minutesElapsed"`
	DayEnded       bool    `json:"dayEnded"`
	Cash           float64 `json:"cash"`

	Inventory     Inventory        `json:"inventory"`
	ResourceUsage map[Resource]int `json:"resourceUsage"`

	CurrentCustomer *Customer    `json:"currentCustomer"`
	Brewing         BrewingState `json:"brewingState"`
	Dialogue        *Dialogue    `json:"dialogue,omitempty"`

	Decorations     []Decoration              `json:"decorations"`
	Stats           Stats                     `json:"stats"`
	PurchaseHistory []Purchase                `json:"purchaseHistory"`
	CustomerHistory map[string]CustomerRecord `json:"customerHistory"`

	Weather           Weather    `json:"weather"`
	Upgrades          []string   `json:"upgrades"`
	UnlockedLocations []Location `json:"unlockedLocations"`
	Location          Location   `json:"currentLocation"`

	DarkModeUnlocked  bool `json:"darkModeUnlocked"`
	DarkModeEnabled   bool `json:"darkModeEnabled"`
	StockWarningShown bool `json:"stockWarningShown"`

	Debug    DebugFlags `json:"debug"`
	Settings Settings   `json:"settings"`
}

// NewState returns the state of a brand new cart.
func NewState(t Tuning) *State {
	return &State{
		Day:               1,
		Cash:              t.StartingCash,
		Inventory:         DefaultInventory(),
		ResourceUsage:     map[Resource]int{},
		Brewing:           NewBrewingState(),
		Decorations:       []Decoration{},
		PurchaseHistory:   []Purchase{},
		CustomerHistory:   map[string]CustomerRecord{},
		Weather:           WeatherSunny,
		Upgrades:          []string{},
		UnlockedLocations: []Location{LocationCart},
		Location:          LocationCart,
		Debug:             DebugFlags{TimeSpeed: 1},
		Settings:          DefaultSettings(),
	}
}

// Clone returns a deep copy so transitions never alias the previous state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	c.Inventory = s.Inventory.Clone()
	c.ResourceUsage = make(map[Resource]int, len(s.ResourceUsage))
	for k, v := range s.ResourceUsage {
		c.ResourceUsage[k] = v
	}
	if s.CurrentCustomer != nil {
		cust := *s.CurrentCustomer
		c.CurrentCustomer = &cust
	}
	if s.Dialogue != nil {
		d := *s.Dialogue
		d.Choices = append([]DialogueChoice(nil), s.Dialogue.Choices...)
		c.Dialogue = &d
	}
	c.Decorations = append([]Decoration{}, s.Decorations...)
	c.PurchaseHistory = append([]Purchase{}, s.PurchaseHistory...)
	c.CustomerHistory = make(map[string]CustomerRecord, len(s.CustomerHistory))
	for k, v := range s.CustomerHistory {
		c.CustomerHistory[k] = v
	}
	c.Upgrades = append([]string{}, s.Upgrades...)
	c.UnlockedLocations = append([]Location{}, s.UnlockedLocations...)
	return &c
}

// HasUpgrade reports whether id has been bought.
func (s *State) HasUpgrade(id string) bool {
	for _, u := range s.Upgrades {
		if u == id {
			return true
		}
	}
	return false
}

// ModeUnlocked reports whether the station for m may be used.
func (s *State) ModeUnlocked(m Mode) bool {
	r, ok := RecipeFor(m)
	if !ok {
		return false
	}
	return r.Upgrade == "" || s.HasUpgrade(r.Upgrade)
}

// LocationUnlocked reports whether the cart may travel to l.
func (s *State) LocationUnlocked(l Location) bool {
	for _, u := range s.UnlockedLocations {
		if u == l {
			return true
		}
	}
	return false
}

// TrackUsage adds consumed supplies to the usage counters.
func (s *State) TrackUsage(cost map[Resource]int) {
	if s.ResourceUsage == nil {
		s.ResourceUsage = map[Resource]int{}
	}
	for r, n := range cost {
		s.ResourceUsage[r] += n
	}
}

// ClearCustomer removes the current guest and any open conversation.
func (s *State) ClearCustomer() {
	s.CurrentCustomer = nil
	s.Dialogue = nil
}

// TimeOfDay renders the in-game clock.
func (s *State) TimeOfDay(t Tuning) string {
	return TimeOfDay(s.MinutesElapsed, t.DayStartHour)
}

// RecordVisit books a served customer into the history.
func (s *State) RecordVisit(name string, spent float64) {
	if s.CustomerHistory == nil {
		s.CustomerHistory = map[string]CustomerRecord{}
	}
	rec := s.CustomerHistory[name]
	rec.Visits++
	rec.TotalSpent += spent
	rec.LastDay = s.Day
	s.CustomerHistory[name] = rec
}
