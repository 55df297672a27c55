package domain

import "math"

// Drink is what a customer asks for.
type Drink string

const (
	DrinkCoffee      Drink = "Coffee"
	DrinkMatchaLatte Drink = "Matcha Latte"
	DrinkEspresso    Drink = "Espresso"
)

// Location is where the cart is parked for the day.
type Location string

const (
	LocationCart Location = "cart"
	LocationPark Location = "park"
)

const (
	minSatisfaction     = 0
	maxSatisfaction     = 100
	initialSatisfaction = 50
)

// Customer is the guest currently waiting at the counter.
type Customer struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Archetype         Archetype `json:"type"`
	Order             Drink     `json:"order"`
	Patience          float64   `json:"patience"`
	MaxPatience       float64   `json:"maxPatience"`
	DecayRate         float64   `json:"decay"`
	Satisfaction      int       `json:"satisfaction"`
	ArrivalMinute     int       `json:"arrivalTime"`
	AvatarIndex       int       `json:"avatarIndex"`
	ConversationCount int       `json:"conversationCount"`
}

// CustomerSpec carries the rolled inputs for NewCustomer.
type CustomerSpec struct {
	ID        string
	Name      string
	Archetype Archetype
	Order     Drink
	Weather   Weather
	Location  Location
	Minute    int
}

// NewCustomer builds an arriving customer. Starting patience comes from the
// archetype table (park regulars of the default kind are shorter-tempered),
// scaled by the weather and floored.
func NewCustomer(spec CustomerSpec, t Tuning) Customer {
	profile := spec.Archetype.Profile()

	base := profile.BasePatience
	decay := t.CartDecay
	if spec.Location == LocationPark {
		decay = t.ParkDecay
		if spec.Archetype == ArchetypeDefault {
			base = t.ParkBasePatience
		}
	}
	patience := math.Floor(base * spec.Weather.PatienceFactor(t))

	return Customer{
		ID:            spec.ID,
		Name:          spec.Name,
		Archetype:     spec.Archetype,
		Order:         spec.Order,
		Patience:      patience,
		MaxPatience:   patience,
		DecayRate:     decay,
		Satisfaction:  initialSatisfaction,
		ArrivalMinute: spec.Minute,
		AvatarIndex:   profile.AvatarIndex,
	}
}

// DecayPatience reduces patience by decayRate * minutes * modifier, never below zero.
func (c *Customer) DecayPatience(minutes int, modifier float64) {
	if minutes <= 0 {
		return
	}
	c.Patience = math.Max(0, c.Patience-c.DecayRate*float64(minutes)*modifier)
}

// AddPatience raises (or lowers) patience, keeping it non-negative.
func (c *Customer) AddPatience(delta float64) {
	c.Patience = math.Max(0, c.Patience+delta)
}

// HasLeft reports whether the customer ran out of patience.
func (c *Customer) HasLeft() bool {
	return c.Patience <= 0
}

// AdjustSatisfaction applies delta and clamps to [0,100].
func (c *Customer) AdjustSatisfaction(delta int) {
	s := c.Satisfaction + delta
	if s < minSatisfaction {
		s = minSatisfaction
	}
	if s > maxSatisfaction {
		s = maxSatisfaction
	}
	c.Satisfaction = s
}

// Mood describes the remaining patience the way the HUD shows it.
func (c *Customer) Mood() string {
	switch {
	case c.Patience > 80:
		return "Chill"
	case c.Patience > 50:
		return "Okay"
	case c.Patience > 20:
		return "Annoyed"
	default:
		return "Furious"
	}
}

// DecayModifier slows patience decay by factor for every plant on the cart.
func DecayModifier(decorations []Decoration, factor float64) float64 {
	plants := 0
	for _, d := range decorations {
		if d == DecorationPlant {
			plants++
		}
	}
	return math.Pow(factor, float64(plants))
}

// PickOrder chooses the drink a new customer asks for. Rolls are uniform draws in [0,1).
func PickOrder(a Archetype, hasMatcha, hasEspresso bool, matchaRoll, espressoRoll float64) Drink {
	if hasMatcha && (a.Profile().PrefersMatcha || matchaRoll < 0.3) {
		return DrinkMatchaLatte
	}
	if hasEspresso && espressoRoll < 0.3 {
		return DrinkEspresso
	}
	return DrinkCoffee
}
