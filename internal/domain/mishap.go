package domain

import "fmt"

// Mishap is a random accident at the station.
type Mishap string

const (
	MishapButterfingers Mishap = "butterfingers"
	MishapSpill         Mishap = "spill"
	MishapGrinderJam    Mishap = "grinder_jam"
)

var mishaps = []Mishap{MishapButterfingers, MishapSpill, MishapGrinderJam}

const spillMilk = 50

// PickMishap maps a uniform draw in [0,1) onto one of the mishaps.
func PickMishap(roll float64) Mishap {
	i := int(roll * float64(len(mishaps)))
	if i >= len(mishaps) {
		i = len(mishaps) - 1
	}
	if i < 0 {
		i = 0
	}
	return mishaps[i]
}

// MishapOutcome is what the accident cost.
type MishapOutcome struct {
	Mishap      Mishap `json:"mishap"`
	Message     string `json:"message"`
	MinutesLost int    `json:"minutesLost,omitempty"`
}

// ApplyMishap charges the accident to s. Lost minutes are returned for the
// caller to advance the clock with, since that also ages the customer.
func ApplyMishap(s *State, m Mishap, t Tuning) MishapOutcome {
	out := MishapOutcome{Mishap: m}
	switch m {
	case MishapButterfingers:
		out.Message = "Oops! You dropped a cup."
		if s.Inventory[ResourceCups] > 0 {
			s.Inventory[ResourceCups]--
			out.Message = "CRASH! Dropped a cup. -1 Cup"
		}
	case MishapSpill:
		out.Message = "Spilled some milk!"
		if s.Inventory[ResourceMilk] > spillMilk {
			s.Inventory[ResourceMilk] -= spillMilk
			out.Message = "SPLASH! Spilled milk. -50ml"
		}
	case MishapGrinderJam:
		if s.Cash >= t.GrinderJamFee {
			s.Cash -= t.GrinderJamFee
			out.Message = fmt.Sprintf("GRIND! Grinder jammed. Paying $%.2f fix.", t.GrinderJamFee)
		} else {
			out.Message = "Grinder jammed and you can't afford the fix! Wasted time."
			out.MinutesLost = t.GrinderJamMinutes
		}
	}
	return out
}
