package autopilot

import "chillista/internal/domain"

// Tuning holds the thresholds the careful barista plays with.
type Tuning struct {
	// RestockAmounts is how much of each resource to buy when it runs low.
	RestockAmounts map[domain.Resource]int
	// CashReserve is kept back when buying upgrades so supplies stay affordable.
	CashReserve float64
	// PremiumFor lists archetypes that get premium beans.
	PremiumFor map[domain.Archetype]bool
}

// DefaultTuning restocks a working day's worth of each supply.
var DefaultTuning = Tuning{
	RestockAmounts: map[domain.Resource]int{
		domain.ResourceBeansStandard: 300,
		domain.ResourceBeansPremium:  120,
		domain.ResourceWater:         1000,
		domain.ResourceMilk:          300,
		domain.ResourceMatchaPowder:  60,
		domain.ResourceCups:          80,
		domain.ResourceFilters:       30,
	},
	CashReserve: 30,
	PremiumFor: map[domain.Archetype]bool{
		domain.ArchetypeCritic: true,
	},
}
