package domain

// Archetype tags the kind of customer at the counter. Every behavioural
// difference between customers is looked up from archetypeProfiles.
type Archetype string

const (
	ArchetypeDefault Archetype = "default"
	ArchetypeCritic  Archetype = "critic"
	ArchetypeRegular Archetype = "regular"
	ArchetypeHipster Archetype = "hipster"
	ArchetypeStudent Archetype = "student"
	ArchetypeTourist Archetype = "tourist"
)

// ArchetypeProfile is the per-variant configuration row.
type ArchetypeProfile struct {
	Label         string
	BasePatience  float64
	AvatarIndex   int
	ReviewWeight  int  // reputation swing for a perfect or poor drink
	PrefersMatcha bool // orders matcha whenever the kit is owned
	ArrivalLines  []string
}

var archetypeProfiles = map[Archetype]ArchetypeProfile{
	ArchetypeDefault: {Label: "Normal", BasePatience: 100, AvatarIndex: 0, ReviewWeight: 1},
	ArchetypeStudent: {Label: "Student", BasePatience: 70, AvatarIndex: 1, ReviewWeight: 1},
	ArchetypeHipster: {Label: "Hipster", BasePatience: 100, AvatarIndex: 2, ReviewWeight: 1, PrefersMatcha: true},
	ArchetypeTourist: {Label: "Tourist", BasePatience: 120, AvatarIndex: 3, ReviewWeight: 1},
	ArchetypeRegular: {
		Label: "Regular", BasePatience: 150, AvatarIndex: 4, ReviewWeight: 1,
		ArrivalLines: []string{"Morning! The usual, please.", "My joints are aching today..."},
	},
	ArchetypeCritic: {
		Label: "Critic", BasePatience: 50, AvatarIndex: 5, ReviewWeight: 5,
		ArrivalLines: []string{"I'm here to inspect your establishment.", "Don't disappoint me."},
	},
}

// Profile returns the configuration row, falling back to the default archetype.
func (a Archetype) Profile() ArchetypeProfile {
	if p, ok := archetypeProfiles[a]; ok {
		return p
	}
	return archetypeProfiles[ArchetypeDefault]
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	_, ok := archetypeProfiles[a]
	return ok
}

// RollArchetype maps a uniform draw in [0,1) onto the archetype distribution:
// 5% critic, 15% regular, 10% each hipster/student/tourist, rest default.
func RollArchetype(roll float64) Archetype {
	switch {
	case roll < 0.05:
		return ArchetypeCritic
	case roll < 0.2:
		return ArchetypeRegular
	case roll < 0.3:
		return ArchetypeHipster
	case roll < 0.4:
		return ArchetypeStudent
	case roll < 0.5:
		return ArchetypeTourist
	default:
		return ArchetypeDefault
	}
}

// CustomerNames is the pool new customers draw their names from.
var CustomerNames = []string{
	"Alice", "Bob", "Charlie", "Dana", "Eve", "Frank", "Grace", "Heidi",
	"Igor", "Jasmine", "Ken", "Liam", "Mia", "Noah", "Olivia",
}
