package domain

// LocationDef describes a spot the cart can trade from.
type LocationDef struct {
	ID               Location `json:"id"`
	Name             string   `json:"name"`
	UnlockReputation int      `json:"unlockReputation"`
}

// Locations returns every known spot in map order.
func Locations(t Tuning) []LocationDef {
	return []LocationDef{
		{ID: LocationCart, Name: "Street Corner"},
		{ID: LocationPark, Name: "City Park", UnlockReputation: t.ParkUnlockReputation},
	}
}

// LookupLocation finds a location definition.
func LookupLocation(id Location, t Tuning) (LocationDef, bool) {
	for _, l := range Locations(t) {
		if l.ID == id {
			return l, true
		}
	}
	return LocationDef{}, false
}

// UnlockLocations grants every location whose reputation bar has been reached
// and returns the newly unlocked ones.
func UnlockLocations(s *State, t Tuning) []LocationDef {
	var added []LocationDef
	for _, l := range Locations(t) {
		if s.LocationUnlocked(l.ID) {
			continue
		}
		if s.Stats.Reputation >= l.UnlockReputation {
			s.UnlockedLocations = append(s.UnlockedLocations, l.ID)
			added = append(added, l)
		}
	}
	return added
}
