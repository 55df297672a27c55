package autopilot

import "hash/fnv"

var roster = []string{
	"Juniper", "Basil", "Marlowe", "Poppy", "Rowan",
	"Hazel", "Sage", "Otis", "Clementine", "Wren",
}

// RosterName picks a stable barista name for seed.
func RosterName(seed string) string {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return roster[int(h.Sum32()%uint32(len(roster)))]
}
