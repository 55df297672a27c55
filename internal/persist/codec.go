// Package persist encodes the cart state into the save blob and back.
//
// A save is a single JSON object {"state": {...}, "timestamp": <unix ms>}.
// Decoding starts from a brand new cart and overlays whatever the blob
// carries, so fields added after a save was written keep their defaults.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chillista/internal/domain"
)

// SaveKey names the save in key-value stores.
const SaveKey = "chillista_save"

// ErrNoSave means there is nothing usable to load; callers start a fresh game.
var ErrNoSave = errors.New("no usable save")

type envelope struct {
	State     json.RawMessage `json:"state"`
	Timestamp int64           `json:"timestamp"`
}

// Encode serialises st with the time it was saved.
func Encode(st *domain.State, at time.Time) ([]byte, error) {
	if st == nil {
		return nil, errors.New("persist: nil state")
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("persist: encode state: %w", err)
	}
	return json.Marshal(envelope{State: raw, Timestamp: at.UnixMilli()})
}

// Decode restores a state from blob. Any malformed input yields ErrNoSave.
func Decode(blob []byte, t domain.Tuning) (*domain.State, time.Time, error) {
	blob = bytes.TrimSpace(blob)
	if len(blob) == 0 {
		return nil, time.Time{}, ErrNoSave
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	raw := env.State
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		// Very old saves stored the bare state object.
		raw = blob
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	if err := Migrate(fields); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	migrated, err := json.Marshal(fields)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}

	st := domain.NewState(t)
	if err := json.Unmarshal(migrated, st); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	normalize(st, t)

	var at time.Time
	if env.Timestamp > 0 {
		at = time.UnixMilli(env.Timestamp)
	}
	return st, at, nil
}

// Migrate rewrites legacy field shapes in place. Old saves kept upgrades as
// an object of boolean flags; they are turned into the list of upgrade ids.
func Migrate(fields map[string]json.RawMessage) error {
	raw, ok := fields["upgrades"]
	if !ok {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var flags map[string]bool
	if err := json.Unmarshal(trimmed, &flags); err != nil {
		return fmt.Errorf("legacy upgrades: %w", err)
	}
	ids := []string{}
	for _, legacy := range []string{"fastGrinder", "espressoMachine", "matchaSet"} {
		if flags[legacy] {
			ids = append(ids, domain.LegacyUpgradeKeys[legacy])
		}
	}
	out, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	fields["upgrades"] = out
	return nil
}

// normalize repairs values a hand-edited or truncated save may carry.
func normalize(st *domain.State, t domain.Tuning) {
	if st.Day < 1 {
		st.Day = 1
	}
	if st.MinutesElapsed < 0 {
		st.MinutesElapsed = 0
	}
	if st.MinutesElapsed > t.DayLengthMinutes {
		st.MinutesElapsed = t.DayLengthMinutes
	}
	if st.Inventory == nil {
		st.Inventory = domain.DefaultInventory()
	}
	if st.ResourceUsage == nil {
		st.ResourceUsage = map[domain.Resource]int{}
	}
	if st.CustomerHistory == nil {
		st.CustomerHistory = map[string]domain.CustomerRecord{}
	}
	if st.Upgrades == nil {
		st.Upgrades = []string{}
	}
	if st.Decorations == nil {
		st.Decorations = []domain.Decoration{}
	}
	if st.PurchaseHistory == nil {
		st.PurchaseHistory = []domain.Purchase{}
	}
	if !st.LocationUnlocked(domain.LocationCart) {
		st.UnlockedLocations = append([]domain.Location{domain.LocationCart}, st.UnlockedLocations...)
	}
	if st.Location == "" || !st.LocationUnlocked(st.Location) {
		st.Location = domain.LocationCart
	}
	if st.Weather != domain.WeatherSunny && st.Weather != domain.WeatherRainy {
		st.Weather = domain.WeatherSunny
	}
	if !st.Brewing.InRange() || !st.ModeUnlocked(st.Brewing.Mode) {
		st.Brewing = domain.NewBrewingState()
	}
	if st.Debug.TimeSpeed < 1 {
		st.Debug.TimeSpeed = 1
	}
	st.Stats.AdjustReputation(0)
	if c := st.CurrentCustomer; c != nil {
		if !c.Archetype.Valid() {
			c.Archetype = domain.ArchetypeDefault
		}
		if c.Patience < 0 {
			c.Patience = 0
		}
		c.AdjustSatisfaction(0)
	}
	if st.Dialogue != nil && (st.CurrentCustomer == nil || st.Dialogue.CustomerID != st.CurrentCustomer.ID) {
		st.Dialogue = nil
	}
}
