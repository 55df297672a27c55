package domain

import "testing"

func TestGrade(t *testing.T) {
	tests := []struct {
		res    Resource
		amount int
		want   StockLevel
	}{
		{ResourceCups, 0, StockOut},
		{ResourceCups, 25, StockCritical},
		{ResourceCups, 60, StockWarning},
		{ResourceCups, 61, StockOK},
		{ResourceMilkOat, 0, StockOK},
	}
	for _, tt := range tests {
		if got := Grade(tt.res, tt.amount); got != tt.want {
			t.Fatalf("%s=%d: expected %s, got %s", tt.res, tt.amount, tt.want, got)
		}
	}
}

func TestBuildStockReport(t *testing.T) {
	s := NewState(DefaultTuning)
	s.Inventory[ResourceCups] = 0
	s.Inventory[ResourceFilters] = 10
	s.Inventory[ResourceMilk] = 70
	s.Inventory[ResourceWater] = 350

	rep := BuildStockReport(s)
	for _, l := range rep.Lines {
		if l.Resource == ResourceMatchaPowder {
			t.Fatalf("matcha powder should be ignored without the kit")
		}
	}
	if out := rep.Out(); len(out) != 1 || out[0] != ResourceCups {
		t.Fatalf("expected cups out of stock, got %v", out)
	}
	if len(rep.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(rep.Suggestions))
	}
	if rep.Suggestions[0].Priority != StockCritical || rep.Suggestions[1].Priority != StockCritical {
		t.Fatalf("critical suggestions must come first: %+v", rep.Suggestions)
	}
	if rep.Suggestions[2].Item != "Water" {
		t.Fatalf("expected water warning third, got %+v", rep.Suggestions[2])
	}
}

func TestUnlockLocations(t *testing.T) {
	s := NewState(DefaultTuning)
	s.Stats.Reputation = 19
	if added := UnlockLocations(s, DefaultTuning); len(added) != 0 {
		t.Fatalf("park unlocked too early")
	}
	s.Stats.Reputation = 20
	added := UnlockLocations(s, DefaultTuning)
	if len(added) != 1 || added[0].ID != LocationPark || !s.LocationUnlocked(LocationPark) {
		t.Fatalf("expected park to unlock at 20 rep, got %+v", added)
	}
	if again := UnlockLocations(s, DefaultTuning); len(again) != 0 {
		t.Fatalf("park unlocked twice")
	}
}

func TestApplyMishap(t *testing.T) {
	s := NewState(DefaultTuning)
	s.Cash = 2
	out := ApplyMishap(s, MishapGrinderJam, DefaultTuning)
	if out.MinutesLost != 10 || s.Cash != 2 {
		t.Fatalf("broke barista should lose time, not cash: %+v cash=%v", out, s.Cash)
	}

	s.Inventory[ResourceMilk] = 50
	ApplyMishap(s, MishapSpill, DefaultTuning)
	if s.Inventory[ResourceMilk] != 50 {
		t.Fatalf("spill needs more than 50ml to take any")
	}

	ApplyMishap(s, MishapButterfingers, DefaultTuning)
	if s.Inventory[ResourceCups] != 49 {
		t.Fatalf("expected a dropped cup, have %d", s.Inventory[ResourceCups])
	}
}
