package autopilot

import (
	"math/rand"
	"testing"

	"chillista/internal/app"
	"chillista/internal/domain"
)

func startedState() *domain.State {
	st := domain.NewState(domain.DefaultTuning)
	st.GameStarted = true
	return st
}

func withCustomer(st *domain.State, a domain.Archetype, order domain.Drink) *domain.State {
	st.CurrentCustomer = &domain.Customer{ID: "c1", Name: "Ada", Archetype: a, Order: order, Patience: 80, MaxPatience: 80}
	return st
}

func TestSteadyBarista_NextCommand(t *testing.T) {
	tests := []struct {
		name   string
		state  func() *domain.State
		want   app.Command
		wantOK bool
	}{
		{
			name:   "starts the game",
			state:  func() *domain.State { return domain.NewState(domain.DefaultTuning) },
			want:   app.Command{Kind: app.CmdStartGame},
			wantOK: true,
		},
		{
			name: "opens the next day",
			state: func() *domain.State {
				st := startedState()
				st.DayEnded = true
				return st
			},
			want:   app.Command{Kind: app.CmdNewDay},
			wantOK: true,
		},
		{
			name:   "waits without a customer",
			state:  startedState,
			wantOK: false,
		},
		{
			name:   "grinds for any order",
			state:  func() *domain.State { return withCustomer(startedState(), domain.ArchetypeCritic, domain.DrinkMatchaLatte) },
			want:   app.Command{Kind: app.CmdBrew, Action: domain.ActionGrind, Bean: domain.BeanStandard},
			wantOK: true,
		},
		{
			name: "serves a ready cup",
			state: func() *domain.State {
				st := withCustomer(startedState(), domain.ArchetypeDefault, domain.DrinkCoffee)
				r, _ := domain.RecipeFor(domain.ModeCoffee)
				st.Brewing.Step = r.ReadyStep()
				return st
			},
			want:   app.Command{Kind: app.CmdServe},
			wantOK: true,
		},
		{
			name: "restocks what ran out",
			state: func() *domain.State {
				st := startedState()
				st.Inventory[domain.ResourceCups] = 0
				return st
			},
			want:   app.Command{Kind: app.CmdBuy, Item: "CUPS", Quantity: DefaultTuning.RestockAmounts[domain.ResourceCups]},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := (&SteadyBarista{}).NextCommand(tt.state())
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("command = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCarefulBarista_NextCommand(t *testing.T) {
	tests := []struct {
		name  string
		state func() *domain.State
		want  app.Command
	}{
		{
			name: "switches to an unlocked matcha order",
			state: func() *domain.State {
				st := withCustomer(startedState(), domain.ArchetypeDefault, domain.DrinkMatchaLatte)
				st.Upgrades = []string{domain.UpgradeMatcha}
				st.Inventory[domain.ResourceMatchaPowder] = 100
				return st
			},
			want: app.Command{Kind: app.CmdSwitchMode, Mode: domain.ModeMatcha},
		},
		{
			name:  "falls back to coffee when the mode is locked",
			state: func() *domain.State { return withCustomer(startedState(), domain.ArchetypeDefault, domain.DrinkEspresso) },
			want:  app.Command{Kind: app.CmdBrew, Action: domain.ActionGrind, Bean: domain.BeanStandard},
		},
		{
			name: "trashes a half-made drink of the wrong kind",
			state: func() *domain.State {
				st := withCustomer(startedState(), domain.ArchetypeDefault, domain.DrinkCoffee)
				st.Upgrades = []string{domain.UpgradeMatcha}
				st.Brewing = domain.BrewingState{Mode: domain.ModeMatcha, Step: 1}
				return st
			},
			want: app.Command{Kind: app.CmdTrash},
		},
		{
			name:  "premium beans for critics",
			state: func() *domain.State { return withCustomer(startedState(), domain.ArchetypeCritic, domain.DrinkCoffee) },
			want:  app.Command{Kind: app.CmdBrew, Action: domain.ActionGrind, Bean: domain.BeanPremium},
		},
		{
			name: "buys an affordable upgrade after closing",
			state: func() *domain.State {
				st := startedState()
				st.DayEnded = true
				st.Cash = 200
				return st
			},
			want: app.Command{Kind: app.CmdBuyUpgrade, Upgrade: domain.UpgradeFastGrinder},
		},
		{
			name: "restocks before opening",
			state: func() *domain.State {
				st := startedState()
				st.DayEnded = true
				st.Cash = 40
				st.Inventory[domain.ResourceMilk] = 50
				return st
			},
			want: app.Command{Kind: app.CmdBuy, Item: "MILK", Quantity: DefaultTuning.RestockAmounts[domain.ResourceMilk]},
		},
		{
			name: "opens when nothing is needed",
			state: func() *domain.State {
				st := startedState()
				st.DayEnded = true
				st.Cash = 40
				st.Inventory[domain.ResourceCups] = 100
				return st
			},
			want: app.Command{Kind: app.CmdNewDay},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &CarefulBarista{Tuning: DefaultTuning}
			got, ok := b.NextCommand(tt.state())
			if !ok {
				t.Fatal("expected a command")
			}
			if got != tt.want {
				t.Fatalf("command = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewAgent(t *testing.T) {
	agent, err := NewAgent("", LevelCareful)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	if agent.ID == "" || agent.Name == "" {
		t.Fatalf("agent not initialised: %+v", agent)
	}
	if _, ok := agent.Strategy.(*CarefulBarista); !ok {
		t.Fatalf("unexpected strategy %T", agent.Strategy)
	}
	if _, err := NewBrain(Level(42)); err == nil {
		t.Fatal("expected error for unknown level")
	}

	cmd, ok := agent.Act(domain.NewState(domain.DefaultTuning))
	if !ok || cmd.Kind != app.CmdStartGame || cmd.PlayerName != agent.Name {
		t.Fatalf("agent should open the cart under its own name: %+v", cmd)
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelSteady, LevelCareful} {
		got, ok := ParseLevel(l.String())
		if !ok || got != l {
			t.Fatalf("round trip of %v failed", l)
		}
	}
	if _, ok := ParseLevel("reckless"); ok {
		t.Fatal("unknown names must not parse")
	}
}

// TestCarefulBarista_RunsADay plays a whole day against the real service.
func TestCarefulBarista_RunsADay(t *testing.T) {
	tuning := domain.DefaultTuning
	tuning.MishapChance = 0
	svc := app.NewService(rand.New(rand.NewSource(11)), tuning)
	store := app.NewStore(svc, nil)

	brain := &CarefulBarista{Tuning: DefaultTuning}
	agent := &Agent{ID: "a1", Name: "Juniper", Strategy: brain}
	store.Subscribe(func(_ *domain.State, events []app.Event) { agent.OnGameEvents(events) })

	for minute := 0; minute < tuning.DayLengthMinutes+10 && !store.State().DayEnded; minute++ {
		for i := 0; i < 10; i++ {
			cmd, ok := agent.Act(store.State())
			if !ok || cmd.Kind == app.CmdNewDay {
				break
			}
			if _, err := store.Dispatch(cmd); err != nil {
				break
			}
		}
		store.Dispatch(app.Command{Kind: app.CmdTick})
	}

	if !store.State().DayEnded {
		t.Fatal("day did not end")
	}
	if brain.Served == 0 {
		t.Fatal("expected at least one customer served")
	}
	if store.State().Stats.CustomersServed != brain.Served {
		t.Fatalf("served %d, stats say %d", brain.Served, store.State().Stats.CustomersServed)
	}
}
