package app

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"chillista/internal/domain"
)

func calmTuning() domain.Tuning {
	t := domain.DefaultTuning
	t.MishapChance = 0
	return t
}

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)), calmTuning())
}

func startedState(svc *Service) *domain.State {
	st := svc.NewGame()
	st.GameStarted = true
	st.Debug.CustomerArrivalDisabled = true
	return st
}

func seatCustomer(st *domain.State, a domain.Archetype, order domain.Drink, patience float64) {
	st.CurrentCustomer = &domain.Customer{
		ID: "c1", Name: "Ken", Archetype: a, Order: order,
		Patience: patience, MaxPatience: patience, DecayRate: 0.5, Satisfaction: 50,
	}
}

func brewCoffee(t *testing.T, svc *Service, st *domain.State, bean domain.BeanType) {
	t.Helper()
	for _, a := range []domain.Action{domain.ActionGrind, domain.ActionAddWater, domain.ActionStir, domain.ActionPlunge} {
		if _, err := svc.Brew(st, a, bean); err != nil {
			t.Fatalf("brew %s: %v", a, err)
		}
	}
}

func hasEvent(evs []Event, kind EventKind) bool {
	for _, ev := range evs {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestServe_PlainCoffee(t *testing.T) {
	svc := newTestService(1)
	st := startedState(svc)
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 60)

	brewCoffee(t, svc, st, domain.BeanStandard)
	evs, err := svc.Serve(st)
	if err != nil {
		t.Fatalf("serve: %v", err)
	}

	var receipt domain.Receipt
	for _, ev := range evs {
		if ev.Kind == EventDrinkServed {
			receipt = ev.Payload.(DrinkServedPayload).Receipt
		}
	}
	if receipt.Quality != 1.0 {
		t.Fatalf("quality = %v, want 1.0", receipt.Quality)
	}
	want := 4.00*1.0*1.2 + 3.0
	if math.Abs(receipt.Total-want) > 1e-9 || math.Abs(st.Cash-(50+want)) > 1e-9 {
		t.Fatalf("total = %v cash = %v, want %v", receipt.Total, st.Cash, want)
	}
	if st.Inventory[domain.ResourceCups] != 49 {
		t.Fatalf("cups = %d, want 49", st.Inventory[domain.ResourceCups])
	}
	if st.Brewing.Step != 0 || st.CurrentCustomer != nil {
		t.Fatalf("serve must reset brewing and clear the customer")
	}
	if st.Stats.CustomersServed != 1 || st.Stats.Reputation != 1 {
		t.Fatalf("stats = %+v", st.Stats)
	}
	if st.CustomerHistory["Ken"].Visits != 1 {
		t.Fatalf("customer history not recorded")
	}
}

func TestServe_MatchaOrderFromCoffeeStation(t *testing.T) {
	svc := newTestService(2)
	st := startedState(svc)
	st.Stats.Reputation = 3
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkMatchaLatte, 90)

	brewCoffee(t, svc, st, domain.BeanStandard)
	evs, err := svc.Serve(st)
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	r := evs[0].Payload.(DrinkServedPayload).Receipt
	if math.Abs(r.Quality-0.1) > 1e-9 {
		t.Fatalf("quality = %v, want 0.1", r.Quality)
	}
	if st.Stats.Reputation != 2 {
		t.Fatalf("reputation = %d, want 2", st.Stats.Reputation)
	}
}

func TestServe_Rejections(t *testing.T) {
	svc := newTestService(3)

	st := startedState(svc)
	if _, err := svc.Serve(st); !errors.Is(err, domain.ErrNoCustomer) {
		t.Fatalf("expected ErrNoCustomer, got %v", err)
	}

	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 60)
	if _, err := svc.Serve(st); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	brewCoffee(t, svc, st, domain.BeanStandard)
	st.Inventory[domain.ResourceCups] = 0
	if _, err := svc.Serve(st); !errors.Is(err, domain.ErrInsufficientResource) {
		t.Fatalf("expected ErrInsufficientResource, got %v", err)
	}
	if st.CurrentCustomer == nil || !st.Brewing.Ready() {
		t.Fatalf("failed serve must not clear customer or brew")
	}
}

func TestReduce_RejectedBrewKeepsState(t *testing.T) {
	svc := newTestService(4)
	st := startedState(svc)
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 60)
	if _, err := svc.Brew(st, domain.ActionGrind, domain.BeanStandard); err != nil {
		t.Fatalf("grind: %v", err)
	}
	st.Inventory[domain.ResourceWater] = 10

	next, evs, err := svc.Reduce(st, Command{Kind: CmdBrew, Action: domain.ActionAddWater})
	if !errors.Is(err, domain.ErrInsufficientResource) {
		t.Fatalf("expected ErrInsufficientResource, got %v", err)
	}
	if next != st {
		t.Fatalf("rejected command must return the previous state")
	}
	if st.Brewing.Step != 1 || st.Inventory[domain.ResourceWater] != 10 {
		t.Fatalf("state mutated: step=%d water=%d", st.Brewing.Step, st.Inventory[domain.ResourceWater])
	}
	if len(evs) != 1 || evs[0].Kind != EventActionRejected || evs[0].Sound != domain.SoundError {
		t.Fatalf("expected a single action_rejected event, got %+v", evs)
	}
}

func TestReduce_DoesNotMutatePrevious(t *testing.T) {
	svc := newTestService(5)
	st := startedState(svc)

	next, _, err := svc.Reduce(st, Command{Kind: CmdBuy, Item: "CUPS", Quantity: 10})
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if st.Inventory[domain.ResourceCups] != 50 || st.Cash != 50 {
		t.Fatalf("previous state was mutated")
	}
	if next.Inventory[domain.ResourceCups] != 60 {
		t.Fatalf("cups = %d, want 60", next.Inventory[domain.ResourceCups])
	}
}

func TestExecute_RequiresStartedGame(t *testing.T) {
	svc := newTestService(6)
	st := svc.NewGame()
	if _, err := svc.Execute(st, Command{Kind: CmdRelax}); !errors.Is(err, domain.ErrGameNotStarted) {
		t.Fatalf("expected ErrGameNotStarted, got %v", err)
	}
	if evs, _ := svc.Execute(st, Command{Kind: CmdTick}); len(evs) != 0 || st.MinutesElapsed != 0 {
		t.Fatalf("clock must not run before the game starts")
	}
	if _, err := svc.Execute(st, Command{Kind: CmdStartGame, PlayerName: "Sam"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !st.GameStarted || st.PlayerName != "Sam" {
		t.Fatalf("game not started: %+v", st)
	}
}

func TestTick_WalkoutOnSameTick(t *testing.T) {
	svc := newTestService(7)
	st := startedState(svc)
	st.Stats.Reputation = 2
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 0.3)
	st.Brewing.Step = 2

	evs, err := svc.Tick(st)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if st.CurrentCustomer != nil || !hasEvent(evs, EventCustomerLeft) {
		t.Fatalf("customer should leave on the tick patience hits zero")
	}
	if st.Stats.Reputation != 0 {
		t.Fatalf("reputation = %d, want clamped 0", st.Stats.Reputation)
	}
	if st.Brewing.Step != 0 {
		t.Fatalf("walkout should reset the station")
	}
}

// fixedSource makes every rng draw return the same fraction.
type fixedSource struct{ v int64 }

func (f fixedSource) Int63() int64 { return f.v }
func (f fixedSource) Seed(int64)   {}

func TestBrew_GrinderJamWhileBrokeCanWalkCustomerOut(t *testing.T) {
	tuning := domain.DefaultTuning
	tuning.MishapChance = 1
	// 0.9 picks the last mishap, the grinder jam.
	svc := NewService(rand.New(fixedSource{v: 9 * (1 << 63 / 10)}), tuning)
	st := startedState(svc)
	st.Cash = 0
	st.Stats.Reputation = 10
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 2)

	evs, err := svc.Brew(st, domain.ActionGrind, domain.BeanStandard)
	if err != nil {
		t.Fatalf("brew: %v", err)
	}
	if !hasEvent(evs, EventMishap) || !hasEvent(evs, EventCustomerLeft) {
		t.Fatalf("expected a jam and a walkout, got %+v", evs)
	}
	if st.CurrentCustomer != nil {
		t.Fatalf("customer should have left during the lost minutes")
	}
	if st.Stats.Reputation != 10-tuning.WalkoutPenalty {
		t.Fatalf("reputation = %d, want %d", st.Stats.Reputation, 10-tuning.WalkoutPenalty)
	}
	if st.MinutesElapsed != tuning.GrinderJamMinutes {
		t.Fatalf("minutes = %d, want %d", st.MinutesElapsed, tuning.GrinderJamMinutes)
	}
	if st.Brewing.Step != 0 || st.Cash != 0 {
		t.Fatalf("walkout should reset the station and cost nothing: step=%d cash=%v", st.Brewing.Step, st.Cash)
	}
}

func TestTick_DecayUsesPlants(t *testing.T) {
	svc := newTestService(8)
	st := startedState(svc)
	st.Decorations = []domain.Decoration{domain.DecorationPlant}
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 50)

	if _, err := svc.Tick(st); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := st.CurrentCustomer.Patience; math.Abs(got-(50-0.5*0.8)) > 1e-9 {
		t.Fatalf("patience = %v, want 49.6", got)
	}
}

func TestTick_ArrivalsFollowWeather(t *testing.T) {
	svc := newTestService(9)
	st := startedState(svc)
	st.Debug.CustomerArrivalDisabled = false

	arrived := false
	for i := 0; i < 60 && !arrived; i++ {
		evs, _ := svc.Tick(st)
		arrived = hasEvent(evs, EventCustomerArrived)
	}
	if !arrived || st.CurrentCustomer == nil {
		t.Fatalf("expected a customer within an hour of sunny weather")
	}
	if st.CurrentCustomer.ID == "" || st.CurrentCustomer.Satisfaction != 50 {
		t.Fatalf("customer not initialised: %+v", st.CurrentCustomer)
	}
}

func TestTick_DayEndsOnce(t *testing.T) {
	svc := newTestService(10)
	st := startedState(svc)
	st.MinutesElapsed = 479

	evs, _ := svc.Tick(st)
	if !hasEvent(evs, EventDayEnded) || !st.DayEnded {
		t.Fatalf("expected day to end at 480 minutes")
	}
	evs, _ = svc.Tick(st)
	if len(evs) != 0 || st.MinutesElapsed != 480 {
		t.Fatalf("ticks after closing must do nothing")
	}

	if _, err := svc.StartNewDay(st); err != nil {
		t.Fatalf("new day: %v", err)
	}
	if st.Day != 2 || st.MinutesElapsed != 0 || st.DayEnded || st.Stats.DailyEarnings != 0 {
		t.Fatalf("unexpected state after new day: %+v", st)
	}
	if _, err := svc.StartNewDay(st); !errors.Is(err, domain.ErrDayNotOver) {
		t.Fatalf("expected ErrDayNotOver, got %v", err)
	}
}

func TestTick_PausedDoesNothing(t *testing.T) {
	svc := newTestService(11)
	st := startedState(svc)
	st.Debug.TimePaused = true
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 50)

	svc.Tick(st)
	if st.MinutesElapsed != 0 || st.CurrentCustomer.Patience != 50 {
		t.Fatalf("paused clock advanced")
	}
}

func TestSwitchMode(t *testing.T) {
	svc := newTestService(12)
	st := startedState(svc)

	if _, err := svc.SwitchMode(st, domain.ModeMatcha); !errors.Is(err, domain.ErrModeLocked) {
		t.Fatalf("expected ErrModeLocked, got %v", err)
	}

	st.Upgrades = append(st.Upgrades, domain.UpgradeMatcha)
	seatCustomer(st, domain.ArchetypeHipster, domain.DrinkMatchaLatte, 100)
	if _, err := svc.Brew(st, domain.ActionGrind, domain.BeanPremium); err != nil {
		t.Fatalf("grind: %v", err)
	}
	if _, err := svc.SwitchMode(st, domain.ModeMatcha); !errors.Is(err, domain.ErrBrewInProgress) {
		t.Fatalf("expected ErrBrewInProgress, got %v", err)
	}

	if _, err := svc.Trash(st); err != nil {
		t.Fatalf("trash: %v", err)
	}
	evs, err := svc.SwitchMode(st, domain.ModeMatcha)
	if err != nil || !hasEvent(evs, EventModeSwitched) {
		t.Fatalf("switch after trash: %v", err)
	}
	if st.Brewing.Mode != domain.ModeMatcha || st.Brewing.BeanType != domain.BeanNone {
		t.Fatalf("unexpected brewing state %+v", st.Brewing)
	}
}

func TestBuy(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		qty     int
		cash    float64
		wantErr error
	}{
		{name: "unknown", item: "SUGAR", qty: 1, cash: 50, wantErr: domain.ErrUnknownItem},
		{name: "zero quantity", item: "CUPS", qty: 0, cash: 50, wantErr: domain.ErrInvalidQuantity},
		{name: "broke", item: "BEANS_PRM", qty: 1000, cash: 50, wantErr: domain.ErrInsufficientCash},
		{name: "ok", item: "BEANS_STD", qty: 100, cash: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(13)
			st := startedState(svc)
			st.Cash = tt.cash

			_, err := svc.Buy(st, tt.item, tt.qty)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if st.Cash != tt.cash || st.MinutesElapsed != 0 {
					t.Fatalf("rejected purchase changed state")
				}
				return
			}
			if err != nil {
				t.Fatalf("buy: %v", err)
			}
			if math.Abs(st.Cash-45) > 1e-9 || st.Inventory[domain.ResourceBeansStandard] != 600 {
				t.Fatalf("cash=%v beans=%d", st.Cash, st.Inventory[domain.ResourceBeansStandard])
			}
			if st.MinutesElapsed != 5 || len(st.PurchaseHistory) != 1 {
				t.Fatalf("purchase should take 5 minutes and be recorded")
			}
		})
	}
}

func TestBuy_PlantIsOneDecoration(t *testing.T) {
	svc := newTestService(14)
	st := startedState(svc)
	if _, err := svc.Buy(st, "PLANT", 3); err != nil {
		t.Fatalf("buy plant: %v", err)
	}
	if len(st.Decorations) != 1 || st.Cash != 30 {
		t.Fatalf("decorations=%v cash=%v", st.Decorations, st.Cash)
	}
}

func TestBuyUpgrade(t *testing.T) {
	svc := newTestService(15)
	st := startedState(svc)
	st.Cash = 500

	if _, err := svc.BuyUpgrade(st, domain.UpgradeEspresso); !errors.Is(err, domain.ErrReputationTooLow) {
		t.Fatalf("expected ErrReputationTooLow, got %v", err)
	}
	if _, err := svc.BuyUpgrade(st, domain.UpgradeFastGrinder); err != nil {
		t.Fatalf("grinder: %v", err)
	}
	if _, err := svc.BuyUpgrade(st, domain.UpgradeFastGrinder); !errors.Is(err, domain.ErrUpgradeOwned) {
		t.Fatalf("expected ErrUpgradeOwned, got %v", err)
	}
	if st.Cash != 450 || !st.HasUpgrade(domain.UpgradeFastGrinder) {
		t.Fatalf("cash=%v upgrades=%v", st.Cash, st.Upgrades)
	}
}

func TestServe_Unlocks(t *testing.T) {
	svc := newTestService(16)
	st := startedState(svc)
	st.Stats.Reputation = 19
	st.Stats.CustomersServed = 2

	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 80)
	brewCoffee(t, svc, st, domain.BeanStandard)
	evs, err := svc.Serve(st)
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !st.DarkModeUnlocked || !hasEvent(evs, EventDarkModeUnlocked) {
		t.Fatalf("dark mode should unlock on the third serve")
	}
	if !st.LocationUnlocked(domain.LocationPark) || !hasEvent(evs, EventLocationUnlocked) {
		t.Fatalf("park should unlock at 20 reputation")
	}
	if _, err := svc.SetDarkMode(st, true); err != nil || !st.DarkModeEnabled {
		t.Fatalf("dark mode toggle: %v", err)
	}
}

func TestTravel(t *testing.T) {
	svc := newTestService(17)
	st := startedState(svc)

	if _, err := svc.Travel(st, domain.LocationPark); !errors.Is(err, domain.ErrLocationLocked) {
		t.Fatalf("expected ErrLocationLocked, got %v", err)
	}
	st.UnlockedLocations = append(st.UnlockedLocations, domain.LocationPark)
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 80)
	if _, err := svc.Travel(st, domain.LocationPark); !errors.Is(err, domain.ErrCustomerWaiting) {
		t.Fatalf("expected ErrCustomerWaiting, got %v", err)
	}
	st.ClearCustomer()
	if _, err := svc.Travel(st, domain.LocationPark); err != nil || st.Location != domain.LocationPark {
		t.Fatalf("travel: %v", err)
	}
}

func TestRelax(t *testing.T) {
	svc := newTestService(18)
	st := startedState(svc)
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 80)
	if _, err := svc.Relax(st); !errors.Is(err, domain.ErrCustomerWaiting) {
		t.Fatalf("expected ErrCustomerWaiting, got %v", err)
	}
	st.ClearCustomer()
	if _, err := svc.Relax(st); err != nil || st.MinutesElapsed != 15 {
		t.Fatalf("relax: err=%v minutes=%d", err, st.MinutesElapsed)
	}
}

func TestDialogue_TalkAndChoose(t *testing.T) {
	svc := newTestService(19)
	st := startedState(svc)
	seatCustomer(st, domain.ArchetypeRegular, domain.DrinkCoffee, 80)

	if _, err := svc.Choose(st, 0); !errors.Is(err, domain.ErrNoDialogueChoices) {
		t.Fatalf("expected ErrNoDialogueChoices, got %v", err)
	}
	if _, err := svc.Talk(st); err != nil {
		t.Fatalf("talk: %v", err)
	}
	if _, err := svc.Choose(st, 99); !errors.Is(err, domain.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
	// "On the house." is worth 5 reputation and 15 satisfaction.
	if _, err := svc.Choose(st, 0); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if st.Stats.Reputation != 5 || st.CurrentCustomer.Satisfaction != 65 || st.Dialogue != nil {
		t.Fatalf("rep=%d sat=%d", st.Stats.Reputation, st.CurrentCustomer.Satisfaction)
	}
}

func TestSmallTalk(t *testing.T) {
	svc := newTestService(20)
	st := startedState(svc)
	seatCustomer(st, domain.ArchetypeDefault, domain.DrinkCoffee, 80)

	evs, err := svc.SmallTalk(st)
	if err != nil || !hasEvent(evs, EventDialogueResponse) {
		t.Fatalf("small talk: %v", err)
	}
	if st.Stats.Reputation != 1 || st.CurrentCustomer.Satisfaction != 55 {
		t.Fatalf("rep=%d sat=%d", st.Stats.Reputation, st.CurrentCustomer.Satisfaction)
	}
}

func TestDebug(t *testing.T) {
	svc := newTestService(21)
	st := startedState(svc)

	if _, err := svc.Debug(st, Command{Debug: DebugCycleSpeed}); err != nil || st.Debug.TimeSpeed != 2 {
		t.Fatalf("speed=%d err=%v", st.Debug.TimeSpeed, err)
	}
	svc.Tick(st)
	if st.MinutesElapsed != 2 {
		t.Fatalf("2x speed should advance two minutes per tick, got %d", st.MinutesElapsed)
	}
	if _, err := svc.Debug(st, Command{Debug: DebugSpawnCustomer, Archetype: domain.ArchetypeCritic}); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if st.CurrentCustomer == nil || st.CurrentCustomer.Archetype != domain.ArchetypeCritic {
		t.Fatalf("expected a critic at the counter")
	}
	if _, err := svc.Debug(st, Command{Debug: "nope"}); !errors.Is(err, domain.ErrInvalidDebugFlag) {
		t.Fatalf("expected ErrInvalidDebugFlag, got %v", err)
	}
}

func TestStore_DispatchNotifiesListeners(t *testing.T) {
	svc := newTestService(22)
	store := NewStore(svc, startedState(svc))

	var seen [][]Event
	store.Subscribe(func(_ *domain.State, evs []Event) { seen = append(seen, evs) })

	if _, err := store.Dispatch(Command{Kind: CmdServe}); !errors.Is(err, domain.ErrNoCustomer) {
		t.Fatalf("expected ErrNoCustomer, got %v", err)
	}
	if _, err := store.Dispatch(Command{Kind: CmdBuy, Item: "FILTERS", Quantity: 10}); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if len(seen) != 2 || seen[0][0].Kind != EventActionRejected {
		t.Fatalf("listener saw %+v", seen)
	}
	if store.State().Inventory[domain.ResourceFilters] != 60 {
		t.Fatalf("store did not commit the purchase")
	}
}
