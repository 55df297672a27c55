package autopilot

import (
	"chillista/internal/app"
	"chillista/internal/domain"
)

// modeFor maps an order to the brewing mode that makes it.
func modeFor(d domain.Drink) domain.Mode {
	switch d {
	case domain.DrinkMatchaLatte:
		return domain.ModeMatcha
	case domain.DrinkEspresso:
		return domain.ModeEspresso
	default:
		return domain.ModeCoffee
	}
}

// brewTowards returns the next command that gets a mode drink into the cup:
// trash or switch when on the wrong mode, serve when ready, else the expected step.
func brewTowards(st *domain.State, mode domain.Mode, bean domain.BeanType) (app.Command, bool) {
	if st.Brewing.Mode != mode {
		if st.Brewing.Step > 0 {
			return app.Command{Kind: app.CmdTrash}, true
		}
		return app.Command{Kind: app.CmdSwitchMode, Mode: mode}, true
	}
	if st.Brewing.Ready() {
		return app.Command{Kind: app.CmdServe}, true
	}
	action, ok := st.Brewing.Expected()
	if !ok {
		return app.Command{}, false
	}
	return app.Command{Kind: app.CmdBrew, Action: action, Bean: bean}, true
}

// restock buys the first resource at or below level that the cart can afford.
func restock(st *domain.State, amounts map[domain.Resource]int, levels ...domain.StockLevel) (app.Command, bool) {
	report := domain.BuildStockReport(st)
	for _, line := range report.Lines {
		if !hasLevel(line.Level, levels) {
			continue
		}
		item, ok := domain.ItemForResource(line.Resource)
		if !ok {
			continue
		}
		qty := amounts[line.Resource]
		if qty <= 0 {
			continue
		}
		if _, cost := item.Quote(qty); cost > st.Cash {
			continue
		}
		return app.Command{Kind: app.CmdBuy, Item: item.ID, Quantity: qty}, true
	}
	return app.Command{}, false
}

func hasLevel(l domain.StockLevel, levels []domain.StockLevel) bool {
	for _, want := range levels {
		if l == want {
			return true
		}
	}
	return false
}

// SteadyBarista only ever brews plain coffee with standard beans and
// restocks a supply once it has run out.
type SteadyBarista struct{}

func (b *SteadyBarista) NextCommand(st *domain.State) (app.Command, bool) {
	switch {
	case !st.GameStarted:
		return app.Command{Kind: app.CmdStartGame}, true
	case st.DayEnded:
		return app.Command{Kind: app.CmdNewDay}, true
	}
	if cmd, ok := restock(st, DefaultTuning.RestockAmounts, domain.StockOut); ok {
		return cmd, true
	}
	if st.CurrentCustomer == nil {
		return app.Command{}, false
	}
	return brewTowards(st, domain.ModeCoffee, domain.BeanStandard)
}

func (b *SteadyBarista) OnEvent(event app.Event) {}

// CarefulBarista brews what was ordered when the mode is unlocked, spoils
// critics with premium beans, keeps supplies above critical and invests in
// upgrades after closing time.
type CarefulBarista struct {
	Tuning Tuning

	Served   int
	Walkouts int
}

func (b *CarefulBarista) NextCommand(st *domain.State) (app.Command, bool) {
	switch {
	case !st.GameStarted:
		return app.Command{Kind: app.CmdStartGame}, true
	case st.DayEnded:
		if cmd, ok := b.upgrade(st); ok {
			return cmd, true
		}
		if cmd, ok := restock(st, b.Tuning.RestockAmounts, domain.StockOut, domain.StockCritical, domain.StockWarning); ok {
			return cmd, true
		}
		return app.Command{Kind: app.CmdNewDay}, true
	}

	if cmd, ok := restock(st, b.Tuning.RestockAmounts, domain.StockOut, domain.StockCritical); ok {
		return cmd, true
	}
	c := st.CurrentCustomer
	if c == nil {
		return app.Command{}, false
	}

	mode := modeFor(c.Order)
	if !st.ModeUnlocked(mode) {
		mode = domain.ModeCoffee
	}
	bean := domain.BeanStandard
	if b.Tuning.PremiumFor[c.Archetype] && st.Inventory[domain.ResourceBeansPremium] > 0 {
		bean = domain.BeanPremium
	}
	return brewTowards(st, mode, bean)
}

func (b *CarefulBarista) upgrade(st *domain.State) (app.Command, bool) {
	for _, id := range domain.UpgradeIDs() {
		def, ok := domain.LookupUpgrade(id)
		if !ok || st.HasUpgrade(id) {
			continue
		}
		if st.Stats.Reputation < def.Reputation || st.Cash-def.Cost < b.Tuning.CashReserve {
			continue
		}
		return app.Command{Kind: app.CmdBuyUpgrade, Upgrade: id}, true
	}
	return app.Command{}, false
}

func (b *CarefulBarista) OnEvent(event app.Event) {
	switch event.Kind {
	case app.EventDrinkServed:
		b.Served++
	case app.EventCustomerLeft:
		b.Walkouts++
	}
}
