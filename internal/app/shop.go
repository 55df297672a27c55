package app

import (
	"fmt"

	"chillista/internal/domain"
)

// Buy purchases qty units of a catalog item. Shopping takes a few in-game minutes.
func (s *Service) Buy(st *domain.State, itemID string, qty int) ([]Event, error) {
	item, ok := domain.LookupItem(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownItem, itemID)
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	qty, cost := item.Quote(qty)
	if st.Cash < cost {
		return nil, fmt.Errorf("%w: need $%.2f", domain.ErrInsufficientCash, cost)
	}

	st.Cash -= cost
	msg := fmt.Sprintf("Bought %d %s for $%.2f.", qty, item.Name, cost)
	if item.Kind == domain.ItemDecoration {
		st.Decorations = append(st.Decorations, item.Decoration)
		msg = fmt.Sprintf("Bought a %s! Cozy vibes increased.", item.Name)
	} else {
		st.Inventory.Add(item.Resource, qty)
	}
	st.PurchaseHistory = append(st.PurchaseHistory, domain.Purchase{
		Day:       st.Day,
		Item:      item.Name,
		Quantity:  qty,
		Cost:      cost,
		Timestamp: s.now().UnixMilli(),
	})

	events := []Event{{
		Kind:    EventPurchase,
		Tone:    ToneSuccess,
		Sound:   domain.SoundAction,
		Message: msg,
		Payload: PurchasePayload{Item: item.ID, Quantity: qty, Cost: cost},
	}}
	events = append(events, s.checkStock(st)...)
	events = append(events, s.advance(st, s.tuning.ShopMinutes)...)
	return events, nil
}

// BuyUpgrade buys a permanent upgrade once reputation allows it.
func (s *Service) BuyUpgrade(st *domain.State, id string) ([]Event, error) {
	def, ok := domain.LookupUpgrade(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownUpgrade, id)
	}
	if st.HasUpgrade(id) {
		return nil, domain.ErrUpgradeOwned
	}
	if st.Stats.Reputation < def.Reputation {
		return nil, fmt.Errorf("%w: need %d", domain.ErrReputationTooLow, def.Reputation)
	}
	if st.Cash < def.Cost {
		return nil, fmt.Errorf("%w: need $%.2f", domain.ErrInsufficientCash, def.Cost)
	}

	st.Cash -= def.Cost
	st.Upgrades = append(st.Upgrades, id)
	return []Event{{
		Kind:    EventUpgradeBought,
		Tone:    ToneSuccess,
		Sound:   domain.SoundSuccess,
		Message: fmt.Sprintf("Purchased %s! %s", def.Name, def.Description),
		Payload: UpgradePayload{Upgrade: def},
	}}, nil
}

// Travel moves the cart. The counter must be empty.
func (s *Service) Travel(st *domain.State, loc domain.Location) ([]Event, error) {
	def, ok := domain.LookupLocation(loc, s.tuning)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLocation, loc)
	}
	if !st.LocationUnlocked(loc) {
		return nil, fmt.Errorf("%w: need %d reputation", domain.ErrLocationLocked, def.UnlockReputation)
	}
	if st.CurrentCustomer != nil {
		return nil, domain.ErrCustomerWaiting
	}
	if st.Location == loc {
		return nil, nil
	}
	st.Location = loc
	st.Brewing.Reset()
	return []Event{{
		Kind:    EventLocationChanged,
		Tone:    ToneSystem,
		Sound:   domain.SoundAction,
		Message: "Set up shop at " + def.Name + ".",
		Payload: LocationPayload{Location: loc},
	}}, nil
}

// Relax lets the barista take a break while nobody is waiting.
func (s *Service) Relax(st *domain.State) ([]Event, error) {
	if st.CurrentCustomer != nil {
		return nil, domain.ErrCustomerWaiting
	}
	if st.DayEnded {
		return nil, domain.ErrDayOver
	}
	events := []Event{logEvent(EventRelaxed, ToneSuccess, domain.SoundChime, "You take a sip of coffee... warm and cozy.")}
	return append(events, s.advance(st, s.tuning.RelaxMinutes)...), nil
}
