package domain

import "errors"

var (
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientCash  = errors.New("not enough cash")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrUpgradeOwned      = errors.New("upgrade already owned")
	ErrReputationTooLow  = errors.New("reputation too low")
	ErrLocationLocked    = errors.New("location is locked")
	ErrUnknownLocation   = errors.New("unknown location")
	ErrDarkModeLocked    = errors.New("dark mode is locked")
	ErrInvalidSetting    = errors.New("invalid setting")
	ErrInvalidDebugFlag  = errors.New("invalid debug command")
	ErrNoCustomer        = errors.New("no customer waiting")
	ErrCustomerWaiting   = errors.New("a customer is waiting")
	ErrDayOver           = errors.New("the day is over")
	ErrDayNotOver        = errors.New("the day is not over yet")
	ErrGameNotStarted    = errors.New("game not started")
	ErrNoDialogueChoices = errors.New("no dialogue choices open")
	ErrInvalidChoice     = errors.New("invalid dialogue choice")
)

// Decoration is a cosmetic item that also slows patience decay.
type Decoration string

const DecorationPlant Decoration = "plant"

// ItemKind separates stock from decorations in the shop.
type ItemKind string

const (
	ItemStock      ItemKind = "stock"
	ItemDecoration ItemKind = "decoration"
)

// ShopItem is one row of the supply catalog.
type ShopItem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kind       ItemKind   `json:"kind"`
	Resource   Resource   `json:"resource,omitempty"`
	Decoration Decoration `json:"decoration,omitempty"`
	UnitPrice  float64    `json:"unitPrice"`
	Unit       string     `json:"unit"`
}

var catalog = map[string]ShopItem{
	"BEANS_STD": {ID: "BEANS_STD", Name: "Standard Beans", Kind: ItemStock, Resource: ResourceBeansStandard, UnitPrice: 0.05, Unit: "g"},
	"BEANS_PRM": {ID: "BEANS_PRM", Name: "Premium Beans", Kind: ItemStock, Resource: ResourceBeansPremium, UnitPrice: 0.10, Unit: "g"},
	"MILK":      {ID: "MILK", Name: "Milk", Kind: ItemStock, Resource: ResourceMilk, UnitPrice: 0.02, Unit: "ml"},
	"MILK_OAT":  {ID: "MILK_OAT", Name: "Oat Milk", Kind: ItemStock, Resource: ResourceMilkOat, UnitPrice: 0.06, Unit: "ml"},
	"WATER":     {ID: "WATER", Name: "Water", Kind: ItemStock, Resource: ResourceWater, UnitPrice: 0.004, Unit: "ml"},
	"MATCHA":    {ID: "MATCHA", Name: "Matcha Powder", Kind: ItemStock, Resource: ResourceMatchaPowder, UnitPrice: 0.20, Unit: "g"},
	"CUPS":      {ID: "CUPS", Name: "Cups", Kind: ItemStock, Resource: ResourceCups, UnitPrice: 0.10, Unit: "pcs"},
	"FILTERS":   {ID: "FILTERS", Name: "Filters", Kind: ItemStock, Resource: ResourceFilters, UnitPrice: 0.05, Unit: "pcs"},
	"PLANT":     {ID: "PLANT", Name: "Potted Plant", Kind: ItemDecoration, Decoration: DecorationPlant, UnitPrice: 20.00, Unit: "pcs"},
}

// LookupItem finds a catalog entry by id.
func LookupItem(id string) (ShopItem, bool) {
	it, ok := catalog[id]
	return it, ok
}

// ItemForResource returns the catalog entry that restocks r.
func ItemForResource(r Resource) (ShopItem, bool) {
	for _, it := range catalog {
		if it.Kind == ItemStock && it.Resource == r {
			return it, true
		}
	}
	return ShopItem{}, false
}

// Quote prices qty units of it. Decorations are always bought one at a time.
func (it ShopItem) Quote(qty int) (int, float64) {
	if it.Kind == ItemDecoration {
		qty = 1
	}
	return qty, it.UnitPrice * float64(qty)
}

// Upgrade ids.
const (
	UpgradeFastGrinder = "grinder_fast"
	UpgradeMatcha      = "mode_matcha"
	UpgradeEspresso    = "mode_espresso"
)

// UpgradeDef is a permanent purchase gated by reputation.
type UpgradeDef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Reputation  int     `json:"rep"`
	Description string  `json:"description"`
	Mode        Mode    `json:"mode,omitempty"`
}

var upgrades = map[string]UpgradeDef{
	UpgradeFastGrinder: {ID: UpgradeFastGrinder, Name: "Fast Grinder", Cost: 50, Reputation: 0, Description: "Grind beans instantly."},
	UpgradeMatcha:      {ID: UpgradeMatcha, Name: "Matcha Kit", Cost: 100, Reputation: 10, Description: "Unlock Matcha brewing mode.", Mode: ModeMatcha},
	UpgradeEspresso:    {ID: UpgradeEspresso, Name: "Espresso Machine", Cost: 250, Reputation: 25, Description: "Unlock Espresso brewing mode.", Mode: ModeEspresso},
}

// LookupUpgrade finds an upgrade definition by id.
func LookupUpgrade(id string) (UpgradeDef, bool) {
	u, ok := upgrades[id]
	return u, ok
}

// UpgradeIDs lists upgrades in shop order.
func UpgradeIDs() []string {
	return []string{UpgradeFastGrinder, UpgradeMatcha, UpgradeEspresso}
}

// LegacyUpgradeKeys maps the object-shaped upgrade flags of old saves to ids.
var LegacyUpgradeKeys = map[string]string{
	"fastGrinder":     UpgradeFastGrinder,
	"matchaSet":       UpgradeMatcha,
	"espressoMachine": UpgradeEspresso,
}
