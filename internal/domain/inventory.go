package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Resource names a stocked supply.
type Resource string

const (
	ResourceBeansStandard Resource = "beans_standard"
	ResourceBeansPremium  Resource = "beans_premium"
	ResourceMatchaPowder  Resource = "matcha_powder"
	ResourceWater         Resource = "water"
	ResourceMilk          Resource = "milk"
	ResourceMilkOat       Resource = "milk_oat"
	ResourceCups          Resource = "cups"
	ResourceFilters       Resource = "filters"
)

// Resources lists every supply in display order.
var Resources = []Resource{
	ResourceBeansStandard,
	ResourceBeansPremium,
	ResourceMatchaPowder,
	ResourceWater,
	ResourceMilk,
	ResourceMilkOat,
	ResourceCups,
	ResourceFilters,
}

// ErrInsufficientResource is matched by every InsufficientResourceError.
var ErrInsufficientResource = errors.New("insufficient resource")

// InsufficientResourceError reports which supply ran short. The action that
// produced it changed nothing and may be retried after restocking.
type InsufficientResourceError struct {
	Resource Resource
	Need     int
	Have     int
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("not enough %s: need %d, have %d", e.Resource, e.Need, e.Have)
}

func (e *InsufficientResourceError) Is(target error) bool {
	return target == ErrInsufficientResource
}

// Inventory maps each resource to the quantity on hand.
type Inventory map[Resource]int

// DefaultInventory is the stock a new cart opens with.
func DefaultInventory() Inventory {
	return Inventory{
		ResourceBeansStandard: 500,
		ResourceBeansPremium:  200,
		ResourceMatchaPowder:  0,
		ResourceWater:         1000,
		ResourceMilk:          500,
		ResourceMilkOat:       0,
		ResourceCups:          50,
		ResourceFilters:       50,
	}
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Has reports whether at least qty of r is in stock.
func (inv Inventory) Has(r Resource, qty int) bool {
	return inv[r] >= qty
}

// Consume removes every cost or nothing at all. Resources are checked in a
// stable order so the reported shortfall is deterministic.
func (inv Inventory) Consume(cost map[Resource]int) error {
	keys := make([]string, 0, len(cost))
	for r := range cost {
		keys = append(keys, string(r))
	}
	sort.Strings(keys)

	for _, k := range keys {
		r := Resource(k)
		if need := cost[r]; inv[r] < need {
			return &InsufficientResourceError{Resource: r, Need: need, Have: inv[r]}
		}
	}
	for r, need := range cost {
		inv[r] -= need
	}
	return nil
}

// Add credits qty units of r.
func (inv Inventory) Add(r Resource, qty int) {
	inv[r] += qty
}
