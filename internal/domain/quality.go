package domain

// DrinkQuality compares what was brewed with what the customer ordered.
func DrinkQuality(b BrewingState, order Drink) float64 {
	switch b.Mode {
	case ModeMatcha:
		if order == DrinkMatchaLatte {
			return 2.0
		}
		return 0.5
	case ModeEspresso:
		// A latte is still not a matcha latte, so it scores like any wrong drink.
		if order == DrinkMatchaLatte {
			return 0.1
		}
		return 1.0
	default:
		if order == DrinkMatchaLatte {
			return 0.1
		}
		if b.BeanType == BeanPremium {
			return 1.5
		}
		return 1.0
	}
}

// PatienceBonus rewards fast service.
func PatienceBonus(patience float64, t Tuning) float64 {
	if patience > t.FastServicePatience {
		return t.FastServiceBonus
	}
	return 1.0
}

// Tip is proportional to the patience left at the counter.
func Tip(patience float64, t Tuning) float64 {
	return patience * t.TipPerPatience
}

// ReviewDelta is the reputation swing a served drink earns. A perfect drink
// (good quality and fast) earns the archetype's review weight, a poor one costs it.
func ReviewDelta(quality, bonus float64, a Archetype) int {
	weight := a.Profile().ReviewWeight
	switch {
	case quality >= 1.0 && bonus > 1.0:
		return weight
	case quality < 0.5:
		return -weight
	default:
		return 0
	}
}

// Receipt is the outcome of serving one customer.
type Receipt struct {
	CustomerName    string    `json:"customerName"`
	Archetype       Archetype `json:"type"`
	Order           Drink     `json:"order"`
	Quality         float64   `json:"quality"`
	PatienceBonus   float64   `json:"patienceBonus"`
	Price           float64   `json:"price"`
	Tip             float64   `json:"tip"`
	Total           float64   `json:"total"`
	ReputationDelta int       `json:"reputationDelta"`
}

// Perfect reports whether the serve earned a positive review.
func (r Receipt) Perfect() bool { return r.ReputationDelta > 0 }

// Poor reports whether the serve earned a negative review.
func (r Receipt) Poor() bool { return r.ReputationDelta < 0 }

// PriceServe computes the receipt for serving c from brew b.
func PriceServe(c Customer, b BrewingState, t Tuning) Receipt {
	quality := DrinkQuality(b, c.Order)
	bonus := PatienceBonus(c.Patience, t)
	price := t.BasePrice * quality * bonus
	tip := Tip(c.Patience, t)
	return Receipt{
		CustomerName:    c.Name,
		Archetype:       c.Archetype,
		Order:           c.Order,
		Quality:         quality,
		PatienceBonus:   bonus,
		Price:           price,
		Tip:             tip,
		Total:           price + tip,
		ReputationDelta: ReviewDelta(quality, bonus, c.Archetype),
	}
}
