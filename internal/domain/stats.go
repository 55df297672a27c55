package domain

// Stats are the running counters shown on the HUD and day summary.
type Stats struct {
	CustomersServed    int     `json:"customersServed"`
	TipsEarned         float64 `json:"tipsEarned"`
	DailyEarnings      float64 `json:"dailyEarnings"`
	CumulativeEarnings float64 `json:"cumulativeEarnings"`
	Reputation         int     `json:"reputation"`
}

// AdjustReputation applies delta and clamps the result at zero.
func (s *Stats) AdjustReputation(delta int) {
	s.Reputation += delta
	if s.Reputation < 0 {
		s.Reputation = 0
	}
}

// RecordServe books a receipt.
func (s *Stats) RecordServe(r Receipt) {
	s.CustomersServed++
	s.TipsEarned += r.Tip
	s.DailyEarnings += r.Total
	s.CumulativeEarnings += r.Total
	s.AdjustReputation(r.ReputationDelta)
}

// RecordExtra books income that is not a drink sale (upsells, dialogue tips).
func (s *Stats) RecordExtra(amount float64, tip bool) {
	if tip {
		s.TipsEarned += amount
	}
	s.DailyEarnings += amount
	s.CumulativeEarnings += amount
}

// ResetDaily clears the counters that restart each morning.
func (s *Stats) ResetDaily() {
	s.CustomersServed = 0
	s.TipsEarned = 0
	s.DailyEarnings = 0
}

// CustomerRecord is what the cart remembers about a named guest.
type CustomerRecord struct {
	Visits     int     `json:"visits"`
	TotalSpent float64 `json:"totalSpent"`
	LastDay    int     `json:"lastDay"`
}

// Purchase is one line of the shop history.
type Purchase struct {
	Day       int     `json:"day"`
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	Cost      float64 `json:"cost"`
	Timestamp int64   `json:"timestamp"`
}

// DaySummary is reported once when the clock reaches closing time.
type DaySummary struct {
	Day             int     `json:"day"`
	Earnings        float64 `json:"earnings"`
	CustomersServed int     `json:"customersServed"`
	Tips            float64 `json:"tips"`
	Reputation      int     `json:"reputation"`
	Cash            float64 `json:"cash"`
}
