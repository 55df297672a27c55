package domain

import (
	"strings"
)

// StockLevel grades how much of a resource is left.
type StockLevel string

const (
	StockOK       StockLevel = "ok"
	StockWarning  StockLevel = "warning"
	StockCritical StockLevel = "critical"
	StockOut      StockLevel = "out"
)

type threshold struct{ critical, warning int }

// Resources without a threshold are not graded.
var stockThresholds = map[Resource]threshold{
	ResourceBeansStandard: {critical: 40, warning: 100},
	ResourceBeansPremium:  {critical: 30, warning: 60},
	ResourceWater:         {critical: 200, warning: 400},
	ResourceMilk:          {critical: 30, warning: 80},
	ResourceMatchaPowder:  {critical: 15, warning: 40},
	ResourceCups:          {critical: 25, warning: 60},
	ResourceFilters:       {critical: 20, warning: 40},
}

const maxSuggestions = 3

// StockLine is one graded resource.
type StockLine struct {
	Resource Resource   `json:"resource"`
	Amount   int        `json:"amount"`
	Level    StockLevel `json:"level"`
	Used     int        `json:"used"`
}

// Suggestion is a restock hint.
type Suggestion struct {
	Resource Resource   `json:"resource"`
	Item     string     `json:"item"`
	Priority StockLevel `json:"priority"`
	Reason   string     `json:"reason"`
}

// StockReport grades the inventory and proposes purchases.
type StockReport struct {
	Lines       []StockLine  `json:"lines"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Out lists resources that are fully depleted.
func (r StockReport) Out() []Resource {
	var out []Resource
	for _, l := range r.Lines {
		if l.Level == StockOut {
			out = append(out, l.Resource)
		}
	}
	return out
}

// Grade returns the level of amount units of res.
func Grade(res Resource, amount int) StockLevel {
	th, ok := stockThresholds[res]
	switch {
	case !ok:
		return StockOK
	case amount <= 0:
		return StockOut
	case amount <= th.critical:
		return StockCritical
	case amount <= th.warning:
		return StockWarning
	default:
		return StockOK
	}
}

func tracked(s *State, res Resource) bool {
	if _, ok := stockThresholds[res]; !ok {
		return false
	}
	if res == ResourceMatchaPowder && !s.HasUpgrade(UpgradeMatcha) {
		return false
	}
	return true
}

// BuildStockReport grades every tracked resource of s. Matcha powder is
// ignored until the matcha kit is owned.
func BuildStockReport(s *State) StockReport {
	var rep StockReport
	for _, res := range Resources {
		if !tracked(s, res) {
			continue
		}
		amount := s.Inventory[res]
		rep.Lines = append(rep.Lines, StockLine{
			Resource: res,
			Amount:   amount,
			Level:    Grade(res, amount),
			Used:     s.ResourceUsage[res],
		})
	}

	for _, l := range rep.Lines {
		if l.Level == StockCritical || l.Level == StockOut {
			rep.Suggestions = append(rep.Suggestions, Suggestion{
				Resource: l.Resource, Item: displayName(l.Resource), Priority: StockCritical,
				Reason: "CRITICAL - Buy Now!",
			})
		}
	}
	if len(rep.Suggestions) < maxSuggestions {
		for _, l := range rep.Lines {
			if len(rep.Suggestions) >= maxSuggestions {
				break
			}
			if l.Level == StockWarning {
				rep.Suggestions = append(rep.Suggestions, Suggestion{
					Resource: l.Resource, Item: displayName(l.Resource), Priority: StockWarning,
					Reason: "Running low",
				})
			}
		}
	}
	return rep
}

func displayName(r Resource) string {
	words := strings.Split(string(r), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
