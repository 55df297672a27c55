package ports

import "context"

// DayResult is what a closed business day contributes to the leaderboards.
type DayResult struct {
	UserID     string
	Username   string
	Day        int
	Earnings   float64
	Served     int
	Reputation int
}

// ScoreboardPort records finished days.
type ScoreboardPort interface {
	// RecordDay submits a day result. Implementations keep the best score per player.
	RecordDay(ctx context.Context, result DayResult) error
}
