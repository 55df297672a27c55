package nakama

import (
	"context"
	"fmt"
	"math"

	"chillista/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaLeaderboardAdapter implements ports.ScoreboardPort with two Nakama leaderboards.
type NakamaLeaderboardAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk runtime.NakamaModule) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk}
}

// RecordDay submits the day's earnings (in cents, customers served as subscore)
// and the current reputation (day as subscore).
func (a *NakamaLeaderboardAdapter) RecordDay(ctx context.Context, result ports.DayResult) error {
	cents := int64(math.Round(result.Earnings * 100))
	metadata := map[string]interface{}{"day": result.Day}

	if _, err := a.nk.LeaderboardRecordWrite(ctx, LeaderboardDailyEarnings, result.UserID, result.Username, cents, int64(result.Served), metadata, nil); err != nil {
		return fmt.Errorf("failed to write earnings for user %s: %w", result.UserID, err)
	}
	if _, err := a.nk.LeaderboardRecordWrite(ctx, LeaderboardReputation, result.UserID, result.Username, int64(result.Reputation), int64(result.Day), nil, nil); err != nil {
		return fmt.Errorf("failed to write reputation for user %s: %w", result.UserID, err)
	}
	return nil
}

// createLeaderboards makes sure both boards exist. Creating an existing board is a no-op.
func createLeaderboards(ctx context.Context, nk runtime.NakamaModule) error {
	boards := []struct {
		id       string
		operator string
	}{
		{LeaderboardDailyEarnings, "best"},
		{LeaderboardReputation, "set"},
	}
	for _, b := range boards {
		if err := nk.LeaderboardCreate(ctx, b.id, true, "desc", b.operator, "", nil, true); err != nil {
			return fmt.Errorf("failed to create leaderboard %s: %w", b.id, err)
		}
	}
	return nil
}

var _ ports.ScoreboardPort = (*NakamaLeaderboardAdapter)(nil)
