package nakama

import (
	"context"
	"errors"
	"testing"

	"chillista/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

type recordWrite struct {
	id, owner, username string
	score, subscore     int64
	metadata            map[string]interface{}
}

type boardCreate struct {
	id, sortOrder, operator string
	authoritative, ranks    bool
}

// leaderboardNK implements only the leaderboard calls; anything else panics.
type leaderboardNK struct {
	runtime.NakamaModule
	writes   []recordWrite
	creates  []boardCreate
	writeErr error
}

func (f *leaderboardNK) LeaderboardRecordWrite(ctx context.Context, id, ownerID, username string, score, subscore int64, metadata map[string]interface{}, overrideOperator *int) (*api.LeaderboardRecord, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.writes = append(f.writes, recordWrite{id: id, owner: ownerID, username: username, score: score, subscore: subscore, metadata: metadata})
	return &api.LeaderboardRecord{LeaderboardId: id, OwnerId: ownerID}, nil
}

func (f *leaderboardNK) LeaderboardCreate(ctx context.Context, id string, authoritative bool, sortOrder, operator, resetSchedule string, metadata map[string]interface{}, enableRanks bool) error {
	f.creates = append(f.creates, boardCreate{id: id, sortOrder: sortOrder, operator: operator, authoritative: authoritative, ranks: enableRanks})
	return nil
}

func TestLeaderboardAdapter_RecordDay(t *testing.T) {
	nk := &leaderboardNK{}
	adapter := NewNakamaLeaderboardAdapter(nk)

	err := adapter.RecordDay(context.Background(), ports.DayResult{
		UserID: "u1", Username: "CozyBean1234", Day: 4, Earnings: 12.34, Served: 7, Reputation: 18,
	})
	if err != nil {
		t.Fatalf("record day: %v", err)
	}
	if len(nk.writes) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(nk.writes))
	}

	earnings := nk.writes[0]
	if earnings.id != LeaderboardDailyEarnings || earnings.owner != "u1" || earnings.username != "CozyBean1234" {
		t.Fatalf("unexpected earnings write %+v", earnings)
	}
	if earnings.score != 1234 || earnings.subscore != 7 {
		t.Fatalf("earnings score/subscore = %d/%d, want 1234/7", earnings.score, earnings.subscore)
	}
	if earnings.metadata["day"] != 4 {
		t.Fatalf("earnings metadata = %v", earnings.metadata)
	}

	rep := nk.writes[1]
	if rep.id != LeaderboardReputation || rep.score != 18 || rep.subscore != 4 || rep.metadata != nil {
		t.Fatalf("unexpected reputation write %+v", rep)
	}
}

func TestLeaderboardAdapter_RecordDayError(t *testing.T) {
	nk := &leaderboardNK{writeErr: errors.New("db down")}
	err := NewNakamaLeaderboardAdapter(nk).RecordDay(context.Background(), ports.DayResult{UserID: "u1", Day: 1})
	if err == nil || !errors.Is(err, nk.writeErr) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestCreateLeaderboards(t *testing.T) {
	nk := &leaderboardNK{}
	if err := createLeaderboards(context.Background(), nk); err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []boardCreate{
		{id: LeaderboardDailyEarnings, sortOrder: "desc", operator: "best", authoritative: true, ranks: true},
		{id: LeaderboardReputation, sortOrder: "desc", operator: "set", authoritative: true, ranks: true},
	}
	if len(nk.creates) != len(want) {
		t.Fatalf("expected %d boards, got %d", len(want), len(nk.creates))
	}
	for i := range want {
		if nk.creates[i] != want[i] {
			t.Fatalf("board %d = %+v, want %+v", i, nk.creates[i], want[i])
		}
	}
}
