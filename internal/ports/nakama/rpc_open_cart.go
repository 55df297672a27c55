package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// OpenCartResponse is the payload returned to clients opening their cart.
type OpenCartResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func cartQuery(userID string) string {
	return fmt.Sprintf("+label.game:%s +label.owner:%q", MatchLabelGame, userID)
}

// findCart returns the id of the user's running cart match, or "" when there is none.
func findCart(ctx context.Context, nk runtime.NakamaModule, userID string) (string, error) {
	minSize := 0
	maxSize := 1
	matches, err := nk.MatchList(ctx, 1, true, "", &minSize, &maxSize, cartQuery(userID))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].MatchId, nil
}

func rpcOpenCart(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	username, _ := ctx.Value(runtime.RUNTIME_CTX_USERNAME).(string)

	matchID, err := findCart(ctx, nk, userID)
	if err != nil {
		logger.Error("rpcOpenCart [User:%s]: MatchList error: %v", userID, err)
		return "", runtime.NewError("Internal error", 13)
	}
	resp := OpenCartResponse{MatchID: matchID}

	if matchID == "" {
		// Save loading happens in MatchInit.
		matchID, err = nk.MatchCreate(ctx, MatchNameCart, map[string]interface{}{
			MatchParamOwner:    userID,
			MatchParamUsername: username,
		})
		if err != nil {
			logger.Error("rpcOpenCart [User:%s]: MatchCreate error: %v", userID, err)
			return "", runtime.NewError("Internal error", 13)
		}
		resp = OpenCartResponse{MatchID: matchID, IsNew: true}
		logger.Info("rpcOpenCart [User:%s]: Created cart %s", userID, matchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
