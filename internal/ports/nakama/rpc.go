package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"chillista/internal/config"
	"chillista/internal/persist"
	"chillista/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// newSaveStore is swapped in tests that run without a Nakama module.
var newSaveStore = func(nk runtime.NakamaModule) ports.SaveStore {
	return NewNakamaSaveAdapter(nk)
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcOpenCart:  rpcOpenCart,
		RpcLoadSave:  rpcLoadSave,
		RpcResetSave: rpcResetSave,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

// LoadSaveResponse is returned by load_save.
type LoadSaveResponse struct {
	Found   bool            `json:"found"`
	State   json.RawMessage `json:"state,omitempty"`
	SavedAt int64           `json:"savedAt,omitempty"`
}

func callerID(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}
	return userID, nil
}

// rpcLoadSave returns the caller's decoded save, already merged over defaults.
func rpcLoadSave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	resp := LoadSaveResponse{}
	blob, err := newSaveStore(nk).LoadSave(ctx, userID)
	switch {
	case errors.Is(err, ports.ErrSaveNotFound):
	case err != nil:
		logger.Error("rpcLoadSave [User:%s]: %v", userID, err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	default:
		st, savedAt, decodeErr := persist.Decode(blob, config.Tuning())
		if decodeErr != nil {
			logger.Warn("rpcLoadSave [User:%s]: Unusable save: %v", userID, decodeErr)
			break
		}
		raw, err := json.Marshal(st)
		if err != nil {
			return "", runtime.NewError("Internal error", 13)
		}
		resp = LoadSaveResponse{Found: true, State: raw, SavedAt: savedAt.UnixMilli()}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}

// rpcResetSave deletes the caller's save and tells a running cart to start over.
func rpcResetSave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	if err := newSaveStore(nk).DeleteSave(ctx, userID); err != nil {
		logger.Error("rpcResetSave [User:%s]: %v", userID, err)
		return "", runtime.NewError("Internal error", 13)
	}

	if nk != nil {
		matchID, err := findCart(ctx, nk, userID)
		if err != nil {
			logger.Warn("rpcResetSave [User:%s]: Could not look up live cart: %v", userID, err)
		} else if matchID != "" {
			if _, err := nk.MatchSignal(ctx, matchID, MatchSignalReset); err != nil {
				logger.Warn("rpcResetSave [User:%s]: Reset signal failed: %v", userID, err)
			}
		}
	}

	logger.Info("rpcResetSave [User:%s]: Save reset", userID)
	return `{"reset":true}`, nil
}
