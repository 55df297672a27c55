package nakama

import (
	"context"
	"database/sql"

	"chillista/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks, leaderboards and the cart match for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	loadConfig(ctx, logger)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameCart, NewMatch); err != nil {
		return err
	}

	if err := createLeaderboards(ctx, nk); err != nil {
		return err
	}

	logger.Info("Chillista Go module loaded.")
	return nil
}

// loadConfig applies the optional config file and runtime env overrides.
// It runs once from InitModule; matches only read the result.
func loadConfig(ctx context.Context, logger runtime.Logger) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if path := env[config.EnvConfigPath]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			logger.Warn("Could not load game config %s: %v", path, err)
		}
	}
	if err := config.ApplyEnv(env); err != nil {
		logger.Warn("Ignoring invalid config env: %v", err)
	}
}
