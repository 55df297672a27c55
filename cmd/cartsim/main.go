// Command cartsim runs the coffee cart headless with an autopilot barista
// and a local JSON save, either as fast as possible or against the wall clock.
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"chillista/internal/app"
	"chillista/internal/autopilot"
	"chillista/internal/config"
	"chillista/internal/domain"
	"chillista/internal/logging"
	"chillista/internal/persist"
	"chillista/internal/session"
)

// Environment keys read from the process env or the .env file.
const (
	envLogLevel = "CARTSIM_LOG_LEVEL"
	envSaveDir  = "CARTSIM_SAVE_DIR"
)

type options struct {
	envFile    string
	configPath string
	saveDir    string
	userID     string
	name       string
	strategy   string
	days       int
	seed       int64
	realtime   bool
	minute     time.Duration
	fresh      bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.envFile, "env", ".env", "optional .env file")
	flag.StringVar(&opts.configPath, "config", "", "game config (.json or .yaml)")
	flag.StringVar(&opts.saveDir, "saves", "", "directory holding save files")
	flag.StringVar(&opts.userID, "user", "local", "save slot")
	flag.StringVar(&opts.name, "name", "", "barista name (random when empty)")
	flag.StringVar(&opts.strategy, "strategy", "careful", "autopilot strategy: steady or careful")
	flag.IntVar(&opts.days, "days", 3, "business days to play")
	flag.Int64Var(&opts.seed, "seed", 0, "rng seed (0 seeds from the clock)")
	flag.BoolVar(&opts.realtime, "realtime", false, "run against the wall clock")
	flag.DurationVar(&opts.minute, "minute", 250*time.Millisecond, "wall time per game minute in realtime mode")
	flag.BoolVar(&opts.fresh, "fresh", false, "discard the existing save")
	flag.Parse()

	env := loadEnv(opts.envFile)
	log := logging.GetLoggerConfigured(logging.ParseLevel(env[envLogLevel]))

	if err := run(opts, env, *log); err != nil {
		log.Fatal().Err(err).Msg("cartsim failed")
	}
}

// loadEnv merges the .env file under the process environment.
func loadEnv(path string) map[string]string {
	env, err := godotenv.Read(path)
	if err != nil {
		env = map[string]string{}
	}
	for _, key := range []string{envLogLevel, envSaveDir, config.EnvConfigPath, config.EnvTickRate, config.EnvAutosave} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

func run(opts options, env map[string]string, log zerolog.Logger) error {
	if opts.configPath == "" {
		opts.configPath = env[config.EnvConfigPath]
	}
	if opts.configPath != "" {
		if err := config.LoadGameConfig(opts.configPath); err != nil {
			return err
		}
	}
	if err := config.ApplyEnv(env); err != nil {
		return err
	}
	if opts.saveDir == "" {
		opts.saveDir = env[envSaveDir]
	}
	if opts.saveDir == "" {
		opts.saveDir = ".cartsim"
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	level, ok := autopilot.ParseLevel(opts.strategy)
	if !ok {
		return errors.New("unknown strategy " + strconv.Quote(opts.strategy))
	}
	agent, err := autopilot.NewAgent(opts.name, level)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saves, err := persist.NewFileStore(opts.saveDir)
	if err != nil {
		return err
	}
	if opts.fresh {
		if err := saves.DeleteSave(ctx, opts.userID); err != nil {
			return err
		}
	}

	runID := uuid.NewString()
	log = log.With().Str("run", runID).Str("barista", agent.Name).Logger()
	scores := newLocalScoreboard(log)

	svc := app.NewService(rand.New(rand.NewSource(opts.seed)), config.Tuning())
	sess, err := session.Open(ctx, svc, saves, scores, logging.NewRuntimeLogger(log), session.Options{
		UserID:        opts.userID,
		Username:      agent.Name,
		AutosaveEvery: config.AutosaveEveryTicks(),
	})
	if err != nil {
		return err
	}
	sess.Subscribe(func(_ *domain.State, events []app.Event) { agent.OnGameEvents(events) })

	sim := &simulator{sess: sess, agent: agent, log: log, days: opts.days}
	log.Info().Int64("seed", opts.seed).Str("strategy", level.String()).Int("days", opts.days).Bool("realtime", opts.realtime).Msg("Cart open")

	if opts.realtime {
		err = sim.runRealtime(ctx, opts.minute)
	} else {
		err = sim.runFast(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// The run context may already be cancelled; the final save must still land.
	if err := sess.Save(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Final save failed")
	}
	sim.summary()
	return nil
}
