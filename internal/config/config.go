package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"chillista/internal/domain"
)

// GameConfig is the server-side configuration of the cart simulation.
// Tuning fields left out of the file keep their DefaultTuning values.
type GameConfig struct {
	// TickRate is how many match ticks Nakama runs per second; each tick is one simulated minute.
	TickRate int `json:"tick_rate" yaml:"tick_rate"`
	// AutosaveEveryTicks saves the live cart every N ticks on top of saves after key actions.
	AutosaveEveryTicks int `json:"autosave_every_ticks" yaml:"autosave_every_ticks"`
	// IdleTerminateSeconds ends a match whose owner has been gone this long.
	IdleTerminateSeconds int `json:"idle_terminate_seconds" yaml:"idle_terminate_seconds"`

	Tuning domain.Tuning `json:"tuning" yaml:"tuning"`
}

// Runtime environment keys that override file values.
const (
	EnvConfigPath = "chillista_config_path"
	EnvTickRate   = "chillista_tick_rate"
	EnvAutosave   = "chillista_autosave_ticks"
)

const (
	defaultTickRate             = 1
	defaultAutosaveEveryTicks   = 30
	defaultIdleTerminateSeconds = 30
)

var (
	mu       sync.RWMutex
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

func current() *GameConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func set(c *GameConfig) {
	mu.Lock()
	cfg = c
	mu.Unlock()
}

// Default returns the configuration used when no file is provided.
func Default() GameConfig {
	return GameConfig{
		TickRate:             defaultTickRate,
		AutosaveEveryTicks:   defaultAutosaveEveryTicks,
		IdleTerminateSeconds: defaultIdleTerminateSeconds,
		Tuning:               domain.DefaultTuning,
	}
}

// ParseGameConfig decodes data as YAML when format is "yaml"/"yml" and as
// JSON otherwise, starting from Default so partial files are fine.
func ParseGameConfig(data []byte, format string) (*GameConfig, error) {
	c := Default()
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml game config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the simulation cannot run with.
func (c *GameConfig) Validate() error {
	switch {
	case c.TickRate < 1 || c.TickRate > 60:
		return fmt.Errorf("tick_rate must be within 1..60, got %d", c.TickRate)
	case c.AutosaveEveryTicks < 0:
		return fmt.Errorf("autosave_every_ticks must not be negative")
	case c.Tuning.DayLengthMinutes <= 0:
		return fmt.Errorf("tuning.day_length_minutes must be positive")
	case c.Tuning.BasePrice < 0:
		return fmt.Errorf("tuning.base_price must not be negative")
	}
	return nil
}

// LoadGameConfig loads the game configuration from the given path once.
// The file extension selects YAML or JSON.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c, err := ParseGameConfig(data, filepath.Ext(path))
		if err != nil {
			loadErr = err
			return
		}
		set(c)
	})
	return loadErr
}

// GetGameConfig returns a copy of the global game configuration, or nil before a successful load.
func GetGameConfig() *GameConfig {
	c := current()
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Tuning returns the loaded tuning, or DefaultTuning when nothing was loaded.
func Tuning() domain.Tuning {
	cfg := current()
	if cfg == nil {
		return domain.DefaultTuning
	}
	return cfg.Tuning
}

// TickRate returns the configured match tick rate with a safe default.
func TickRate() int {
	cfg := current()
	if cfg == nil || cfg.TickRate <= 0 {
		return defaultTickRate
	}
	return cfg.TickRate
}

// AutosaveEveryTicks returns the periodic autosave interval with a safe default.
func AutosaveEveryTicks() int {
	cfg := current()
	if cfg == nil {
		return defaultAutosaveEveryTicks
	}
	return cfg.AutosaveEveryTicks
}

// IdleTerminateSeconds returns how long an ownerless match lingers.
func IdleTerminateSeconds() int {
	cfg := current()
	if cfg == nil || cfg.IdleTerminateSeconds <= 0 {
		return defaultIdleTerminateSeconds
	}
	return cfg.IdleTerminateSeconds
}

// ApplyEnv overrides the tick rate and autosave interval from runtime
// environment values. Missing keys are ignored. The read and the replace
// happen under one lock so concurrent callers never interleave.
func ApplyEnv(env map[string]string) error {
	mu.Lock()
	defer mu.Unlock()

	c := Default()
	if cfg != nil {
		c = *cfg
	}
	if v, ok := env[EnvTickRate]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTickRate, v, err)
		}
		c.TickRate = n
	}
	if v, ok := env[EnvAutosave]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAutosave, v, err)
		}
		c.AutosaveEveryTicks = n
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = &c
	return nil
}
