package app

import "chillista/internal/domain"

// CommandKind tags a player (or clock) intent.
type CommandKind string

const (
	CmdTick       CommandKind = "tick"
	CmdStartGame  CommandKind = "start_game"
	CmdBrew       CommandKind = "brew"
	CmdSwitchMode CommandKind = "switch_mode"
	CmdServe      CommandKind = "serve"
	CmdTrash      CommandKind = "trash"
	CmdBuy        CommandKind = "buy"
	CmdBuyUpgrade CommandKind = "buy_upgrade"
	CmdTalk       CommandKind = "talk"
	CmdChoose     CommandKind = "choose"
	CmdSmallTalk  CommandKind = "small_talk"
	CmdUpsell     CommandKind = "upsell"
	CmdRelax      CommandKind = "relax"
	CmdNewDay     CommandKind = "new_day"
	CmdTravel     CommandKind = "travel"
	CmdSettings   CommandKind = "settings"
	CmdDebug      CommandKind = "debug"
	CmdDarkMode   CommandKind = "dark_mode"
)

// DebugOp names a developer command.
type DebugOp string

const (
	DebugToggle         DebugOp = "toggle"
	DebugToggleWeather  DebugOp = "toggle_weather"
	DebugToggleArrivals DebugOp = "toggle_arrivals"
	DebugTogglePause    DebugOp = "toggle_pause"
	DebugToggleInfinite DebugOp = "toggle_infinite"
	DebugCycleSpeed     DebugOp = "cycle_speed"
	DebugAddCash        DebugOp = "add_cash"
	DebugAddReputation  DebugOp = "add_reputation"
	DebugSpawnCustomer  DebugOp = "spawn_customer"
	DebugForceWeather   DebugOp = "force_weather"
	DebugSkipToDayEnd   DebugOp = "skip_to_day_end"
)

// debugCashGrant is added by DebugAddCash when no amount is given.
const debugCashGrant = 100.0

// SettingsPatch carries the settings fields to change; nil fields are kept.
type SettingsPatch struct {
	UIScale        *int `json:"uiScale,omitempty"`
	MusicVolume    *int `json:"musicVolume,omitempty"`
	SfxVolume      *int `json:"sfxVolume,omitempty"`
	AmbienceVolume *int `json:"ambienceVolume,omitempty"`
}

// Command is a tagged intent. Only the fields relevant to Kind are read.
type Command struct {
	Kind       CommandKind      `json:"kind"`
	Action     domain.Action    `json:"action,omitempty"`
	Bean       domain.BeanType  `json:"bean,omitempty"`
	Mode       domain.Mode      `json:"mode,omitempty"`
	Item       string           `json:"item,omitempty"`
	Quantity   int              `json:"quantity,omitempty"`
	Upgrade    string           `json:"upgrade,omitempty"`
	Choice     int              `json:"choice,omitempty"`
	Location   domain.Location  `json:"location,omitempty"`
	PlayerName string           `json:"playerName,omitempty"`
	Enabled    bool             `json:"enabled,omitempty"`
	Settings   *SettingsPatch   `json:"settings,omitempty"`
	Debug      DebugOp          `json:"debug,omitempty"`
	Amount     float64          `json:"amount,omitempty"`
	Weather    domain.Weather   `json:"weather,omitempty"`
	Archetype  domain.Archetype `json:"archetype,omitempty"`
}

// Persistent reports whether the command changes something worth saving
// right away instead of waiting for the next periodic autosave.
func (c Command) Persistent() bool {
	switch c.Kind {
	case CmdStartGame, CmdBuy, CmdBuyUpgrade, CmdNewDay, CmdTravel, CmdSettings, CmdDebug, CmdDarkMode, CmdServe:
		return true
	default:
		return false
	}
}
