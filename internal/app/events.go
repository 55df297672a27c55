package app

import "chillista/internal/domain"

// EventKind identifies emitted game events for the log, audio and render collaborators.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventCustomerArrived   EventKind = "customer_arrived"
	EventCustomerLeft      EventKind = "customer_left"
	EventBrewStep          EventKind = "brew_step"
	EventBrewTrashed       EventKind = "brew_trashed"
	EventModeSwitched      EventKind = "mode_switched"
	EventDrinkServed       EventKind = "drink_served"
	EventMishap            EventKind = "mishap"
	EventPurchase          EventKind = "purchase"
	EventUpgradeBought     EventKind = "upgrade_bought"
	EventDialogueOpened    EventKind = "dialogue_opened"
	EventDialogueResponse  EventKind = "dialogue_response"
	EventRelaxed           EventKind = "relaxed"
	EventDayEnded          EventKind = "day_ended"
	EventDayStarted        EventKind = "day_started"
	EventLocationChanged   EventKind = "location_changed"
	EventLocationUnlocked  EventKind = "location_unlocked"
	EventDarkModeUnlocked  EventKind = "dark_mode_unlocked"
	EventDarkModeToggled   EventKind = "dark_mode_toggled"
	EventStockAlert        EventKind = "stock_alert"
	EventSettingsChanged   EventKind = "settings_changed"
	EventDebugChanged      EventKind = "debug_changed"
	EventActionRejected    EventKind = "action_rejected"
	EventGameReset         EventKind = "game_reset"
	EventSaveFailed        EventKind = "save_failed"
	EventScoreboardUpdated EventKind = "scoreboard_updated"
)

// Tone colours a log line.
type Tone string

const (
	ToneSystem  Tone = "system"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Event is a game event. Message and Tone feed the game log, Sound names the
// cue for the audio collaborator, Payload carries typed data for rendering.
type Event struct {
	Kind    EventKind    `json:"kind"`
	Message string       `json:"message,omitempty"`
	Tone    Tone         `json:"tone,omitempty"`
	Sound   domain.Sound `json:"sound,omitempty"`
	Payload any          `json:"payload,omitempty"`
}

func logEvent(kind EventKind, tone Tone, sound domain.Sound, msg string) Event {
	return Event{Kind: kind, Tone: tone, Sound: sound, Message: msg}
}

type CustomerArrivedPayload struct {
	Customer domain.Customer `json:"customer"`
	Greeting string          `json:"greeting,omitempty"`
}

type CustomerLeftPayload struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Penalty    int    `json:"penalty"`
}

type BrewStepPayload struct {
	Mode   domain.Mode             `json:"mode"`
	Action domain.Action           `json:"action"`
	Step   int                     `json:"step"`
	Ready  bool                    `json:"ready"`
	Cost   map[domain.Resource]int `json:"cost,omitempty"`
}

type ModeSwitchedPayload struct {
	Mode domain.Mode `json:"mode"`
}

type DrinkServedPayload struct {
	Receipt domain.Receipt `json:"receipt"`
}

type PurchasePayload struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

type UpgradePayload struct {
	Upgrade domain.UpgradeDef `json:"upgrade"`
}

type DialogueOpenedPayload struct {
	Dialogue domain.Dialogue `json:"dialogue"`
}

type DialogueResponsePayload struct {
	Speaker  string   `json:"speaker"`
	Line     string   `json:"line"`
	Feedback []string `json:"feedback,omitempty"`
	Success  bool     `json:"success"`
	Income   float64  `json:"income,omitempty"`
}

type DayEndedPayload struct {
	Summary domain.DaySummary `json:"summary"`
}

type DayStartedPayload struct {
	Day     int            `json:"day"`
	Weather domain.Weather `json:"weather"`
}

type LocationPayload struct {
	Location domain.Location `json:"location"`
}

type StockAlertPayload struct {
	Resources []domain.Resource `json:"resources"`
}

type ActionRejectedPayload struct {
	Command CommandKind `json:"command"`
	Reason  string      `json:"reason"`
}
