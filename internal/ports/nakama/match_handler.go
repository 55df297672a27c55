package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"chillista/internal/app"
	"chillista/internal/config"
	"chillista/internal/domain"
	"chillista/internal/session"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	MatchParamOwner    = "owner"    // User id of the cart owner, set by open_cart
	MatchParamUsername = "username" // Owner username used on leaderboards
)

// MatchState holds the authoritative runtime state for one player's cart.
type MatchState struct {
	OwnerID   string           `json:"owner_id"`   // Only this user may join
	Owner     runtime.Presence `json:"-"`          // Current owner presence, nil while away
	Session   *session.Session `json:"-"`          // Live cart
	Tuning    domain.Tuning    `json:"-"`          // Numbers the cart runs with
	Tick      int64            `json:"tick"`       // Current match tick
	IdleSince int64            `json:"idle_since"` // Tick the owner left at; 0 while present
	IdleLimit int64            `json:"idle_limit"` // Ticks without an owner before the match ends
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// buildLabel renders the match label queried by open_cart.
func buildLabel(ownerID string) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":  MatchLabelGame,
		"owner": ownerID,
		"open":  false,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MatchInit is called when the match is created. It loads the owner's save.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	ownerID, _ := params[MatchParamOwner].(string)
	username, _ := params[MatchParamUsername].(string)
	if ownerID == "" {
		logger.Error("MatchInit: Missing owner param.")
		return nil, 0, ""
	}
	logger = logger.WithField("owner", ownerID)

	tuning := config.Tuning()
	tickRate := config.TickRate()

	svc := app.NewService(nil, tuning)
	sess, err := session.Open(ctx, svc, NewNakamaSaveAdapter(nk), NewNakamaLeaderboardAdapter(nk), logger, session.Options{
		UserID:        ownerID,
		Username:      username,
		AutosaveEvery: config.AutosaveEveryTicks(),
	})
	if err != nil {
		logger.Error("MatchInit: Failed to open cart: %v", err)
		return nil, 0, ""
	}

	label, err := buildLabel(ownerID)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	state := &MatchState{
		OwnerID:   ownerID,
		Session:   sess,
		Tuning:    tuning,
		IdleLimit: int64(config.IdleTerminateSeconds() * tickRate),
	}
	logger.Debug("MatchInit: Cart ready at %d ticks per second.", tickRate)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if presence.GetUserId() != matchState.OwnerID {
		return state, false, "This cart belongs to someone else"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() != matchState.OwnerID {
			continue
		}
		matchState.Owner = p
		matchState.IdleSince = 0
		logger.Debug("MatchJoin: Owner %s is back at the cart.", p.GetUserId())
	}

	mh.sendSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave saves the cart when its owner leaves. The match lingers for
// IdleLimit ticks so a reconnect picks up the same cart.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.Owner == nil || p.GetSessionId() != matchState.Owner.GetSessionId() {
			continue
		}
		matchState.Owner = nil
		matchState.IdleSince = tick
		if err := matchState.Session.Save(ctx); err != nil {
			logger.Warn("MatchLeave: Save failed: %v", err)
		}
		logger.Debug("MatchLeave: Owner left, cart saved.")
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		if msg.GetUserId() != matchState.OwnerID {
			logger.Warn("MatchLoop: Ignoring message from non-owner %s", msg.GetUserId())
			continue
		}
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	if matchState.Owner == nil {
		if matchState.IdleLimit > 0 && tick-matchState.IdleSince >= matchState.IdleLimit {
			logger.Info("MatchLoop: Owner gone for %d ticks, closing cart.", tick-matchState.IdleSince)
			return nil
		}
		return matchState
	}

	if matchState.Session.Paused() {
		return matchState
	}
	events := matchState.Session.Tick(ctx)
	mh.broadcastEvents(matchState, dispatcher, logger, events)
	mh.sendSnapshot(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	switch msg.GetOpCode() {
	case OpPause:
		state.Session.Pause()
	case OpResume:
		state.Session.Resume()
	case OpSave:
		if err := state.Session.Save(ctx); err != nil {
			mh.sendError(state, dispatcher, logger, msg.GetOpCode(), "Save failed, please try again.")
			return
		}
	default:
		cmd, err := commandFromMessage(msg.GetOpCode(), msg.GetData())
		if err != nil {
			logger.Warn("MatchLoop: %v", err)
			mh.sendError(state, dispatcher, logger, msg.GetOpCode(), "Unrecognised request.")
			return
		}
		events, err := state.Session.Handle(ctx, cmd)
		if err != nil {
			mh.sendError(state, dispatcher, logger, msg.GetOpCode(), app.RejectionMessage(err))
			return
		}
		mh.broadcastEvents(state, dispatcher, logger, events)
	}
	mh.sendSnapshot(state, dispatcher, logger)
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	if err := matchState.Session.Save(ctx); err != nil {
		logger.Error("MatchTerminate: Final save failed: %v", err)
	}
	return matchState
}

// MatchSignal handles out-of-band requests from RPCs.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, "state not found"
	}
	if data != MatchSignalReset {
		return matchState, "unknown signal"
	}

	events, err := matchState.Session.Reset(ctx)
	if err != nil {
		logger.Error("MatchSignal: Reset failed: %v", err)
		return matchState, err.Error()
	}
	mh.broadcastEvents(matchState, dispatcher, logger, events)
	mh.sendSnapshot(matchState, dispatcher, logger)
	return matchState, "ok"
}

func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, data []byte) {
	if state.Owner == nil {
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{state.Owner}, nil, true); err != nil {
		logger.Warn("Failed to send op %d: %v", opCode, err)
	}
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := encodeSnapshot(state.Session.State(), state.Session.Paused(), state.Tuning)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpStateSnapshot, data)
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			logger.Error("Failed to marshal event %s: %v", ev.Kind, err)
			continue
		}
		mh.send(state, dispatcher, logger, OpEvent, data)
	}
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, message string) {
	data, err := json.Marshal(errorPayload{Op: opCode, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpError, data)
}
