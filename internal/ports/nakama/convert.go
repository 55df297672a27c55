package nakama

import (
	"encoding/json"
	"fmt"

	"chillista/internal/app"
	"chillista/internal/domain"
)

var opCommands = map[int64]app.CommandKind{
	OpBrew:        app.CmdBrew,
	OpSwitchMode:  app.CmdSwitchMode,
	OpServe:       app.CmdServe,
	OpTrash:       app.CmdTrash,
	OpBuy:         app.CmdBuy,
	OpBuyUpgrade:  app.CmdBuyUpgrade,
	OpTalk:        app.CmdTalk,
	OpChoose:      app.CmdChoose,
	OpRelax:       app.CmdRelax,
	OpNewDay:      app.CmdNewDay,
	OpTravel:      app.CmdTravel,
	OpSettings:    app.CmdSettings,
	OpDebug:       app.CmdDebug,
	OpSmallTalk:   app.CmdSmallTalk,
	OpUpsell:      app.CmdUpsell,
	OpStartGame:   app.CmdStartGame,
	OpSetDarkMode: app.CmdDarkMode,
}

// commandFromMessage decodes a client payload into a command. The op code
// decides the command kind; the JSON body only carries its arguments.
func commandFromMessage(opCode int64, data []byte) (app.Command, error) {
	kind, ok := opCommands[opCode]
	if !ok {
		return app.Command{}, fmt.Errorf("unknown op code %d", opCode)
	}
	var cmd app.Command
	if len(data) > 0 {
		if err := json.Unmarshal(data, &cmd); err != nil {
			return app.Command{}, fmt.Errorf("invalid payload for op %d: %w", opCode, err)
		}
	}
	cmd.Kind = kind
	return cmd, nil
}

// snapshotPayload is what clients render from.
type snapshotPayload struct {
	State     *domain.State `json:"state"`
	Paused    bool          `json:"paused"`
	TimeOfDay string        `json:"timeOfDay"`
}

type errorPayload struct {
	Op      int64  `json:"op"`
	Message string `json:"message"`
}

func encodeSnapshot(st *domain.State, paused bool, t domain.Tuning) ([]byte, error) {
	return json.Marshal(snapshotPayload{State: st, Paused: paused, TimeOfDay: st.TimeOfDay(t)})
}
