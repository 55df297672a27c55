package autopilot

import (
	"chillista/internal/app"
	"chillista/internal/domain"
)

// Agent is an autonomous barista running a cart.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Act asks the agent for its next command on the current state.
func (a *Agent) Act(st *domain.State) (app.Command, bool) {
	if st == nil {
		return app.Command{}, false
	}
	cmd, ok := a.Strategy.NextCommand(st)
	if ok && cmd.Kind == app.CmdStartGame && cmd.PlayerName == "" {
		cmd.PlayerName = a.Name
	}
	return cmd, ok
}

// OnGameEvents forwards committed events to the strategy.
func (a *Agent) OnGameEvents(events []app.Event) {
	for _, ev := range events {
		a.Strategy.OnEvent(ev)
	}
}
