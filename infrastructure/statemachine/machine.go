// Package statemachine provides the statekit integration for the per-agent
// exploration lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/explore-go/domain/agent"
)

// Context carries agent state through the state machine.
type Context struct {
	Agent       *agent.Agent
	Transitions *agent.Transitions
}

// NewContext creates a new machine context for an agent.
func NewContext(a *agent.Agent) *Context {
	return &Context{
		Agent:       a,
		Transitions: agent.DefaultTransitions(),
	}
}

// State IDs as StateID type for statekit.
const (
	stateIdle     statekit.StateID = statekit.StateID(agent.StateIdle)
	statePlanning statekit.StateID = statekit.StateID(agent.StatePlanning)
	stateMoving   statekit.StateID = statekit.StateID(agent.StateMoving)
	stateWaiting  statekit.StateID = statekit.StateID(agent.StateWaiting)
	stateDone     statekit.StateID = statekit.StateID(agent.StateDone)
)

// NewAgentMachine creates the canonical agent lifecycle statechart.
//
// One tick drives idle → planning → (moving | waiting) → idle. A blocked
// path lands in waiting, which resumes planning on the next tick; done is
// final and entered when coverage completes or no unvisited cell remains
// reachable for the agent.
func NewAgentMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("explorer").
		WithInitial(stateIdle).
		WithContext(&Context{}).
		WithAction("recordState", recordState).
		WithGuard("notDone", guardNotDone).
		State(stateIdle).
		On("PLAN").Target(statePlanning).Guard("notDone").Do("recordState").
		On("DONE").Target(stateDone).Do("recordState").
		Done().
		State(statePlanning).
		On("MOVE").Target(stateMoving).Do("recordState").
		On("WAIT").Target(stateWaiting).Do("recordState").
		On("DONE").Target(stateDone).Do("recordState").
		Done().
		State(stateMoving).
		On("IDLE").Target(stateIdle).Do("recordState").
		On("DONE").Target(stateDone).Do("recordState").
		Done().
		State(stateWaiting).
		On("PLAN").Target(statePlanning).Do("recordState").
		On("IDLE").Target(stateIdle).Do("recordState").
		On("DONE").Target(stateDone).Do("recordState").
		Done().
		State(stateDone).
		Final().
		Done().
		Build()
}

// EventForTransition returns the event type for a state transition.
func EventForTransition(to agent.State) statekit.EventType {
	switch to {
	case agent.StateIdle:
		return "IDLE"
	case agent.StatePlanning:
		return "PLAN"
	case agent.StateMoving:
		return "MOVE"
	case agent.StateWaiting:
		return "WAIT"
	case agent.StateDone:
		return "DONE"
	default:
		return statekit.EventType(to)
	}
}

// StateFromMachine converts the machine state ID to the domain State.
func StateFromMachine(stateID statekit.StateID) agent.State {
	return agent.State(stateID)
}
