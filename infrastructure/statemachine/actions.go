package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/explore-go/domain/agent"
)

// TransitionPayload carries the target state and a reason with an event.
type TransitionPayload struct {
	ToState agent.State
	Reason  string
}

// recordState syncs the agent's domain state with the machine.
// In statekit, actions receive a pointer to the context; since our context is
// *Context, actions receive **Context.
func recordState(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Agent == nil {
		return
	}

	var to agent.State
	if payload, ok := event.Payload.(TransitionPayload); ok {
		to = payload.ToState
	} else {
		to = stateFromEventType(event.Type)
	}
	if to != "" {
		(*ctx).Agent.State = to
	}
}

// guardNotDone blocks transitions out of a finished agent.
// Guards receive the context by value, so *Context directly.
func guardNotDone(ctx *Context, _ statekit.Event) bool {
	if ctx == nil || ctx.Agent == nil {
		return false
	}
	return !ctx.Agent.State.IsTerminal()
}

// stateFromEventType derives the target state from an event type.
func stateFromEventType(eventType statekit.EventType) agent.State {
	switch eventType {
	case "IDLE":
		return agent.StateIdle
	case "PLAN":
		return agent.StatePlanning
	case "MOVE":
		return agent.StateMoving
	case "WAIT":
		return agent.StateWaiting
	case "DONE":
		return agent.StateDone
	default:
		return agent.State(eventType)
	}
}
