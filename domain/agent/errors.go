package agent

import "errors"

// Domain errors for the agent lifecycle.
var (
	// ErrInvalidState indicates the state is not a recognized canonical state.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidTransition indicates an attempted state transition is not allowed.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrAgentDone indicates an operation was attempted on a finished agent.
	ErrAgentDone = errors.New("agent already done")
)
