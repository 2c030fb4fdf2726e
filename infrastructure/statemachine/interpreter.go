package statemachine

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/explore-go/domain/agent"
)

// Interpreter wraps the statekit interpreter with agent-specific helpers.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the agent lifecycle machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start initializes the interpreter and enters the initial state.
func (i *Interpreter) Start() {
	i.interp.Start()
	state := i.interp.State()
	i.ctx.Agent.State = agent.State(state.Value)
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// State returns the current state.
func (i *Interpreter) State() agent.State {
	state := i.interp.State()
	return agent.State(state.Value)
}

// Transition attempts to transition to the target state.
func (i *Interpreter) Transition(to agent.State, reason string) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %s", agent.ErrInvalidState, to)
	}
	if i.State().IsTerminal() {
		return fmt.Errorf("%w: agent %d", agent.ErrAgentDone, i.ctx.Agent.Index)
	}
	if !i.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", agent.ErrInvalidTransition, i.State(), to)
	}

	i.interp.Send(statekit.Event{
		Type: EventForTransition(to),
		Payload: TransitionPayload{
			ToState: to,
			Reason:  reason,
		},
	})

	newState := i.interp.State()
	got := agent.State(newState.Value)
	i.ctx.Agent.State = got
	if got != to {
		return fmt.Errorf("%w: %s -> %s", agent.ErrInvalidTransition, got, to)
	}
	return nil
}

// CanTransition checks if a transition to the target state is allowed.
func (i *Interpreter) CanTransition(to agent.State) bool {
	return i.ctx.Transitions.CanTransition(i.State(), to)
}

// IsTerminal returns true if the interpreter reached the final state.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Matches checks if the current state matches the given state ID.
func (i *Interpreter) Matches(stateID string) bool {
	return i.interp.Matches(statekit.StateID(stateID))
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}
