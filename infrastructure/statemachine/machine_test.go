package statemachine

import (
	"testing"

	"github.com/felixgeelhaar/explore-go/domain/agent"
	"github.com/felixgeelhaar/explore-go/domain/grid"
)

func newInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	machine, err := NewAgentMachine()
	if err != nil {
		t.Fatalf("NewAgentMachine(): %v", err)
	}
	a := agent.New(0, grid.Coord{X: 0, Y: 0})
	interp := NewInterpreter(machine, NewContext(a))
	interp.Start()
	return interp
}

func TestInterpreter_StartsIdle(t *testing.T) {
	interp := newInterpreter(t)
	if got := interp.State(); got != agent.StateIdle {
		t.Errorf("State() = %s, want idle", got)
	}
	if interp.IsTerminal() {
		t.Error("IsTerminal() = true at start")
	}
}

func TestInterpreter_TickCycle(t *testing.T) {
	interp := newInterpreter(t)

	steps := []agent.State{
		agent.StatePlanning,
		agent.StateMoving,
		agent.StateIdle,
		agent.StatePlanning,
		agent.StateWaiting,
		agent.StatePlanning,
		agent.StateMoving,
		agent.StateIdle,
	}
	for _, to := range steps {
		if err := interp.Transition(to, "tick"); err != nil {
			t.Fatalf("Transition(%s): %v", to, err)
		}
		if got := interp.State(); got != to {
			t.Fatalf("State() = %s, want %s", got, to)
		}
		if got := interp.Context().Agent.State; got != to {
			t.Fatalf("agent state = %s, want %s (context out of sync)", got, to)
		}
	}
}

func TestInterpreter_WaitingResumesPlanning(t *testing.T) {
	interp := newInterpreter(t)
	for _, to := range []agent.State{agent.StatePlanning, agent.StateWaiting} {
		if err := interp.Transition(to, ""); err != nil {
			t.Fatal(err)
		}
	}

	// The next tick re-requests a path directly from waiting.
	if err := interp.Transition(agent.StatePlanning, "retry"); err != nil {
		t.Fatalf("waiting -> planning: %v", err)
	}
}

func TestInterpreter_DoneIsTerminal(t *testing.T) {
	interp := newInterpreter(t)
	if err := interp.Transition(agent.StateDone, "coverage complete"); err != nil {
		t.Fatal(err)
	}
	if !interp.IsTerminal() {
		t.Error("IsTerminal() = false in done")
	}
	if err := interp.Transition(agent.StatePlanning, ""); err == nil {
		t.Error("Transition out of done succeeded, want error")
	}
}

func TestInterpreter_InvalidTransition(t *testing.T) {
	interp := newInterpreter(t)
	// moving is not reachable directly from idle.
	if err := interp.Transition(agent.StateMoving, ""); err == nil {
		t.Error("idle -> moving succeeded, want error")
	}
	if got := interp.State(); got != agent.StateIdle {
		t.Errorf("State() = %s after rejected transition, want idle", got)
	}
}

func TestEventForTransition_RoundTrip(t *testing.T) {
	for _, s := range agent.AllStates() {
		ev := EventForTransition(s)
		if got := stateFromEventType(ev); got != s {
			t.Errorf("stateFromEventType(EventForTransition(%s)) = %s", s, got)
		}
	}
}
