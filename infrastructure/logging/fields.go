package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/explore-go/domain/agent"
	"github.com/felixgeelhaar/explore-go/domain/grid"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// SessionID adds a session ID field.
func SessionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("session_id", id)
	}
}

// AgentIndex adds an agent index field.
func AgentIndex(index int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("agent", index)
	}
}

// Tick adds a tick number field.
func Tick(tick int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("tick", tick)
	}
}

// Position adds a grid coordinate field.
func Position(c grid.Coord) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("position", c.String())
	}
}

// Target adds a target coordinate field.
func Target(c grid.Coord) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("target", c.String())
	}
}

// PathLength adds a path length field.
func PathLength(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("path_length", n)
	}
}

// State adds an agent lifecycle state field.
func State(s agent.State) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("state", string(s))
	}
}

// Coverage adds a coverage ratio field.
func Coverage(ratio float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Float64("coverage", ratio)
	}
}

// Remaining adds an unvisited cell count field.
func Remaining(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("remaining", n)
	}
}

// Blocked adds a blocked flag field.
func Blocked(blocked bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("blocked", blocked)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Reason adds a reason field.
func Reason(reason string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", reason)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
