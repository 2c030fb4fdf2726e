// Package application provides the exploration session: the orchestrator
// that drives agents, planners, and dynamic obstacles tick by tick until the
// grid is covered or the remaining cells are unreachable.
package application

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/felixgeelhaar/explore-go/domain/agent"
	"github.com/felixgeelhaar/explore-go/domain/grid"
	"github.com/felixgeelhaar/explore-go/domain/run"
	"github.com/felixgeelhaar/explore-go/infrastructure/logging"
	"github.com/felixgeelhaar/explore-go/infrastructure/obstacle"
	"github.com/felixgeelhaar/explore-go/infrastructure/planner"
	"github.com/felixgeelhaar/explore-go/infrastructure/statemachine"
	"github.com/felixgeelhaar/explore-go/infrastructure/telemetry"
)

// Config contains configuration for a session.
type Config struct {
	// Scenario is a display name recorded on the run.
	Scenario string

	// Width and Height are the grid dimensions.
	Width  int
	Height int

	// StaticObstacles are fixed blocked cells.
	StaticObstacles []grid.Coord

	// AgentStarts are the start cells, one agent per entry.
	AgentStarts []grid.Coord

	// DynamicObstacleCount is the number of mobile obstacles.
	DynamicObstacleCount int

	// Seed drives obstacle randomness. Ignored when Rand is set.
	Seed int64

	// Rand overrides the seeded generator, mainly for tests.
	Rand *rand.Rand

	// Metrics receives session telemetry. Optional.
	Metrics *telemetry.MetricsProvider
}

// Session is one live exploration over a grid. It is not safe for concurrent
// use; the caller owns the tick loop.
type Session struct {
	cfg      Config
	grid     *grid.Grid
	agents   []*agent.Agent
	interps  []*statemachine.Interpreter
	frontier *planner.FrontierExplorer
	astar    *planner.ShortestPathFinder
	stepper  *obstacle.Stepper
	record   *run.Run

	tick    int
	moves   int
	waits   int
	stalled bool
}

// OutcomeKind classifies what a tick achieved.
type OutcomeKind int

const (
	// Progressed means at least one agent moved.
	Progressed OutcomeKind = iota
	// Waiting means every active agent was blocked this tick.
	Waiting
	// Complete means the grid is fully covered.
	Complete
	// Stalled means uncovered cells remain but no agent can ever reach one.
	Stalled
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case Progressed:
		return "progressed"
	case Waiting:
		return "waiting"
	case Complete:
		return "complete"
	case Stalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// AgentMove records one agent's committed path for a tick.
type AgentMove struct {
	Agent int          `json:"agent"`
	Path  []grid.Coord `json:"path"`
}

// TickOutcome reports the result of one tick.
type TickOutcome struct {
	Tick    int         `json:"tick"`
	Kind    OutcomeKind `json:"kind"`
	Moved   []AgentMove `json:"moved,omitempty"`
	Blocked []int       `json:"blocked,omitempty"`
}

// New creates a session from the given configuration. The grid is built,
// obstacles and agents are placed, and every agent starts idle.
func New(cfg Config) (*Session, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfiguration, cfg.Width, cfg.Height)
	}
	if len(cfg.AgentStarts) == 0 {
		return nil, fmt.Errorf("%w: no agent start positions", ErrInvalidConfiguration)
	}

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := g.PlaceStaticObstacles(cfg.StaticObstacles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	seen := make(map[grid.Coord]struct{}, len(cfg.AgentStarts))
	for i, start := range cfg.AgentStarts {
		if _, dup := seen[start]; dup {
			return nil, fmt.Errorf("%w: agent start %s used twice", ErrInvalidConfiguration, start)
		}
		seen[start] = struct{}{}
		if err := g.PlaceAgent(start); err != nil {
			return nil, fmt.Errorf("%w: agent %d start %s: %v", ErrInvalidConfiguration, i, start, err)
		}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	stepper := obstacle.NewStepper(g, rng)
	if err := stepper.Place(cfg.DynamicObstacleCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	machine, err := statemachine.NewAgentMachine()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	s := &Session{
		cfg:      cfg,
		grid:     g,
		frontier: planner.NewFrontierExplorer(g),
		astar:    planner.NewShortestPathFinder(g),
		stepper:  stepper,
		record: run.New(cfg.Scenario, cfg.Width, cfg.Height,
			len(cfg.AgentStarts), cfg.DynamicObstacleCount, cfg.Seed),
	}

	for i, start := range cfg.AgentStarts {
		a := agent.New(i, start)
		interp := statemachine.NewInterpreter(machine, statemachine.NewContext(a))
		interp.Start()
		s.agents = append(s.agents, a)
		s.interps = append(s.interps, interp)
	}

	logging.Info().
		Add(logging.SessionID(s.record.ID)).
		Add(logging.Str("scenario", cfg.Scenario)).
		Add(logging.Remaining(g.UnvisitedCount())).
		Msg("session created")
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.SessionStarted(context.Background(), s.record.ID, g.UnvisitedCount())
	}
	return s, nil
}

// Tick advances the session by one round: obstacles step first, then each
// agent plans and moves in index order. Returns ErrSessionFinished once the
// session has reached a terminal outcome.
func (s *Session) Tick(ctx context.Context) (TickOutcome, error) {
	if err := ctx.Err(); err != nil {
		return TickOutcome{}, err
	}
	if s.Finished() {
		return TickOutcome{}, ErrSessionFinished
	}

	started := time.Now()
	before := s.grid.UnvisitedCount()
	s.tick++
	outcome := TickOutcome{Tick: s.tick}

	s.stepper.Step()
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordObstacleStep(ctx, s.record.ID, s.stepper.Count())
	}

	for i, a := range s.agents {
		if s.interps[i].IsTerminal() {
			continue
		}
		if s.grid.IsComplete() {
			break
		}
		s.tickAgent(ctx, i, a, &outcome)
	}

	if s.grid.IsComplete() {
		s.finishAgents(ctx, "grid covered")
		outcome.Kind = Complete
		s.record.Complete()
	} else if s.allAgentsDone() {
		s.stalled = true
		outcome.Kind = Stalled
		s.record.Stall()
	} else if len(outcome.Moved) == 0 {
		outcome.Kind = Waiting
	} else {
		outcome.Kind = Progressed
	}

	s.syncRecord()
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordTick(ctx, s.record.ID, time.Since(started),
			s.grid.UnvisitedCount(), s.grid.UnvisitedCount()-before)
		if s.Finished() {
			s.cfg.Metrics.SessionEnded(ctx, s.record.ID)
		}
	}

	logging.Debug().
		Add(logging.SessionID(s.record.ID)).
		Add(logging.Tick(s.tick)).
		Add(logging.Str("outcome", outcome.Kind.String())).
		Add(logging.Remaining(s.grid.UnvisitedCount())).
		Msg("tick finished")
	return outcome, nil
}

// transition moves one agent's state machine and records the hop on the
// transition counter.
func (s *Session) transition(ctx context.Context, i int, to agent.State, reason string) error {
	from := s.interps[i].State()
	if err := s.interps[i].Transition(to, reason); err != nil {
		return err
	}
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordStateTransition(ctx, s.record.ID, i, string(from), string(to))
	}
	return nil
}

// tickAgent runs one agent through its lifecycle for this tick.
func (s *Session) tickAgent(ctx context.Context, i int, a *agent.Agent, outcome *TickOutcome) {
	if err := s.transition(ctx, i, agent.StatePlanning, "tick"); err != nil {
		logging.Warn().
			Add(logging.SessionID(s.record.ID)).
			Add(logging.AgentIndex(i)).
			Add(logging.ErrorField(err)).
			Msg("agent cannot start planning")
		return
	}

	path, plannerName := s.plan(ctx, a)

	if path == nil {
		if !s.staticallyReachable(a.Position) {
			_ = s.transition(ctx, i, agent.StateDone, "no reachable unvisited cell")
			logging.Info().
				Add(logging.SessionID(s.record.ID)).
				Add(logging.AgentIndex(i)).
				Add(logging.Position(a.Position)).
				Msg("agent retired")
			return
		}
		_ = s.transition(ctx, i, agent.StateWaiting, "path blocked by dynamic obstacle")
		s.waits++
		outcome.Blocked = append(outcome.Blocked, i)
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.RecordWait(ctx, s.record.ID, i)
		}
		logging.Debug().
			Add(logging.SessionID(s.record.ID)).
			Add(logging.AgentIndex(i)).
			Add(logging.Blocked(true)).
			Msg("agent blocked")
		return
	}

	_ = s.transition(ctx, i, agent.StateMoving, plannerName)
	s.applyMove(a, path)
	outcome.Moved = append(outcome.Moved, AgentMove{Agent: i, Path: path})
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordMove(ctx, s.record.ID, i)
	}
	_ = s.transition(ctx, i, agent.StateIdle, "move committed")

	logging.Debug().
		Add(logging.SessionID(s.record.ID)).
		Add(logging.AgentIndex(i)).
		Add(logging.PathLength(len(path))).
		Add(logging.Position(a.Position)).
		Msg("agent moved")
}

// plan picks a path for the agent: the direct shortest route when a single
// unvisited cell remains, the frontier search otherwise.
func (s *Session) plan(ctx context.Context, a *agent.Agent) ([]grid.Coord, string) {
	started := time.Now()

	var path []grid.Coord
	name := "frontier"
	if last, ok := s.grid.SingleUnvisited(); ok {
		name = "astar"
		path = s.astar.FindPath(a.Position, last)
	} else {
		path = s.frontier.FindPath(a.Position)
	}

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordPlanning(ctx, s.record.ID, name,
			path != nil, len(path), time.Since(started))
	}
	return path, name
}

// applyMove commits a full planned path in one tick: the agent traverses the
// intermediate cells, which show as retraced, and stops on the destination.
func (s *Session) applyMove(a *agent.Agent, path []grid.Coord) {
	from := a.Position
	dest := path[len(path)-1]

	s.grid.MoveAgent(from, dest)
	for _, c := range path[:len(path)-1] {
		s.grid.Retrace(c)
	}

	for _, c := range path {
		a.MoveTo(c)
	}
	s.moves += len(path)
}

// staticallyReachable reports whether any unvisited cell is reachable from
// start when dynamic obstacles are ignored. A false result is permanent, so
// the agent can retire instead of waiting forever.
func (s *Session) staticallyReachable(start grid.Coord) bool {
	if s.grid.IsComplete() {
		return false
	}

	seen := map[grid.Coord]struct{}{start: {}}
	queue := []grid.Coord{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range grid.ExpansionOrder {
			n := current.Add(d)
			if !s.grid.InBounds(n) {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			if s.grid.At(n) == grid.Obstacle {
				continue
			}
			if s.grid.IsUnvisited(n) {
				return true
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return false
}

// finishAgents retires every non-terminal agent.
func (s *Session) finishAgents(ctx context.Context, reason string) {
	for i, interp := range s.interps {
		if !interp.IsTerminal() {
			_ = s.transition(ctx, i, agent.StateDone, reason)
		}
	}
}

func (s *Session) allAgentsDone() bool {
	for _, interp := range s.interps {
		if !interp.IsTerminal() {
			return false
		}
	}
	return true
}

// syncRecord mirrors live counters onto the run record.
func (s *Session) syncRecord() {
	s.record.Ticks = s.tick
	s.record.Moves = s.moves
	s.record.Waits = s.waits
	s.record.Coverage = s.Coverage()

	positions := make([]grid.Coord, len(s.agents))
	histories := make([][]grid.Coord, len(s.agents))
	for i, a := range s.agents {
		positions[i] = a.Position
		histories[i] = append([]grid.Coord(nil), a.History...)
	}
	s.record.FinalPositions = positions
	s.record.Histories = histories
}

// ID returns the run ID of this session.
func (s *Session) ID() string { return s.record.ID }

// TickCount returns the number of completed ticks.
func (s *Session) TickCount() int { return s.tick }

// Done returns true once the grid is fully covered.
func (s *Session) Done() bool { return s.grid.IsComplete() }

// StalledOut returns true when uncovered cells remain but every agent has
// retired.
func (s *Session) StalledOut() bool { return s.stalled }

// Finished returns true once the session reached a terminal outcome.
func (s *Session) Finished() bool { return s.Done() || s.stalled }

// Coverage returns the covered fraction of free cells.
func (s *Session) Coverage() float64 {
	free := s.grid.FreeCellCount()
	if free == 0 {
		return 0
	}
	return float64(s.grid.VisitedCount()) / float64(free)
}

// Record returns the run record, current as of the last tick.
func (s *Session) Record() *run.Run {
	s.syncRecord()
	return s.record
}

// Abort marks an unfinished session as aborted on its record.
func (s *Session) Abort() {
	if !s.record.IsTerminal() {
		s.record.Abort()
	}
	s.finishAgents(context.Background(), "session aborted")
}
