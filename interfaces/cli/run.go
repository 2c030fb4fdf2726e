package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/explore-go/application"
	domainconfig "github.com/felixgeelhaar/explore-go/domain/config"
	"github.com/felixgeelhaar/explore-go/domain/run"
	infraconfig "github.com/felixgeelhaar/explore-go/infrastructure/config"
	"github.com/felixgeelhaar/explore-go/infrastructure/logging"
	"github.com/felixgeelhaar/explore-go/infrastructure/telemetry"
)

// runOptions holds options for the run command.
type runOptions struct {
	scenarioPath string
	width        int
	height       int
	agents       int
	obstacles    int
	seed         int64
	maxTicks     int
	tickDelay    time.Duration
	jsonOutput   bool
	verbose      bool
	watch        bool
	metrics      bool
	trace        bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an exploration session",
		Long: `Run a coverage exploration session over a grid scenario.

Without a scenario file a default 10x10 grid with one agent and five mobile
obstacles is used. Flags override the scenario's values.

Examples:
  # Run the default scenario
  explore run

  # Run a scenario file
  explore run -c scenario.yaml

  # Override grid size and agent count
  explore run -c scenario.yaml --width 20 --height 20 --agents 4

  # Watch the scenario file and rerun on every change
  explore run -c scenario.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScenario(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioPath, "scenario", "c", "", "Path to scenario file (YAML or JSON)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Grid width (overrides scenario)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Grid height (overrides scenario)")
	cmd.Flags().IntVar(&opts.agents, "agents", 0, "Agent count (overrides scenario)")
	cmd.Flags().IntVar(&opts.obstacles, "obstacles", -1, "Dynamic obstacle count (overrides scenario)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Obstacle random seed (overrides scenario)")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", 0, "Abort after this many ticks (overrides scenario)")
	cmd.Flags().DurationVar(&opts.tickDelay, "tick-delay", 0, "Pause between ticks (overrides scenario)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the run record as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the grid after every tick")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Rerun whenever the scenario file changes")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Record OpenTelemetry metrics")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Emit a span per tick to stdout")

	return cmd
}

// loadScenario loads the scenario file or the defaults, then applies flag
// overrides.
func (a *App) loadScenario(opts *runOptions) (*domainconfig.Scenario, error) {
	var s *domainconfig.Scenario
	if opts.scenarioPath != "" {
		loaded, err := infraconfig.NewLoader().LoadFile(opts.scenarioPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		s = loaded
	} else {
		s = domainconfig.Default()
	}

	if opts.width > 0 {
		s.Grid.Width = opts.width
	}
	if opts.height > 0 {
		s.Grid.Height = opts.height
	}
	if opts.agents > 0 {
		s.Agents.Count = opts.agents
		s.Agents.Starts = nil
	}
	if opts.obstacles >= 0 {
		s.DynamicObstacles.Count = opts.obstacles
	}
	if opts.seed != 0 {
		s.DynamicObstacles.Seed = opts.seed
	}
	if opts.maxTicks > 0 {
		s.MaxTicks = opts.maxTicks
	}
	if opts.tickDelay > 0 {
		s.Timing.TickDelay = domainconfig.Duration(opts.tickDelay)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// runScenario executes the run command.
func (a *App) runScenario(ctx context.Context, cmd *cobra.Command, opts *runOptions) error {
	scenario, err := a.loadScenario(opts)
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  scenario.Logging.Level,
		Format: scenario.Logging.Format,
	})

	if opts.watch {
		if opts.scenarioPath == "" {
			return errors.New("--watch requires a scenario file")
		}
		return a.runWatched(ctx, opts, scenario)
	}

	_, err = a.runOnce(ctx, opts, scenario)
	return err
}

// runWatched runs the scenario, then reruns it on every file change until
// the context is cancelled.
func (a *App) runWatched(ctx context.Context, opts *runOptions, scenario *domainconfig.Scenario) error {
	watcher, err := infraconfig.NewWatcher(opts.scenarioPath)
	if err != nil {
		return err
	}
	defer watcher.Close()
	updates := watcher.Watch(ctx)

	for {
		if _, err := a.runOnce(ctx, opts, scenario); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(a.stderr, "run failed: %v\n", err)
		}

		fmt.Fprintln(a.stdout, "watching for scenario changes...")
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-updates:
			if !ok {
				return nil
			}
			scenario = next
			fmt.Fprintf(a.stdout, "scenario reloaded: %s\n", scenario.Name)
		}
	}
}

// runOnce builds a session from the scenario and drives it to a terminal
// outcome, persisting the run record and optional snapshots.
func (a *App) runOnce(ctx context.Context, opts *runOptions, scenario *domainconfig.Scenario) (*run.Run, error) {
	var metrics *telemetry.MetricsProvider
	if opts.metrics {
		metrics = telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig())
		if err := metrics.Error(); err != nil {
			return nil, err
		}
	}

	var tracer *telemetry.TracerProvider
	if opts.trace {
		tp, err := telemetry.NewTracerProvider(telemetry.TracingConfig{
			ServiceName:    "explore-go",
			ServiceVersion: Version,
			Exporter:       "stdout",
			SampleRate:     1.0,
			Writer:         a.stdout,
		})
		if err != nil {
			return nil, err
		}
		tracer = tp
		defer func() {
			if err := tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
				fmt.Fprintf(a.stderr, "failed to flush spans: %v\n", err)
			}
		}()
	}

	session, err := application.New(application.Config{
		Scenario:             scenario.Name,
		Width:                scenario.Grid.Width,
		Height:               scenario.Grid.Height,
		StaticObstacles:      scenario.StaticObstacles,
		AgentStarts:          scenario.ResolvedStarts(),
		DynamicObstacleCount: scenario.DynamicObstacles.Count,
		Seed:                 scenario.DynamicObstacles.Seed,
		Metrics:              metrics,
	})
	if err != nil {
		return nil, err
	}

	stores, err := openStores(scenario.Storage)
	if err != nil {
		return nil, err
	}
	defer stores.Close()

	if err := stores.Runs.Save(ctx, session.Record()); err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	rec, runErr := a.driveSession(ctx, opts, scenario, session, stores, tracer)

	if updateErr := stores.Runs.Update(context.WithoutCancel(ctx), rec); updateErr != nil {
		fmt.Fprintf(a.stderr, "failed to update run record: %v\n", updateErr)
	}
	if runErr != nil {
		return rec, runErr
	}

	a.report(opts, rec)
	return rec, nil
}

// driveSession owns the tick loop: pacing, max-tick aborts, snapshots, and
// cancellation.
func (a *App) driveSession(ctx context.Context, opts *runOptions, scenario *domainconfig.Scenario,
	session *application.Session, stores *sessionStores, tracer *telemetry.TracerProvider) (*run.Run, error) {

	for !session.Finished() {
		if scenario.MaxTicks > 0 && session.TickCount() >= scenario.MaxTicks {
			session.Abort()
			fmt.Fprintf(a.stderr, "aborted after %d ticks\n", session.TickCount())
			break
		}

		outcome, err := tickOnce(ctx, session, tracer)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				session.Abort()
				return session.Record(), err
			}
			return session.Record(), err
		}

		if stores.Snapshots != nil {
			if err := appendSnapshot(ctx, stores, session); err != nil {
				fmt.Fprintf(a.stderr, "failed to persist snapshot: %v\n", err)
			}
		}
		if opts.verbose {
			fmt.Fprintf(a.stdout, "tick %d: %s\n%s\n", outcome.Tick, outcome.Kind, renderGrid(session.Snapshot()))
		}

		if delay := scenario.Timing.TickDelay.Duration(); delay > 0 && !session.Finished() {
			select {
			case <-ctx.Done():
				session.Abort()
				return session.Record(), ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return session.Record(), nil
}

// tickOnce advances the session one tick, covered by a span when tracing is
// enabled.
func tickOnce(ctx context.Context, session *application.Session, tracer *telemetry.TracerProvider) (application.TickOutcome, error) {
	if tracer == nil {
		return session.Tick(ctx)
	}
	tickCtx, span := tracer.StartTick(ctx, session.TickCount()+1)
	defer span.End()
	return session.Tick(tickCtx)
}

// appendSnapshot persists the current grid view for replay.
func appendSnapshot(ctx context.Context, stores *sessionStores, session *application.Session) error {
	view := session.Snapshot()
	state, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return stores.Snapshots.Append(ctx, run.Snapshot{
		RunID:     session.ID(),
		Tick:      view.Tick,
		State:     state,
		CreatedAt: time.Now(),
	})
}

// report prints the final run summary.
func (a *App) report(opts *runOptions, rec *run.Run) {
	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rec)
		return
	}

	fmt.Fprintf(a.stdout, "run %s: %s\n", rec.ID, rec.Status)
	fmt.Fprintf(a.stdout, "  scenario:  %s (%dx%d, %d agents, %d mobile obstacles)\n",
		rec.Scenario, rec.Width, rec.Height, rec.AgentCount, rec.DynamicObstacles)
	fmt.Fprintf(a.stdout, "  coverage:  %.1f%%\n", rec.Coverage*100)
	fmt.Fprintf(a.stdout, "  ticks:     %d\n", rec.Ticks)
	fmt.Fprintf(a.stdout, "  moves:     %d\n", rec.Moves)
	fmt.Fprintf(a.stdout, "  waits:     %d\n", rec.Waits)
	fmt.Fprintf(a.stdout, "  duration:  %s\n", rec.Duration().Round(time.Millisecond))
	for i, pos := range rec.FinalPositions {
		fmt.Fprintf(a.stdout, "  agent %d:   %s (%d cells travelled)\n", i, pos, len(rec.Histories[i])-1)
	}
}
