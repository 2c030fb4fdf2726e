// Package telemetry provides OpenTelemetry metrics and tracing for
// exploration sessions.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	ticks            metric.Int64Counter
	moves            metric.Int64Counter
	waits            metric.Int64Counter
	stateTransitions metric.Int64Counter
	obstacleSteps    metric.Int64Counter

	// Histograms
	planningDuration metric.Float64Histogram
	tickDuration     metric.Float64Histogram
	pathLength       metric.Int64Histogram

	// Gauges (UpDownCounters)
	cellsRemaining metric.Int64UpDownCounter
	activeSessions metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter.
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Attributes are default attributes to attach to all metrics.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/explore-go",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider on the global meter
// provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.ticks, err = mp.meter.Int64Counter(
		"explore.session.ticks",
		metric.WithDescription("Number of session ticks"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return err
	}

	mp.moves, err = mp.meter.Int64Counter(
		"explore.agent.moves",
		metric.WithDescription("Number of agent moves"),
		metric.WithUnit("{move}"),
	)
	if err != nil {
		return err
	}

	mp.waits, err = mp.meter.Int64Counter(
		"explore.agent.waits",
		metric.WithDescription("Number of blocked agent waits"),
		metric.WithUnit("{wait}"),
	)
	if err != nil {
		return err
	}

	mp.stateTransitions, err = mp.meter.Int64Counter(
		"explore.agent.transitions",
		metric.WithDescription("Number of agent state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return err
	}

	mp.obstacleSteps, err = mp.meter.Int64Counter(
		"explore.obstacle.steps",
		metric.WithDescription("Number of dynamic obstacle steps"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return err
	}

	mp.planningDuration, err = mp.meter.Float64Histogram(
		"explore.planning.duration",
		metric.WithDescription("Duration of path planning calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.tickDuration, err = mp.meter.Float64Histogram(
		"explore.tick.duration",
		metric.WithDescription("Duration of session ticks"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.pathLength, err = mp.meter.Int64Histogram(
		"explore.planning.path_length",
		metric.WithDescription("Length of planned paths"),
		metric.WithUnit("{cell}"),
	)
	if err != nil {
		return err
	}

	mp.cellsRemaining, err = mp.meter.Int64UpDownCounter(
		"explore.grid.cells_remaining",
		metric.WithDescription("Unvisited free cells remaining"),
		metric.WithUnit("{cell}"),
	)
	if err != nil {
		return err
	}

	mp.activeSessions, err = mp.meter.Int64UpDownCounter(
		"explore.sessions.active",
		metric.WithDescription("Number of active exploration sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordTick records one completed session tick.
func (mp *MetricsProvider) RecordTick(ctx context.Context, sessionID string, duration time.Duration, remaining int, delta int) {
	attrs := []attribute.KeyValue{
		attribute.String("session.id", sessionID),
	}

	mp.ticks.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.tickDuration.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
	if delta != 0 {
		mp.cellsRemaining.Add(ctx, int64(delta), metric.WithAttributes(attrs...))
	}
}

// RecordMove records one agent move.
func (mp *MetricsProvider) RecordMove(ctx context.Context, sessionID string, agentIndex int) {
	mp.moves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("agent.index", agentIndex),
	))
}

// RecordWait records one blocked agent wait.
func (mp *MetricsProvider) RecordWait(ctx context.Context, sessionID string, agentIndex int) {
	mp.waits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("agent.index", agentIndex),
	))
}

// RecordStateTransition records one agent state transition.
func (mp *MetricsProvider) RecordStateTransition(ctx context.Context, sessionID string, agentIndex int, fromState, toState string) {
	mp.stateTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("agent.index", agentIndex),
		attribute.String("state.from", fromState),
		attribute.String("state.to", toState),
	))
}

// RecordObstacleStep records a dynamic obstacle movement round.
func (mp *MetricsProvider) RecordObstacleStep(ctx context.Context, sessionID string, moved int) {
	mp.obstacleSteps.Add(ctx, int64(moved), metric.WithAttributes(
		attribute.String("session.id", sessionID),
	))
}

// RecordPlanning records one planner invocation.
func (mp *MetricsProvider) RecordPlanning(ctx context.Context, sessionID string, planner string, found bool, length int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("session.id", sessionID),
		attribute.String("planner", planner),
		attribute.Bool("found", found),
	}

	mp.planningDuration.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
	if found {
		mp.pathLength.Record(ctx, int64(length), metric.WithAttributes(attrs...))
	}
}

// SessionStarted marks a session as active and seeds the remaining-cell
// gauge with the starting unvisited count.
func (mp *MetricsProvider) SessionStarted(ctx context.Context, sessionID string, remaining int) {
	attrs := []attribute.KeyValue{
		attribute.String("session.id", sessionID),
	}

	mp.activeSessions.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.cellsRemaining.Add(ctx, int64(remaining), metric.WithAttributes(attrs...))
}

// SessionEnded marks a session as finished.
func (mp *MetricsProvider) SessionEnded(ctx context.Context, sessionID string) {
	mp.activeSessions.Add(ctx, -1, metric.WithAttributes(
		attribute.String("session.id", sessionID),
	))
}
