package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupTestMetrics installs a manual-reader meter provider and returns it
// along with a metrics provider bound to it.
func setupTestMetrics(t *testing.T) (*metric.ManualReader, *MetricsProvider) {
	t.Helper()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	mp := NewMetricsProvider(DefaultMetricsConfig())
	if mp.Error() != nil {
		t.Fatalf("failed to create metrics provider: %v", mp.Error())
	}

	return reader, mp
}

func sumOf(t *testing.T, rm *metricdata.ResourceMetrics, name string) (int64, bool) {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: expected Sum[int64], got %T", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total, true
		}
	}
	return 0, false
}

func TestNewMetricsProvider(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	if mp == nil {
		t.Fatal("NewMetricsProvider returned nil")
	}
}

func TestMetricsProvider_RecordTick(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordTick(ctx, "s1", 2*time.Millisecond, 10, -2)
	mp.RecordTick(ctx, "s1", 1*time.Millisecond, 9, -1)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if got, ok := sumOf(t, &rm, "explore.session.ticks"); !ok || got != 2 {
		t.Errorf("explore.session.ticks = %d (found=%v), want 2", got, ok)
	}
	if got, ok := sumOf(t, &rm, "explore.grid.cells_remaining"); !ok || got != -3 {
		t.Errorf("explore.grid.cells_remaining = %d (found=%v), want -3", got, ok)
	}
}

func TestMetricsProvider_RecordMovesAndWaits(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordMove(ctx, "s1", 0)
	mp.RecordMove(ctx, "s1", 1)
	mp.RecordMove(ctx, "s1", 0)
	mp.RecordWait(ctx, "s1", 1)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if got, ok := sumOf(t, &rm, "explore.agent.moves"); !ok || got != 3 {
		t.Errorf("explore.agent.moves = %d (found=%v), want 3", got, ok)
	}
	if got, ok := sumOf(t, &rm, "explore.agent.waits"); !ok || got != 1 {
		t.Errorf("explore.agent.waits = %d (found=%v), want 1", got, ok)
	}
}

func TestMetricsProvider_RecordPlanning(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordPlanning(ctx, "s1", "frontier", true, 4, 500*time.Microsecond)
	mp.RecordPlanning(ctx, "s1", "astar", false, 0, 200*time.Microsecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	var durations, lengths uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "explore.planning.duration":
				h, ok := m.Data.(metricdata.Histogram[float64])
				if !ok {
					t.Fatalf("expected Histogram[float64], got %T", m.Data)
				}
				for _, dp := range h.DataPoints {
					durations += dp.Count
				}
			case "explore.planning.path_length":
				h, ok := m.Data.(metricdata.Histogram[int64])
				if !ok {
					t.Fatalf("expected Histogram[int64], got %T", m.Data)
				}
				for _, dp := range h.DataPoints {
					lengths += dp.Count
				}
			}
		}
	}
	if durations != 2 {
		t.Errorf("planning duration samples = %d, want 2", durations)
	}
	if lengths != 1 {
		t.Errorf("path length samples = %d, want 1 (failed plans skipped)", lengths)
	}
}

func TestMetricsProvider_SessionGauge(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.SessionStarted(ctx, "s1", 24)
	mp.SessionStarted(ctx, "s2", 15)
	mp.SessionEnded(ctx, "s1")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if got, ok := sumOf(t, &rm, "explore.sessions.active"); !ok || got != 1 {
		t.Errorf("explore.sessions.active = %d (found=%v), want 1", got, ok)
	}
	if got, ok := sumOf(t, &rm, "explore.grid.cells_remaining"); !ok || got != 24+15 {
		t.Errorf("explore.grid.cells_remaining = %d (found=%v), want 39", got, ok)
	}
}

func TestMetricsProvider_CellsRemainingTracksCount(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.SessionStarted(ctx, "s1", 8)
	mp.RecordTick(ctx, "s1", time.Millisecond, 5, -3)
	mp.RecordTick(ctx, "s1", time.Millisecond, 0, -5)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if got, ok := sumOf(t, &rm, "explore.grid.cells_remaining"); !ok || got != 0 {
		t.Errorf("explore.grid.cells_remaining = %d (found=%v), want 0 after full coverage", got, ok)
	}
}

func TestMetricsProvider_RecordStateTransition(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordStateTransition(ctx, "s1", 0, "idle", "planning")
	mp.RecordStateTransition(ctx, "s1", 0, "planning", "moving")
	mp.RecordStateTransition(ctx, "s1", 1, "planning", "waiting")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if got, ok := sumOf(t, &rm, "explore.agent.transitions"); !ok || got != 3 {
		t.Errorf("explore.agent.transitions = %d (found=%v), want 3", got, ok)
	}
}
