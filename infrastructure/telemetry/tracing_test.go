package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTracerProvider_None(t *testing.T) {
	tp, err := NewTracerProvider(DefaultTracingConfig())
	if err != nil {
		t.Fatalf("NewTracerProvider() error: %v", err)
	}
	if tp.Tracer() == nil {
		t.Fatal("Tracer() = nil")
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
}

func TestNewTracerProvider_UnknownExporter(t *testing.T) {
	_, err := NewTracerProvider(TracingConfig{ServiceName: "x", Exporter: "jaeger"})
	if err == nil {
		t.Fatal("NewTracerProvider() = nil error, want unknown exporter error")
	}
}

func TestNewTracerProvider_StdoutSpans(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewTracerProvider(TracingConfig{
		ServiceName: "explore-test",
		Exporter:    "stdout",
		SampleRate:  1.0,
		Writer:      &buf,
	})
	if err != nil {
		t.Fatalf("NewTracerProvider() error: %v", err)
	}

	ctx := context.Background()
	_, span := tp.StartTick(ctx, 7)
	span.End()

	if err := tp.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "session.tick") {
		t.Errorf("exported spans missing session.tick: %q", out)
	}
}
