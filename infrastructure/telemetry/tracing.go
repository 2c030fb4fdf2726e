package telemetry

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig configures the tracer provider.
type TracingConfig struct {
	// ServiceName identifies the service on exported spans.
	ServiceName string
	// ServiceVersion is the version reported on spans.
	ServiceVersion string
	// Exporter selects the span exporter ("stdout", "none").
	Exporter string
	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64
	// Writer receives stdout-exporter output. Defaults to os.Stdout.
	Writer io.Writer
}

// DefaultTracingConfig returns a tracing configuration with the stdout
// exporter disabled.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:    "explore-go",
		ServiceVersion: "1.0.0",
		Exporter:       "none",
		SampleRate:     1.0,
	}
}

// TracerProvider wraps an SDK tracer provider with its shutdown hook.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracerProvider builds a tracer provider and installs it globally.
func NewTracerProvider(config TracingConfig) (*TracerProvider, error) {
	if config.ServiceName == "" {
		config.ServiceName = "explore-go"
	}

	if config.Exporter == "none" || config.Exporter == "" {
		return &TracerProvider{tracer: otel.Tracer(config.ServiceName)}, nil
	}
	if config.Exporter != "stdout" {
		return nil, errors.New("unknown trace exporter type")
	}

	opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
	if config.Writer != nil {
		opts = append(opts, stdouttrace.WithWriter(config.Writer))
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	)

	var sampler sdktrace.Sampler
	switch {
	case config.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case config.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(config.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)

	return &TracerProvider{
		provider: tp,
		tracer:   tp.Tracer(config.ServiceName),
	}, nil
}

// Tracer returns the tracer for session spans.
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// StartTick opens a span covering one session tick.
func (tp *TracerProvider) StartTick(ctx context.Context, tick int) (context.Context, trace.Span) {
	return tp.tracer.Start(ctx, "session.tick",
		trace.WithAttributes(attribute.Int("session.tick", tick)))
}

// Shutdown flushes pending spans.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	return tp.provider.Shutdown(ctx)
}
