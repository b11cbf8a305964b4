// Package telemetry exports OpenTelemetry spans for batch runs: one span per
// batch with a child span per simulation unit.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "boardsim"
	serviceVersion = "0.1.0"
	tracerName     = "boardsim/batch"

	// EndpointEnv enables export when set. Other OTEL_* variables
	// (headers, protocol) are read by the exporter itself.
	EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Enabled reports whether an OTLP endpoint is configured.
func Enabled() bool {
	return os.Getenv(EndpointEnv) != ""
}

// Setup installs an OTLP/HTTP exporting provider when EndpointEnv is set and
// a no-op provider otherwise. The returned shutdown flushes pending spans.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	if !Enabled() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}
	res, err := newResource(ctx)
	if err != nil {
		return nil, fmt.Errorf("building telemetry resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logrus.Infof("telemetry: exporting batch spans to %s", os.Getenv(EndpointEnv))
	return tp.Shutdown, nil
}

func newResource(ctx context.Context) (*resource.Resource, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", host),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.Int("host.cpus", runtime.NumCPU()),
	))
}

// StartBatch opens the span covering a whole batch. The tracer is looked up
// on every call so a provider installed by Setup is always used.
func StartBatch(ctx context.Context, jobs, workers int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "batch.run", trace.WithAttributes(
		attribute.Int("batch.jobs", jobs),
		attribute.Int("batch.workers", workers),
	))
}

// EndBatch records how many units completed and ends span.
func EndBatch(span trace.Span, completed, total int) {
	span.SetAttributes(
		attribute.Int("batch.completed", completed),
		attribute.Int("batch.failed", total-completed),
	)
	span.End()
}

// Unit identifies one simulation of a batch.
type Unit struct {
	Index      int
	Name       string
	RunID      string
	Passengers int
}

// StartUnit opens a child span for u under the batch span in ctx.
func StartUnit(ctx context.Context, u Unit) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "batch.unit", trace.WithAttributes(
		attribute.Int("unit.index", u.Index),
		attribute.String("unit.name", u.Name),
		attribute.String("unit.run_id", u.RunID),
		attribute.Int("unit.passengers", u.Passengers),
	))
}

// EndUnit records a unit's outcome and ends span. A non-nil err marks the
// span failed with kind as its description.
func EndUnit(span trace.Span, kind string, ticks, seated int, err error) {
	span.SetAttributes(
		attribute.String("unit.kind", kind),
		attribute.Int("unit.ticks", ticks),
		attribute.Int("unit.seated", seated),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
	}
	span.End()
}
