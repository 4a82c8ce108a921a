// Package otel configures OpenTelemetry tracing for sheetkeeper services.
package otel

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/platform/branding"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	envEndpoint = "SHEETKEEPER_OTEL_ENDPOINT"
	envEnabled  = "SHEETKEEPER_OTEL_ENABLED"
	envRatio    = "SHEETKEEPER_OTEL_SAMPLE_RATIO"
)

// Enabled reports whether tracing should be exported given the current
// environment.
func Enabled() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv(envEnabled)), "false") {
		return false
	}
	return strings.TrimSpace(os.Getenv(envEndpoint)) != ""
}

// Setup registers a global tracer provider exporting to
// SHEETKEEPER_OTEL_ENDPOINT over OTLP/HTTP. Without an endpoint, or with
// SHEETKEEPER_OTEL_ENABLED=false, it installs nothing and returns a no-op
// shutdown. Callers defer the returned shutdown to flush spans.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !Enabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(os.Getenv(envEndpoint))),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceNamespace(branding.Namespace),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// sampler honors SHEETKEEPER_OTEL_SAMPLE_RATIO in (0,1]; anything else
// samples every trace.
func sampler() sdktrace.Sampler {
	ratio, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(envRatio)), 64)
	if err != nil || ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
