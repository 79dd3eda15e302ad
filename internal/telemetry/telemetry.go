// Package telemetry provides OpenTelemetry tracing for the arena systems.
//
// Components always trace through Tracer. Until Setup installs an exporter the
// global provider is a no-op, so tests and offline runs pay nothing.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/survivalarena/internal/settings"
)

const (
	serviceName    = "survivalarena"
	serviceVersion = "0.1.0"

	defaultEndpoint = "https://api.honeycomb.io"
	defaultDataset  = "survivalarena"
)

// Standard exporter variables read by otlptracehttp.
const (
	envEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envHeaders  = "OTEL_EXPORTER_OTLP_HEADERS"
)

// ConfigureFromEnv maps SURVIVALARENA_HONEYCOMB_API_KEY and
// SURVIVALARENA_HONEYCOMB_DATASET onto the standard OTEL_* exporter variables.
// Variables already set in the environment win. It reports whether an exporter
// is configured.
func ConfigureFromEnv() bool {
	if os.Getenv(envEndpoint) == "" {
		if apiKey := settings.GetenvStr("HONEYCOMB_API_KEY"); apiKey != "" {
			os.Setenv(envEndpoint, defaultEndpoint)
		}
	}
	if os.Getenv(envHeaders) == "" {
		apiKey := settings.GetenvStr("HONEYCOMB_API_KEY")
		dataset := settings.GetenvStrDefault("HONEYCOMB_DATASET", defaultDataset)
		if apiKey != "" {
			os.Setenv(envHeaders, fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
		}
	}
	return os.Getenv(envEndpoint) != ""
}

// Setup initializes OpenTelemetry with an OTLP HTTP exporter configured by the
// standard OTEL_* variables. When no endpoint is configured it installs nothing
// and returns a no-op shutdown.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	if !ConfigureFromEnv() {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Built without resource.Default() to avoid schema URL conflicts.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for one component, e.g. Tracer("respawn").
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
