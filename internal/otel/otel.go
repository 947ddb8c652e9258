// Package otel installs the OpenTelemetry tracer provider used by the
// resolver and server spans.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config selects the OTLP collector.
type Config struct {
	// Endpoint is the collector's host:port. Empty disables tracing.
	Endpoint string
	// Service is reported as service.name.
	Service string
	// Insecure dials the collector without TLS.
	Insecure bool
}

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

// Setup configures OpenTelemetry to export spans over OTLP/gRPC.
// If the endpoint is empty, no telemetry is configured and the global
// no-op provider stays in place.
func Setup(ctx context.Context, cfg Config) (Shutdown, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(
			grpc.WithTransportCredentials(insecure.NewCredentials())))
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otel: exporter: %w", err)
	}

	tp := NewProvider(cfg.Service, sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// NewProvider builds a tracer provider tagged with service. Extra options
// attach span processors.
func NewProvider(service string, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	if service == "" {
		service = "rsc"
	}
	opts = append(opts, sdktrace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(service),
	)))
	return sdktrace.NewTracerProvider(opts...)
}
