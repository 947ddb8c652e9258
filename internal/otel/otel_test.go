package otel

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestNewProviderServiceName(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := NewProvider("blog", sdktrace.WithSpanProcessor(rec))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d", len(spans))
	}
	found := false
	for _, kv := range spans[0].Resource().Attributes() {
		if kv.Key == semconv.ServiceNameKey && kv.Value.AsString() == "blog" {
			found = true
		}
	}
	if !found {
		t.Errorf("resource attributes = %v", spans[0].Resource().Attributes())
	}
}
