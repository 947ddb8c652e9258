package resolve

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rsc/pkg/protocol"
)

// Default tracer name for resolver spans.
const defaultTracerName = "github.com/vango-dev/rsc/pkg/resolve"

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the maximum nesting depth, counting one level per
// container and one per component invocation. Zero or negative keeps the
// default of protocol.MaxNodeDepth.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithConcurrency bounds the goroutines started per fan-out. Zero means
// unbounded.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n >= 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for component spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

func defaultResolver() *Resolver {
	return &Resolver{
		maxDepth: protocol.MaxNodeDepth,
		logger:   slog.Default().With("component", "resolve"),
		tracer:   otel.Tracer(defaultTracerName),
	}
}
