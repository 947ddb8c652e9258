package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rsc").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolve duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rsc",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the request metrics of a tree server.
//
//   - rsc_requests_total: requests by kind and status code
//   - rsc_resolve_duration_seconds: time to resolve a route's tree, by kind
//   - rsc_tree_bytes: size of encoded client trees
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	treeBytes       prometheus.Histogram
}

// NewMetrics registers the metrics with the configured registry. Each
// registry accepts one Metrics; use a fresh registry per server in tests.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of requests by kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Tree resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		treeBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tree_bytes",
			Help:        "Size of encoded client trees in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
		}),
	}
}

// ObserveResolve records how long resolving a tree took.
func (m *Metrics) ObserveResolve(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.resolveDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveTree records the size of an encoded tree.
func (m *Metrics) ObserveTree(n int) {
	if m == nil {
		return
	}
	m.treeBytes.Observe(float64(n))
}

// Prometheus returns middleware counting every request under the kind that
// classify assigns it. Kinds must come from a small fixed set to keep label
// cardinality bounded.
func (m *Metrics) Prometheus(classify func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requestsTotal.WithLabelValues(classify(r), strconv.Itoa(status)).Inc()
		})
	}
}
