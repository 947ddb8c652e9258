// Package middleware provides the net/http middleware of rsc servers.
//
// This package includes:
//   - OpenTelemetry tracing middleware (one server span per request)
//   - Prometheus request metrics
//
// # OpenTelemetry Middleware
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/metrics"
//	    }),
//	))
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure the provider in main() before starting the server.
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Prometheus(classify))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Handlers record resolution time and tree size through ObserveResolve and
// ObserveTree.
package middleware
