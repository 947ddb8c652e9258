package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rsc/pkg/middleware"
	"github.com/vango-dev/rsc/pkg/render"
	"github.com/vango-dev/rsc/pkg/resolve"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// RouteFunc produces the raw tree for a URL. It may return component
// elements; the server resolves them before anything is sent.
type RouteFunc func(ctx context.Context, u *url.URL) (vdom.Node, error)

// Mutator is the write path behind POST requests.
type Mutator interface {
	Mutate(ctx context.Context, route string, payload any) error
}

// MutatorFunc adapts a function to Mutator.
type MutatorFunc func(ctx context.Context, route string, payload any) error

// Mutate implements Mutator.
func (f MutatorFunc) Mutate(ctx context.Context, route string, payload any) error {
	return f(ctx, route, payload)
}

// Request kinds used as metric labels.
const (
	KindDocument = "document"
	KindTree     = "tree"
	KindMutation = "mutation"
	KindClient   = "client"
	KindMetrics  = "metrics"
	KindOther    = "other"
)

// DefaultMaxBodyBytes bounds a mutation payload.
const DefaultMaxBodyBytes = 1 << 20

// Config configures a Server.
type Config struct {
	// DevMode disables caching of the client runtime.
	DevMode bool

	// Metrics mounts /metrics and records request metrics.
	Metrics bool

	// Registry receives the server's collectors. Defaults to a fresh
	// registry so that several servers can coexist in one process.
	Registry *prometheus.Registry

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Resolver defaults to resolve.New().
	Resolver *resolve.Resolver

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider

	// MaxBodyBytes bounds POST bodies. Default: DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// ShutdownTimeout bounds graceful shutdown in Run. Default: 10 seconds.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with metrics enabled.
func DefaultConfig() Config {
	return Config{
		Metrics:         true,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves trees for a RouteFunc and forwards mutations to a Mutator.
type Server struct {
	config   Config
	route    RouteFunc
	mutator  Mutator
	resolver *resolve.Resolver
	renderer *render.Renderer
	metrics  *middleware.Metrics
	registry *prometheus.Registry
	logger   *slog.Logger
	handler  http.Handler
}

// New creates a Server. A nil mutator rejects every POST with 405.
func New(config Config, route RouteFunc, mutator Mutator) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		config:   config,
		route:    route,
		mutator:  mutator,
		resolver: config.Resolver,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   config.Logger.With("component", "server"),
	}
	if s.resolver == nil {
		s.resolver = resolve.New(resolve.WithLogger(config.Logger))
	}
	if config.Metrics {
		s.registry = config.Registry
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))
	}
	s.handler = s.routes()
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	otelOpts := []middleware.OTelOption{
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return classify(r) != KindMetrics
		}),
	}
	if s.config.TracerProvider != nil {
		otelOpts = append(otelOpts, middleware.WithTracerProvider(s.config.TracerProvider))
	}
	r.Use(middleware.OpenTelemetry(otelOpts...))
	if s.metrics != nil {
		r.Use(s.metrics.Prometheus(classify))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Get(render.DefaultClientScript, s.serveClient)
	r.Head(render.DefaultClientScript, s.serveClient)
	r.Get("/*", s.serveRoute)
	r.Post("/*", s.serveMutation)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	return r
}

// classify assigns a request its metric kind.
func classify(r *http.Request) string {
	switch {
	case r.URL.Path == render.DefaultClientScript:
		return KindClient
	case r.URL.Path == "/metrics":
		return KindMetrics
	case r.Method == http.MethodPost:
		return KindMutation
	case r.Method != http.MethodGet && r.Method != http.MethodHead:
		return KindOther
	case r.URL.Query().Has(TreeQuery):
		return KindTree
	default:
		return KindDocument
	}
}

// Run listens on addr and serves until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
