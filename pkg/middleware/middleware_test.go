package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte("ok"))
	})
}

func TestPrometheusCountsByKindAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	classify := func(r *http.Request) string {
		if r.Method == http.MethodPost {
			return "mutation"
		}
		return "document"
	}

	ok := m.Prometheus(classify)(statusHandler(http.StatusOK))
	missing := m.Prometheus(classify)(statusHandler(http.StatusNotFound))

	for i := 0; i < 2; i++ {
		ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	missing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("document", "200")); got != 2 {
		t.Errorf("document/200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("mutation", "404")); got != 1 {
		t.Errorf("mutation/404 = %v, want 1", got)
	}
}

func TestMetricsObservers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("blog"))

	m.ObserveResolve("tree", 20*time.Millisecond)
	m.ObserveTree(1024)

	if n := testutil.CollectAndCount(m.resolveDuration); n != 1 {
		t.Errorf("resolve series = %d, want 1", n)
	}
	if n := testutil.CollectAndCount(m.treeBytes, "blog_tree_bytes"); n != 1 {
		t.Errorf("tree_bytes series = %d, want 1", n)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveResolve("tree", time.Second)
	nilMetrics.ObserveTree(1)
}

func TestOpenTelemetrySpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	mw := OpenTelemetry(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/metrics" }),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.extra", "yes")}
		}),
	)

	mw(statusHandler(http.StatusOK)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post?jsx", nil))
	mw(statusHandler(http.StatusInternalServerError)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))
	mw(statusHandler(http.StatusOK)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2 (metrics filtered)", len(spans))
	}
	if spans[0].Name() != "rsc GET /post" {
		t.Errorf("span name = %q", spans[0].Name())
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["http.target"].AsString() != "/post?jsx" {
		t.Errorf("http.target = %q", attrs["http.target"].AsString())
	}
	if attrs["http.status_code"].AsInt64() != 200 {
		t.Errorf("http.status_code = %v", attrs["http.status_code"])
	}
	if attrs["test.extra"].AsString() != "yes" {
		t.Error("extractor attribute missing")
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("5xx span status = %v, want Error", spans[1].Status().Code)
	}
}
