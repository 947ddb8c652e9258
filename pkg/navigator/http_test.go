package navigator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	rscerrors "github.com/vango-dev/rsc/internal/errors"
	"github.com/vango-dev/rsc/pkg/protocol"
	"github.com/vango-dev/rsc/pkg/vdom"
)

func TestHTTPFetcherFetchTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !r.URL.Query().Has("jsx") {
			http.Error(w, "document", http.StatusTeapot)
			return
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Path == "/garbage" {
			w.Write([]byte("{"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		protocol.EncodeTo(w, vdom.P("path "+r.URL.Path))
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL, srv.Client())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tree, err := f.FetchTree(ctx, "/hello")
	if err != nil {
		t.Fatalf("FetchTree() error = %v", err)
	}
	if !vdom.Equal(tree, vdom.P("path /hello")) {
		t.Errorf("FetchTree() = %#v", tree)
	}

	_, err = f.FetchTree(ctx, "/missing")
	var te *TransportError
	if !errors.As(err, &te) || te.Status != http.StatusNotFound {
		t.Errorf("FetchTree(/missing) error = %v", err)
	}
	if !errors.Is(err, rscerrors.New(rscerrors.CodeTransport)) {
		t.Error("TransportError should match the transport code")
	}

	_, err = f.FetchTree(ctx, "/garbage")
	if !errors.Is(err, rscerrors.New(rscerrors.CodeWireDecode)) {
		t.Errorf("FetchTree(/garbage) error = %v, want wire decode", err)
	}
}

func TestHTTPFetcherSubmit(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	f, _ := NewHTTPFetcher(srv.URL, nil)
	ctx := context.Background()

	if err := f.Submit(ctx, "/my-post", map[string]string{"comment": "hi"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if gotPath != "/my-post" || gotBody["comment"] != "hi" {
		t.Errorf("server saw path=%q body=%v", gotPath, gotBody)
	}

	err := f.Submit(ctx, "/", "x")
	var te *TransportError
	if !errors.As(err, &te) || te.Status != http.StatusMethodNotAllowed {
		t.Errorf("Submit(/) error = %v", err)
	}
}

func TestNewHTTPFetcherRequiresAbsoluteURL(t *testing.T) {
	if _, err := NewHTTPFetcher("/relative", nil); err == nil {
		t.Error("expected error for relative base url")
	}
}

func TestHTTPFetcherKeepsBasePath(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{"no trailing slash", "/blog"},
		{"trailing slash", "/blog/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.Method+" "+r.URL.Path)
				if r.Method == http.MethodGet {
					protocol.EncodeTo(w, vdom.P("ok"))
				}
			}))
			defer srv.Close()

			f, err := NewHTTPFetcher(srv.URL+tt.base, srv.Client())
			if err != nil {
				t.Fatal(err)
			}
			ctx := context.Background()
			if _, err := f.FetchTree(ctx, "/hello"); err != nil {
				t.Fatalf("FetchTree() error = %v", err)
			}
			if err := f.Submit(ctx, "/hello", "hi"); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			want := []string{"GET /blog/hello", "POST /blog/hello"}
			if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
				t.Errorf("requests = %v, want %v", paths, want)
			}
		})
	}
}
