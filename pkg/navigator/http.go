package navigator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	rscerrors "github.com/vango-dev/rsc/internal/errors"
	"github.com/vango-dev/rsc/pkg/protocol"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// TreeQuery is the query that selects the encoded tree instead of a document.
const TreeQuery = "jsx"

// TransportError reports a failed fetch or submit.
type TransportError struct {
	Op     string // "fetch" or "submit"
	Route  string
	Status int // HTTP status, zero when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("navigator: %s %s: status %d", e.Op, e.Route, e.Status)
	}
	return fmt.Sprintf("navigator: %s %s: %v", e.Op, e.Route, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches the coded transport error.
func (e *TransportError) Is(target error) bool {
	t, ok := target.(*rscerrors.Error)
	return ok && t.Code == rscerrors.CodeTransport
}

// HTTPFetcher implements Fetcher against a server speaking the tree protocol.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for the server at baseURL. A nil client
// uses http.DefaultClient; no timeout is imposed beyond the client's own.
func NewHTTPFetcher(baseURL string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("navigator: base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("navigator: base url %q must be absolute", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{base: u, client: client}, nil
}

// url joins route onto the base URL's path, so a server mounted below "/"
// keeps its prefix.
func (f *HTTPFetcher) url(route string, query string) string {
	u := *f.base
	u.Path = strings.TrimSuffix(f.base.Path, "/") + route
	u.RawPath = ""
	u.RawQuery = query
	u.Fragment = ""
	return u.String()
}

// FetchTree implements Fetcher with GET route?jsx.
func (f *HTTPFetcher) FetchTree(ctx context.Context, route string) (vdom.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url(route, TreeQuery), nil)
	if err != nil {
		return nil, &TransportError{Op: "fetch", Route: route, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch", Route: route, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Op: "fetch", Route: route, Status: resp.StatusCode}
	}

	tree, err := protocol.DecodeFrom(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "fetch", Route: route, Err: rscerrors.New(rscerrors.CodeWireDecode).Wrap(err)}
	}
	return tree, nil
}

// Submit implements Fetcher with a JSON POST to route.
func (f *HTTPFetcher) Submit(ctx context.Context, route string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{Op: "submit", Route: route, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url(route, ""), bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "submit", Route: route, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return &TransportError{Op: "submit", Route: route, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: "submit", Route: route, Status: resp.StatusCode}
	}
	return nil
}
