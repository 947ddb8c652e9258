// Package navigator is the client side of route navigation: it owns the
// current route, a route → client tree cache and the decision of when a
// fetched or cached tree is handed to a renderer.
//
// A Navigator is built once per page load and lives for the page's lifetime.
// Every navigation takes a generation number when it starts; a tree is
// rendered only if its navigation is still the latest one when the tree
// becomes available, so a slow response can never overwrite a newer page.
package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/vango-dev/rsc/pkg/protocol"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// Fetcher retrieves encoded trees from the server and submits mutations.
type Fetcher interface {
	// FetchTree returns the decoded client tree for route.
	FetchTree(ctx context.Context, route string) (vdom.Node, error)
	// Submit posts payload to route as a mutation.
	Submit(ctx context.Context, route string, payload any) error
}

// Renderer displays a client tree.
type Renderer interface {
	Render(ctx context.Context, route string, tree vdom.Node) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, route string, tree vdom.Node) error

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, route string, tree vdom.Node) error {
	return f(ctx, route, tree)
}

// ClickEvent describes a click on an anchor element.
type ClickEvent struct {
	Href     string
	MetaKey  bool
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithCache sets the route cache. The default is unbounded.
func WithCache(c *RouteCache) Option {
	return func(n *Navigator) {
		if c != nil {
			n.cache = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Navigator holds navigation state. Its methods are safe for concurrent use;
// the state lock is never held across a fetch or a render.
type Navigator struct {
	fetcher  Fetcher
	renderer Renderer
	history  History
	cache    *RouteCache
	logger   *slog.Logger

	mu            sync.Mutex
	currentRoute  string
	renderedRoute string
	generation    uint64

	// renderMu serialises the staleness check with the render it guards.
	renderMu sync.Mutex
}

// New creates a Navigator positioned at history's current route.
func New(fetcher Fetcher, renderer Renderer, history History, opts ...Option) *Navigator {
	n := &Navigator{
		fetcher:  fetcher,
		renderer: renderer,
		history:  history,
		cache:    NewRouteCache(0),
		logger:   slog.Default().With("component", "navigator"),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.currentRoute = history.Current()
	return n
}

// CurrentRoute returns the route the user intends to view.
func (n *Navigator) CurrentRoute() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.currentRoute
}

// RenderedRoute returns the route whose tree is displayed.
func (n *Navigator) RenderedRoute() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.renderedRoute
}

// Cache returns the route cache.
func (n *Navigator) Cache() *RouteCache {
	return n.cache
}

// Bootstrap decodes the tree embedded in the first document, seeds the cache
// at the current route and renders it. No request is made.
func (n *Navigator) Bootstrap(ctx context.Context, encoded []byte) error {
	tree, err := protocol.Decode(encoded)
	if err != nil {
		return fmt.Errorf("navigator: bootstrap: %w", err)
	}

	route, gen := n.begin("")
	n.cache.Set(route, tree)
	return n.commit(ctx, gen, route, tree, true)
}

// Navigate shows route. With allowCache a cached tree is reused; otherwise
// the tree is fetched and the cache entry replaced. The current route is
// updated before any waiting. Rendering is skipped when a newer navigation
// has started or when route is already the rendered route.
func (n *Navigator) Navigate(ctx context.Context, route string, allowCache bool) error {
	route, gen := n.begin(route)

	tree, ok := vdom.Node(nil), false
	if allowCache {
		tree, ok = n.cache.Get(route)
	}
	if !ok {
		var err error
		tree, err = n.fetch(ctx, route)
		if err != nil {
			return err
		}
	}

	return n.commit(ctx, gen, route, tree, false)
}

// HandleClick intercepts a link click. It reports whether the click was
// taken over; when it was, the default navigation must be suppressed.
func (n *Navigator) HandleClick(ctx context.Context, ev ClickEvent) (bool, error) {
	if !ShouldIntercept(ev) {
		return false, nil
	}
	route := routeOf(ev.Href)
	n.history.Push(route)
	return true, n.Navigate(ctx, route, false)
}

// HandlePopState reacts to back/forward traversal by showing the history's
// current route, reusing a cached tree when there is one.
func (n *Navigator) HandlePopState(ctx context.Context) error {
	return n.Navigate(ctx, n.history.Current(), true)
}

// HandleSubmit posts payload to the current route, re-fetches its tree
// bypassing the cache and renders it even though the route is unchanged.
// History is not touched. When another navigation starts while the POST is
// in flight, the refresh is skipped and the route's cache entry dropped so a
// later visit fetches the mutated tree.
func (n *Navigator) HandleSubmit(ctx context.Context, payload any) error {
	n.mu.Lock()
	route, gen := n.currentRoute, n.generation
	n.mu.Unlock()

	if err := n.fetcher.Submit(ctx, route, payload); err != nil {
		n.logger.Warn("submit failed", "route", route, "error", err)
		return err
	}

	gen, ok := n.advance(gen)
	if !ok {
		n.logger.Debug("dropping stale submit refresh", "route", route)
		n.cache.Delete(route)
		return nil
	}
	tree, err := n.fetch(ctx, route)
	if err != nil {
		return err
	}
	return n.commit(ctx, gen, route, tree, true)
}

// Reload re-fetches the current route and renders it even though the route
// is unchanged.
func (n *Navigator) Reload(ctx context.Context) error {
	route, gen := n.begin("")
	tree, err := n.fetch(ctx, route)
	if err != nil {
		return err
	}
	return n.commit(ctx, gen, route, tree, true)
}

// ShouldIntercept reports whether a click is a plain click on a root-relative
// link. Protocol-relative hrefs ("//host/…") point off-site and are left
// alone.
func ShouldIntercept(ev ClickEvent) bool {
	if ev.MetaKey || ev.CtrlKey || ev.ShiftKey || ev.AltKey {
		return false
	}
	return strings.HasPrefix(ev.Href, "/") && !strings.HasPrefix(ev.Href, "//")
}

// routeOf strips the query and fragment from a root-relative href.
func routeOf(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return href
	}
	return u.Path
}

// begin starts a navigation to route (or the current route when empty) and
// returns the route with its generation.
func (n *Navigator) begin(route string) (string, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if route == "" {
		route = n.currentRoute
	}
	n.generation++
	n.currentRoute = route
	return route, n.generation
}

// advance bumps the generation if it still equals gen, leaving the current
// route alone.
func (n *Navigator) advance(gen uint64) (uint64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.generation != gen {
		return 0, false
	}
	n.generation++
	return n.generation, true
}

func (n *Navigator) fetch(ctx context.Context, route string) (vdom.Node, error) {
	tree, err := n.fetcher.FetchTree(ctx, route)
	if err != nil {
		n.logger.Warn("navigation failed", "route", route, "error", err)
		return nil, err
	}
	n.cache.Set(route, tree)
	return tree, nil
}

// commit renders tree unless its navigation is stale or, without force, the
// route is already displayed.
func (n *Navigator) commit(ctx context.Context, gen uint64, route string, tree vdom.Node, force bool) error {
	n.renderMu.Lock()
	defer n.renderMu.Unlock()

	n.mu.Lock()
	stale := gen != n.generation
	same := route == n.renderedRoute
	n.mu.Unlock()

	if stale {
		n.logger.Debug("dropping stale tree", "route", route)
		return nil
	}
	if same && !force {
		return nil
	}

	if err := n.renderer.Render(ctx, route, tree); err != nil {
		return fmt.Errorf("navigator: render %s: %w", route, err)
	}

	n.mu.Lock()
	n.renderedRoute = route
	n.mu.Unlock()
	return nil
}
