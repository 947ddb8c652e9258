package navigator

import (
	"container/list"
	"sync"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// RouteCache maps routes to decoded client trees. Entries are replaced on
// every fetch and never mutated. It is safe for concurrent use.
//
// With MaxEntries > 0 the least recently used route is evicted when the
// cache is full; zero keeps every route for the page's lifetime.
type RouteCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // LRU order (front = most recent)
}

// cacheItem holds an entry in the LRU list.
type cacheItem struct {
	route string
	tree  vdom.Node
}

// NewRouteCache creates a route cache. maxEntries <= 0 means unbounded.
func NewRouteCache(maxEntries int) *RouteCache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &RouteCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Get returns the cached tree for route.
func (c *RouteCache) Get(route string) (vdom.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[route]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheItem).tree, true
}

// Set stores the tree for route, replacing any previous one.
func (c *RouteCache) Set(route string, tree vdom.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[route]; ok {
		elem.Value.(*cacheItem).tree = tree
		c.order.MoveToFront(elem)
		return
	}

	for c.maxEntries > 0 && c.order.Len() >= c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheItem).route)
	}

	c.entries[route] = c.order.PushFront(&cacheItem{route: route, tree: tree})
}

// Delete removes a cached route.
func (c *RouteCache) Delete(route string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[route]; ok {
		c.order.Remove(elem)
		delete(c.entries, route)
	}
}

// Len returns the number of cached routes.
func (c *RouteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Routes returns the cached routes, most recently used first.
func (c *RouteCache) Routes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	routes := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		routes = append(routes, e.Value.(*cacheItem).route)
	}
	return routes
}
