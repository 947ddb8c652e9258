package navigator

import "sync"

// History is the session history the navigator pushes entries onto.
type History interface {
	// Push adds a new entry for route and makes it current.
	Push(route string)
	// Current returns the route of the current entry.
	Current() string
}

// MemoryHistory is an in-memory back/forward stack.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewMemoryHistory creates a history whose only entry is initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{entries: []string{initial}}
}

// Push implements History. Forward entries are discarded.
func (h *MemoryHistory) Push(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.index+1], route)
	h.index = len(h.entries) - 1
}

// Current implements History.
func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Back moves to the previous entry. It reports false at the start.
func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves to the next entry. It reports false at the end.
func (h *MemoryHistory) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
