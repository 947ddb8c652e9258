package store

import (
	"context"
	"sync"
)

// MemoryStore keeps comments in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	comments map[string][]Comment
	closed   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{comments: make(map[string][]Comment)}
}

// List implements CommentStore.
func (s *MemoryStore) List(ctx context.Context, slug string) ([]Comment, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return append([]Comment(nil), s.comments[slug]...), nil
}

// Append implements CommentStore.
func (s *MemoryStore) Append(ctx context.Context, slug string, c Comment) error {
	if err := checkSlug(slug); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.comments[slug] = append(s.comments[slug], c)
	return nil
}

// Close implements CommentStore.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
