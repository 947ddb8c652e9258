package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every comment in one JSON document mapping slug to a list
// of comments. Writes replace the document atomically and are serialised
// within the process; separate processes sharing the file can still lose
// each other's appends.
type FileStore struct {
	path string

	mu     sync.Mutex
	closed bool
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// created on the first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// List implements CommentStore.
func (s *FileStore) List(ctx context.Context, slug string) ([]Comment, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc[slug], nil
}

// Append implements CommentStore.
func (s *FileStore) Append(ctx context.Context, slug string, c Comment) error {
	if err := checkSlug(slug); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[slug] = append(doc[slug], c)
	return s.save(doc)
}

// Close implements CommentStore.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) load() (map[string][]Comment, error) {
	doc := make(map[string][]Comment)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read comments: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", s.path, err)
	}
	return doc, nil
}

// save writes doc to a temp file in the same directory and renames it over
// the target.
func (s *FileStore) save(doc map[string][]Comment) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode comments: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "tmp-comments-*.json")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}
	return nil
}
