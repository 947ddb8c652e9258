package store

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "rsc:comments:"

// RedisStore keeps each post's comments in a Redis list. Appends are a
// single RPUSH and therefore atomic across processes.
type RedisStore struct {
	client *backend.Client
	prefix string
	owned  bool
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix for comment lists.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore connects to the Redis server at address.
func NewRedisStore(address, password string, db int, opts ...RedisOption) *RedisStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	s := NewRedisStoreFromClient(rdb, opts...)
	s.owned = true
	return s
}

// NewRedisStoreFromClient wraps an existing client. Close leaves the client
// open.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(slug string) string {
	return s.prefix + slug
}

// List implements CommentStore.
func (s *RedisStore) List(ctx context.Context, slug string) ([]Comment, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	vals, err := s.client.LRange(ctx, s.key(slug), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("store: redis list %s: %w", slug, err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	comments := make([]Comment, 0, len(vals))
	for _, v := range vals {
		var c Comment
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return nil, fmt.Errorf("store: redis decode %s: %w", slug, err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// Append implements CommentStore.
func (s *RedisStore) Append(ctx context.Context, slug string, c Comment) error {
	if err := checkSlug(slug); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: encode comment: %w", err)
	}
	if err := s.client.RPush(ctx, s.key(slug), data).Err(); err != nil {
		return fmt.Errorf("store: redis append %s: %w", slug, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close implements CommentStore. Only clients created by NewRedisStore are
// closed.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
