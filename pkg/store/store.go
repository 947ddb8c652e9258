// Package store holds the blog's data: markdown post sources and the
// comment backends (memory, file, Redis, S3).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	rscerrors "github.com/vango-dev/rsc/internal/errors"
)

var (
	// ErrPostNotFound is returned when a slug has no post. It matches
	// rscerrors.ErrRouteNotFound so servers answer 404.
	ErrPostNotFound = rscerrors.New(rscerrors.CodeRouteNotFound).WithDetail("no post with that slug exists")

	// ErrInvalidSlug is returned for an empty slug.
	ErrInvalidSlug = errors.New("store: invalid slug")

	// ErrClosed is returned by a store used after Close.
	ErrClosed = errors.New("store: closed")
)

// PostSource lists and reads markdown posts.
type PostSource interface {
	// Slugs returns every post slug in ascending order.
	Slugs(ctx context.Context) ([]string, error)
	// Read returns the markdown source of a post.
	Read(ctx context.Context, slug string) ([]byte, error)
}

// CommentStore persists comments per post slug. List returns comments in
// the order they were appended.
type CommentStore interface {
	List(ctx context.Context, slug string) ([]Comment, error)
	Append(ctx context.Context, slug string, c Comment) error
	Close() error
}

// Comment is one reader comment.
type Comment struct {
	ID        ulid.ULID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewComment stamps text with a fresh ID and the current time.
func NewComment(text string) Comment {
	return Comment{
		ID:        ulid.Make(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// Key identifies the comment in a rendered list. Comments read from the
// legacy plain-string format have no ID and fall back to their text.
func (c Comment) Key() string {
	if c.ID == (ulid.ULID{}) {
		return c.Text
	}
	return c.ID.String()
}

// UnmarshalJSON accepts both the object form and a bare string, which is how
// older comment files stored each entry.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Comment{Text: text}
		return nil
	}
	type plain Comment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Comment(p)
	return nil
}

// postNotFound returns a fresh not-found error so the sentinel is never
// mutated by Wrap.
func postNotFound(cause error) error {
	return rscerrors.New(rscerrors.CodeRouteNotFound).WithDetail(ErrPostNotFound.Detail).Wrap(cause)
}

func checkSlug(slug string) error {
	if slug == "" {
		return ErrInvalidSlug
	}
	return nil
}
