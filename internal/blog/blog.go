// Package blog is the demo application served over the tree protocol: an
// index of markdown posts, a page per post with comments, and a comment
// form that posts back to the page's route.
package blog

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/vango-dev/rsc/pkg/markdown"
	"github.com/vango-dev/rsc/pkg/store"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// Option configures a Blog.
type Option func(*Blog)

// WithAuthor sets the name shown in the footer.
func WithAuthor(author string) Option {
	return func(b *Blog) {
		if author != "" {
			b.author = author
		}
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(b *Blog) {
		if title != "" {
			b.title = title
		}
	}
}

// WithConverter sets the markdown converter.
func WithConverter(c *markdown.Converter) Option {
	return func(b *Blog) {
		if c != nil {
			b.md = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Blog) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock sets the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(b *Blog) {
		if now != nil {
			b.now = now
		}
	}
}

// WithBackground sets the generator of the page background colour.
func WithBackground(color func() string) Option {
	return func(b *Blog) {
		if color != nil {
			b.background = color
		}
	}
}

// Blog builds page trees from posts and comments.
type Blog struct {
	posts    store.PostSource
	comments store.CommentStore
	md       *markdown.Converter
	logger   *slog.Logger

	author     string
	title      string
	now        func() time.Time
	background func() string

	layout, index, postPage, post, newComment, commentList, prevNext, footer vdom.Component
}

// New creates a blog over posts and comments.
func New(posts store.PostSource, comments store.CommentStore, opts ...Option) *Blog {
	b := &Blog{
		posts:      posts,
		comments:   comments,
		logger:     slog.Default().With("component", "blog"),
		author:     "Jae Doe",
		title:      "My blog",
		now:        time.Now,
		background: randomColor,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.md == nil {
		b.md = markdown.NewConverter(markdown.WithLogger(b.logger))
	}

	b.layout = vdom.Func("BlogLayout", b.renderLayout)
	b.index = vdom.Func("BlogIndexPage", b.renderIndex)
	b.postPage = vdom.Func("BlogPostPage", b.renderPostPage)
	b.post = vdom.Func("Post", b.renderPost)
	b.newComment = vdom.Func("NewComment", b.renderNewComment)
	b.commentList = vdom.Func("Comments", b.renderComments)
	b.prevNext = vdom.Func("PrevNextPost", b.renderPrevNext)
	b.footer = vdom.Func("Footer", b.renderFooter)
	return b
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
}
