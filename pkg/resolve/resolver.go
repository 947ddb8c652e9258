// Package resolve reduces node trees containing components into client trees.
//
// A client tree holds only primitives, sequences, mappings and elements whose
// tag is a markup name or Fragment. Resolution is all-or-nothing: the first
// failure anywhere cancels the remaining work and no partial tree is
// returned.
//
// Siblings in a Sequence and values in a Mapping are resolved concurrently
// and joined back in their original order, so completion order never
// affects output order.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// Resolver evaluates components in a node tree. It holds configuration only
// and is safe for concurrent use.
type Resolver struct {
	maxDepth    int
	concurrency int
	logger      *slog.Logger
	tracer      trace.Tracer
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := defaultResolver()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves a tree with a default Resolver.
func Resolve(ctx context.Context, node vdom.Node) (vdom.Node, error) {
	return New().Resolve(ctx, node)
}

// Resolve walks node, invoking every component it meets and resolving the
// component's output in turn, until no component reference remains.
func (r *Resolver) Resolve(ctx context.Context, node vdom.Node) (vdom.Node, error) {
	return r.resolve(ctx, node, 0)
}

func (r *Resolver) resolve(ctx context.Context, node vdom.Node, depth int) (vdom.Node, error) {
	if depth > r.maxDepth {
		return nil, ErrMaxDepthExceeded
	}

	switch n := node.(type) {
	case nil:
		return vdom.Null, nil

	case vdom.Primitive:
		if !n.IsValid() {
			return nil, fmt.Errorf("%w: primitive %T", ErrNotImplemented, n.Value)
		}
		return n, nil

	case vdom.Sequence:
		return r.resolveSequence(ctx, n, depth)

	case vdom.Mapping:
		return r.resolveMapping(ctx, n, depth)

	case vdom.Element:
		if n.Tag.Component != nil {
			return r.resolveComponent(ctx, n, depth)
		}
		if n.Tag.Name == "" && !n.Tag.Fragment {
			return nil, fmt.Errorf("%w: element without tag", ErrNotImplemented)
		}
		props, err := r.resolveMapping(ctx, n.Props, depth)
		if err != nil {
			return nil, err
		}
		return vdom.Element{Tag: n.Tag, Key: n.Key, Props: props}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrNotImplemented, node)
	}
}

// resolveSequence resolves every item concurrently and joins in index order.
func (r *Resolver) resolveSequence(ctx context.Context, seq vdom.Sequence, depth int) (vdom.Node, error) {
	out := make(vdom.Sequence, len(seq))
	err := r.fanOut(ctx, len(seq), func(ctx context.Context, i int) error {
		res, err := r.resolve(ctx, seq[i], depth+1)
		if err != nil {
			return err
		}
		out[i] = res
		return nil
	}, func(i int) vdom.Node { return seq[i] })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveMapping resolves every value concurrently, keeping keys and order.
func (r *Resolver) resolveMapping(ctx context.Context, m vdom.Mapping, depth int) (vdom.Mapping, error) {
	if len(m.Entries) == 0 {
		return vdom.Mapping{}, nil
	}
	out := make([]vdom.Entry, len(m.Entries))
	err := r.fanOut(ctx, len(m.Entries), func(ctx context.Context, i int) error {
		res, err := r.resolve(ctx, m.Entries[i].Value, depth+1)
		if err != nil {
			return err
		}
		out[i] = vdom.Entry{Key: m.Entries[i].Key, Value: res}
		return nil
	}, func(i int) vdom.Node { return m.Entries[i].Value })
	if err != nil {
		return vdom.Mapping{}, err
	}
	return vdom.Mapping{Entries: out}, nil
}

// fanOut runs fn for each index. Items that are plain primitives are resolved
// inline; everything else gets its own goroutine. The first error cancels
// the group context.
func (r *Resolver) fanOut(ctx context.Context, n int, fn func(context.Context, int) error, item func(int) vdom.Node) error {
	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	var inlineErr error
	for i := 0; i < n; i++ {
		if isLeaf(item(i)) {
			if inlineErr = fn(gctx, i); inlineErr != nil {
				break
			}
			continue
		}
		g.Go(func() error { return fn(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return inlineErr
}

func isLeaf(n vdom.Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(vdom.Primitive)
	return ok
}

func (r *Resolver) resolveComponent(ctx context.Context, el vdom.Element, depth int) (vdom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := el.Tag.Component.Name()
	ctx, span := r.tracer.Start(ctx, "rsc.component",
		trace.WithAttributes(attribute.String("rsc.component.name", name)),
	)
	defer span.End()

	start := time.Now()
	out, err := el.Tag.Component.Render(ctx, el.Props)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Debug("component failed", "name", name, "error", err)

		var ce *ComponentError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &ComponentError{Component: name, Err: err}
	}
	r.logger.Debug("component rendered", "name", name, "duration", time.Since(start))

	res, err := r.resolve(ctx, out, depth+1)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}
