package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned for node shapes the resolver cannot
	// evaluate: unknown Node implementations, elements without a tag, and
	// primitives holding non-JSON values.
	ErrNotImplemented = errors.New("resolve: node shape not implemented")

	// ErrMaxDepthExceeded is returned when nesting, usually runaway component
	// recursion, exceeds the configured depth.
	ErrMaxDepthExceeded = errors.New("resolve: maximum depth exceeded")
)

// ComponentError wraps an error returned by a component's Render.
type ComponentError struct {
	Component string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("resolve: component %s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
