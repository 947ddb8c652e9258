package protocol

import "errors"

// Depth and size limits to prevent stack overflow and OOM via hostile input.
const (
	// MaxNodeDepth limits the maximum nesting depth of node trees.
	// 256 levels is sufficient for any reasonable component hierarchy.
	MaxNodeDepth = 256

	// MaxCollectionCount is the maximum number of items in a single
	// sequence or mapping.
	MaxCollectionCount = 100_000
)

// Common codec errors.
var (
	ErrMaxDepthExceeded    = errors.New("protocol: maximum nesting depth exceeded")
	ErrCollectionTooLarge  = errors.New("protocol: collection count exceeds limit")
	ErrUnresolvedComponent = errors.New("protocol: component reference cannot be encoded")
	ErrInvalidElement      = errors.New("protocol: invalid element")
	ErrUnsupportedValue    = errors.New("protocol: unsupported value")
	ErrTrailingData        = errors.New("protocol: trailing data after tree")
)

// Limits allows configuring custom limits for decoding.
// Use DefaultLimits() for sensible defaults.
type Limits struct {
	// NodeDepth is the maximum tree depth.
	NodeDepth int

	// CollectionCount is the maximum number of items per collection.
	CollectionCount int
}

// DefaultLimits returns the default limits.
func DefaultLimits() Limits {
	return Limits{
		NodeDepth:       MaxNodeDepth,
		CollectionCount: MaxCollectionCount,
	}
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.NodeDepth <= 0 {
		l.NodeDepth = d.NodeDepth
	}
	if l.CollectionCount <= 0 {
		l.CollectionCount = d.CollectionCount
	}
	return l
}

// checkDepth is a convenience function for one-time depth checks.
func checkDepth(current, max int) error {
	if current > max {
		return ErrMaxDepthExceeded
	}
	return nil
}
