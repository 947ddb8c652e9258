package vdom

import (
	"context"
	"encoding/json"
	"fmt"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindPrimitive Kind = iota // string, number, bool, null
	KindSequence              // Ordered list of nodes
	KindMapping               // Ordered string-keyed collection
	KindElement               // Tagged element (markup, Fragment, or Component)
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindSequence:
		return "Sequence"
	case KindMapping:
		return "Mapping"
	case KindElement:
		return "Element"
	default:
		return "Unknown"
	}
}

// Node is a value in the tree model.
// Implementations in this package are Primitive, Sequence, Mapping and Element.
type Node interface {
	Kind() Kind
}

// Marker is one of the two sentinel values that identify element structure
// on the wire. Markers are not strings and never collide with user data.
type Marker uint8

const (
	// ElementMarker tags a JSON object as an Element.
	ElementMarker Marker = iota + 1
	// FragmentMarker is the tag value that denotes a Fragment.
	FragmentMarker
)

// String returns the string representation of the Marker.
func (m Marker) String() string {
	switch m {
	case ElementMarker:
		return "ElementMarker"
	case FragmentMarker:
		return "FragmentMarker"
	default:
		return "Marker(" + fmt.Sprint(uint8(m)) + ")"
	}
}

// Primitive holds a string, float64, bool, nil or Marker.
type Primitive struct {
	Value any
}

// Kind implements Node.
func (Primitive) Kind() Kind { return KindPrimitive }

// Null is the absent value.
var Null = Primitive{}

// Value wraps a Go scalar as a Primitive. Integer and float types are
// normalised to float64 so trees compare equal after a wire round trip.
func Value(v any) Primitive {
	switch x := v.(type) {
	case nil:
		return Null
	case string, bool, float64, Marker:
		return Primitive{Value: x}
	case int:
		return Primitive{Value: float64(x)}
	case int8:
		return Primitive{Value: float64(x)}
	case int16:
		return Primitive{Value: float64(x)}
	case int32:
		return Primitive{Value: float64(x)}
	case int64:
		return Primitive{Value: float64(x)}
	case uint:
		return Primitive{Value: float64(x)}
	case uint8:
		return Primitive{Value: float64(x)}
	case uint16:
		return Primitive{Value: float64(x)}
	case uint32:
		return Primitive{Value: float64(x)}
	case uint64:
		return Primitive{Value: float64(x)}
	case float32:
		return Primitive{Value: float64(x)}
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Primitive{Value: f}
		}
		return Primitive{Value: x.String()}
	default:
		return Primitive{Value: v}
	}
}

// Text creates a string primitive.
func Text(s string) Primitive {
	return Primitive{Value: s}
}

// Textf creates a formatted string primitive.
func Textf(format string, args ...any) Primitive {
	return Text(fmt.Sprintf(format, args...))
}

// IsValid reports whether the primitive holds a JSON-compatible value.
func (p Primitive) IsValid() bool {
	switch p.Value.(type) {
	case nil, string, bool, float64, Marker:
		return true
	default:
		return false
	}
}

// Sequence is an ordered list of nodes.
type Sequence []Node

// Kind implements Node.
func (Sequence) Kind() Kind { return KindSequence }

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Mapping is an ordered string-keyed collection of nodes.
// Key order is significant and preserved end to end.
type Mapping struct {
	Entries []Entry
}

// Kind implements Node.
func (Mapping) Kind() Kind { return KindMapping }

// Len returns the number of entries.
func (m Mapping) Len() int {
	return len(m.Entries)
}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Node, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value stored under key, or appends a new entry.
func (m *Mapping) Set(key string, value Node) {
	for i := range m.Entries {
		if m.Entries[i].Key == key {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: value})
}

// Keys returns the keys in order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// String returns the string value stored under key, if it is a string primitive.
func (m Mapping) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	p, ok := v.(Primitive)
	if !ok {
		return "", false
	}
	s, ok := p.Value.(string)
	return s, ok
}

// Tag is an element's tag: a literal markup name, the Fragment marker, or a
// Component reference. Exactly one should be set.
type Tag struct {
	Name      string
	Fragment  bool
	Component Component
}

// IsComponent reports whether the tag references a component.
func (t Tag) IsComponent() bool {
	return t.Component != nil
}

// String returns a readable tag description.
func (t Tag) String() string {
	switch {
	case t.Component != nil:
		return "<" + t.Component.Name() + ">"
	case t.Fragment:
		return "Fragment"
	default:
		return t.Name
	}
}

// Element is a tagged node with an optional key and props.
// Children live under the "children" prop.
type Element struct {
	Tag   Tag
	Key   string
	Props Mapping
}

// Kind implements Node.
func (Element) Kind() Kind { return KindElement }

// Children returns the node stored under the children prop, or nil.
func (e Element) Children() Node {
	c, _ := e.Props.Get("children")
	return c
}

// Component is a server-only callable that maps props to a node.
// Render may block on I/O; it must honour ctx cancellation where it waits.
type Component interface {
	Name() string
	Render(ctx context.Context, props Mapping) (Node, error)
}

// ComponentFunc is the function form of a component body.
type ComponentFunc func(ctx context.Context, props Mapping) (Node, error)

// FuncComponent wraps a render function with a name.
type FuncComponent struct {
	name   string
	render ComponentFunc
}

// Name implements Component.
func (f *FuncComponent) Name() string {
	return f.name
}

// Render implements Component.
func (f *FuncComponent) Render(ctx context.Context, props Mapping) (Node, error) {
	return f.render(ctx, props)
}

// Func creates a named component from a render function.
func Func(name string, render ComponentFunc) Component {
	return &FuncComponent{name: name, render: render}
}
