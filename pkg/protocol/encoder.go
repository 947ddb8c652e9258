package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// Encoder writes client trees as extended JSON into a buffer.
// An Encoder is not safe for concurrent use; it can be reused after Reset.
type Encoder struct {
	buf    bytes.Buffer
	limits Limits
}

// NewEncoder creates a new encoder with default limits.
func NewEncoder() *Encoder {
	return &Encoder{limits: DefaultLimits()}
}

// NewEncoderWithLimits creates a new encoder with custom limits.
func NewEncoderWithLimits(limits Limits) *Encoder {
	return &Encoder{limits: limits.normalized()}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded bytes.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Reset clears the buffer for reuse.
func (e *Encoder) Reset() {
	e.buf.Reset()
}

// Encode appends the encoded form of node to the buffer. Strings and mapping
// keys must be valid UTF-8; anything else fails with ErrUnsupportedValue.
// On error the buffer contents are unspecified.
func (e *Encoder) Encode(node vdom.Node) error {
	return e.encodeNode(node, 0)
}

// Encode encodes a client tree to extended JSON.
func Encode(node vdom.Node) ([]byte, error) {
	e := NewEncoder()
	if err := e.Encode(node); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeTo encodes a client tree and writes it to w. Nothing is written when
// encoding fails.
func EncodeTo(w io.Writer, node vdom.Node) error {
	data, err := Encode(node)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (e *Encoder) encodeNode(node vdom.Node, depth int) error {
	if err := checkDepth(depth, e.limits.NodeDepth); err != nil {
		return err
	}

	switch n := node.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil

	case vdom.Primitive:
		return e.writeScalar(n.Value)

	case vdom.Sequence:
		e.buf.WriteByte('[')
		for i, child := range n {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encodeNode(child, depth+1); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
		return nil

	case vdom.Mapping:
		return e.encodeMapping(n, depth)

	case vdom.Element:
		return e.encodeElement(n, depth)

	default:
		return fmt.Errorf("%w: node %T", ErrUnsupportedValue, node)
	}
}

func (e *Encoder) encodeMapping(m vdom.Mapping, depth int) error {
	e.buf.WriteByte('{')
	for i, entry := range m.Entries {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		// Keys are plain JSON strings; substitution applies to values only.
		if err := checkUTF8(entry.Key); err != nil {
			return err
		}
		e.writeString(entry.Key)
		e.buf.WriteByte(':')
		if err := e.encodeNode(entry.Value, depth+1); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *Encoder) encodeElement(el vdom.Element, depth int) error {
	var tag any
	switch {
	case el.Tag.Component != nil:
		return fmt.Errorf("%w: %s", ErrUnresolvedComponent, el.Tag.Component.Name())
	case el.Tag.Fragment:
		tag = vdom.FragmentMarker
	case el.Tag.Name != "":
		tag = el.Tag.Name
	default:
		return fmt.Errorf("%w: empty tag", ErrInvalidElement)
	}

	e.buf.WriteByte('{')
	e.writeString(keyTypeof)
	e.buf.WriteByte(':')
	if err := e.writeScalar(vdom.ElementMarker); err != nil {
		return err
	}

	e.buf.WriteByte(',')
	e.writeString(keyType)
	e.buf.WriteByte(':')
	if err := e.writeScalar(tag); err != nil {
		return err
	}

	e.buf.WriteByte(',')
	e.writeString(keyKey)
	e.buf.WriteByte(':')
	if el.Key == "" {
		e.buf.WriteString("null")
	} else if err := e.writeScalar(el.Key); err != nil {
		return err
	}

	e.buf.WriteByte(',')
	e.writeString(keyRef)
	e.buf.WriteString(":null,")

	e.writeString(keyProps)
	e.buf.WriteByte(':')
	if err := e.encodeMapping(el.Props, depth+1); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

// writeScalar applies the substitution hook and writes the result.
func (e *Encoder) writeScalar(v any) error {
	switch x := EscapeValue(v).(type) {
	case nil:
		e.buf.WriteString("null")
	case string:
		if err := checkUTF8(x); err != nil {
			return err
		}
		e.writeString(x)
	case bool:
		e.buf.WriteString(strconv.FormatBool(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %v", ErrUnsupportedValue, x)
		}
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		e.buf.Write(data)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
	return nil
}

// checkUTF8 rejects strings that JSON would silently rewrite to U+FFFD.
func checkUTF8(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid UTF-8 in %q", ErrUnsupportedValue, s)
	}
	return nil
}

func (e *Encoder) writeString(s string) {
	// json.Marshal on a string cannot fail; it also escapes <, > and & which
	// keeps the output safe to embed in a document.
	data, _ := json.Marshal(s)
	e.buf.Write(data)
}
