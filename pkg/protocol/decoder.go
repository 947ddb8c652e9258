package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// Decoder reads client trees from a stream of extended JSON.
type Decoder struct {
	dec    *json.Decoder
	limits Limits
}

// NewDecoder creates a decoder over r with default limits.
func NewDecoder(r io.Reader) *Decoder {
	return NewDecoderWithLimits(r, DefaultLimits())
}

// NewDecoderWithLimits creates a decoder over r with custom limits.
func NewDecoderWithLimits(r io.Reader, limits Limits) *Decoder {
	return &Decoder{dec: json.NewDecoder(r), limits: limits.normalized()}
}

// Decode reads exactly one tree. Any non-whitespace input after the tree is
// reported as ErrTrailingData.
func (d *Decoder) Decode() (vdom.Node, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("protocol: decode: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("protocol: decode: %w", err)
	}
	node, err := d.decodeValue(tok, 0)
	if err != nil {
		return nil, err
	}
	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return node, nil
}

// Decode decodes extended JSON into a client tree.
func Decode(data []byte) (vdom.Node, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}

// DecodeFrom decodes one client tree from r.
func DecodeFrom(r io.Reader) (vdom.Node, error) {
	return NewDecoder(r).Decode()
}

func (d *Decoder) next() (json.Token, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("protocol: decode: %w", err)
	}
	return tok, nil
}

func (d *Decoder) decodeValue(tok json.Token, depth int) (vdom.Node, error) {
	if err := checkDepth(depth, d.limits.NodeDepth); err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case nil:
		return vdom.Null, nil
	case bool:
		return vdom.Primitive{Value: v}, nil
	case float64:
		return vdom.Primitive{Value: v}, nil
	case string:
		return vdom.Primitive{Value: UnescapeValue(v)}, nil
	case json.Delim:
		switch v {
		case '[':
			return d.decodeSequence(depth)
		case '{':
			m, err := d.decodeObject(depth)
			if err != nil {
				return nil, err
			}
			return toElement(m)
		}
	}
	return nil, fmt.Errorf("protocol: decode: unexpected token %v", tok)
}

func (d *Decoder) decodeSequence(depth int) (vdom.Node, error) {
	seq := vdom.Sequence{}
	for d.dec.More() {
		if len(seq) >= d.limits.CollectionCount {
			return nil, ErrCollectionTooLarge
		}
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		child, err := d.decodeValue(tok, depth+1)
		if err != nil {
			return nil, err
		}
		seq = append(seq, child)
	}
	// closing ']'
	if _, err := d.next(); err != nil {
		return nil, err
	}
	return seq, nil
}

func (d *Decoder) decodeObject(depth int) (vdom.Mapping, error) {
	var m vdom.Mapping
	for d.dec.More() {
		if m.Len() >= d.limits.CollectionCount {
			return m, ErrCollectionTooLarge
		}
		tok, err := d.next()
		if err != nil {
			return m, err
		}
		key, ok := tok.(string)
		if !ok {
			return m, fmt.Errorf("protocol: decode: object key %v", tok)
		}
		tok, err = d.next()
		if err != nil {
			return m, err
		}
		value, err := d.decodeValue(tok, depth+1)
		if err != nil {
			return m, err
		}
		m.Set(key, value)
	}
	// closing '}'
	if _, err := d.next(); err != nil {
		return m, err
	}
	return m, nil
}

// toElement rebuilds an Element from an object tagged with ElementMarker.
// Untagged objects are returned as plain mappings.
func toElement(m vdom.Mapping) (vdom.Node, error) {
	typeof, ok := m.Get(keyTypeof)
	if !ok || !isMarker(typeof, vdom.ElementMarker) {
		return m, nil
	}

	var el vdom.Element

	typ, _ := m.Get(keyType)
	p, _ := typ.(vdom.Primitive)
	switch v := p.Value.(type) {
	case vdom.Marker:
		if v != vdom.FragmentMarker {
			return nil, fmt.Errorf("%w: type %v", ErrInvalidElement, v)
		}
		el.Tag.Fragment = true
	case string:
		if v == "" {
			return nil, fmt.Errorf("%w: empty type", ErrInvalidElement)
		}
		el.Tag.Name = v
	default:
		return nil, fmt.Errorf("%w: type must be a string or fragment", ErrInvalidElement)
	}

	if key, ok := m.Get(keyKey); ok {
		kp, _ := key.(vdom.Primitive)
		switch v := kp.Value.(type) {
		case nil:
		case string:
			el.Key = v
		default:
			return nil, fmt.Errorf("%w: key must be a string or null", ErrInvalidElement)
		}
	}

	if props, ok := m.Get(keyProps); ok {
		switch v := props.(type) {
		case vdom.Mapping:
			el.Props = v
		case vdom.Primitive:
			if v.Value != nil {
				return nil, fmt.Errorf("%w: props must be an object", ErrInvalidElement)
			}
		default:
			return nil, fmt.Errorf("%w: props must be an object", ErrInvalidElement)
		}
	}

	return el, nil
}

func isMarker(n vdom.Node, want vdom.Marker) bool {
	p, ok := n.(vdom.Primitive)
	if !ok {
		return false
	}
	m, ok := p.Value.(vdom.Marker)
	return ok && m == want
}
