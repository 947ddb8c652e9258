package protocol

import (
	"strings"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// Wire spellings of the sentinel markers.
const (
	ElementTag  = "$RE"
	FragmentTag = "$RF"
)

// Element object keys, in wire order.
const (
	keyTypeof = "$$typeof"
	keyType   = "type"
	keyKey    = "key"
	keyRef    = "ref"
	keyProps  = "props"
)

// EscapeValue is the substitution applied to every value while encoding.
func EscapeValue(v any) any {
	switch x := v.(type) {
	case vdom.Marker:
		switch x {
		case vdom.ElementMarker:
			return ElementTag
		case vdom.FragmentMarker:
			return FragmentTag
		}
		return v
	case string:
		if strings.HasPrefix(x, "$") {
			return "$" + x
		}
		return x
	default:
		return v
	}
}

// UnescapeValue is the substitution applied to every string while decoding.
func UnescapeValue(s string) any {
	switch {
	case s == ElementTag:
		return vdom.ElementMarker
	case s == FragmentTag:
		return vdom.FragmentMarker
	case strings.HasPrefix(s, "$$"):
		return s[1:]
	default:
		return s
	}
}
