package render

import (
	"strings"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// unitlessProperties take bare numbers; every other numeric value except
// zero gets a px suffix.
var unitlessProperties = map[string]bool{
	"animationIterationCount": true,
	"aspectRatio":             true,
	"columnCount":             true,
	"columns":                 true,
	"flex":                    true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"gridColumn":              true,
	"gridRow":                 true,
	"lineClamp":               true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

// styleToCSS converts a style mapping into declaration text, keeping order.
// Null, boolean and empty-string values are skipped.
func styleToCSS(m vdom.Mapping) string {
	var b strings.Builder
	for _, e := range m.Entries {
		p, ok := e.Value.(vdom.Primitive)
		if !ok {
			continue
		}

		var value string
		switch v := p.Value.(type) {
		case string:
			value = strings.TrimSpace(v)
		case float64:
			value = formatNumber(v)
			if v != 0 && !unitlessProperties[e.Key] && !strings.HasPrefix(e.Key, "--") {
				value += "px"
			}
		}
		if value == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(cssName(e.Key))
		b.WriteByte(':')
		b.WriteString(value)
	}
	return b.String()
}

// cssName converts a camelCase property to its hyphenated form.
// Custom properties are kept verbatim and the ms vendor prefix gains its
// leading hyphen: msTransition → -ms-transition.
func cssName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	if strings.HasPrefix(name, "ms") && len(name) > 2 && isUpper(name[2]) {
		b.WriteByte('-')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUpper(c) {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
