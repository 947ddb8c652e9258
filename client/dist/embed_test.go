package clientdist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/rsc/pkg/protocol"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// The runtime's reviver must mirror protocol.UnescapeValue.
func TestClientJSMatchesWireFormat(t *testing.T) {
	js := string(ClientJS)

	want := []string{
		fmt.Sprintf("var ELEMENT_TAG = '%s';", protocol.ElementTag),
		fmt.Sprintf("var FRAGMENT_TAG = '%s';", protocol.FragmentTag),
		"var ELEMENT = Symbol.for('rsc.element');",
		"var FRAGMENT = Symbol.for('rsc.fragment');",
		"if (value === ELEMENT_TAG) return ELEMENT;",
		"if (value === FRAGMENT_TAG) return FRAGMENT;",
		"if (value.startsWith('$$')) return value.slice(1);",
		"node.$$typeof === ELEMENT",
		"node.type === FRAGMENT",
	}
	for _, w := range want {
		if !strings.Contains(js, w) {
			t.Errorf("client.js is missing %q", w)
		}
	}
}

// The cases the reviver distinguishes, pinned against the Go decoder.
func TestUnescapeCasesHandledByClientJS(t *testing.T) {
	tests := []struct {
		wire string
		want any
	}{
		{"$RE", vdom.ElementMarker},
		{"$RF", vdom.FragmentMarker},
		{"$$RE", "$RE"},
		{"$$x", "$x"},
		{"$x", "$x"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			if got := protocol.UnescapeValue(tt.wire); got != tt.want {
				t.Errorf("UnescapeValue(%q) = %#v, want %#v", tt.wire, got, tt.want)
			}
		})
	}
}
