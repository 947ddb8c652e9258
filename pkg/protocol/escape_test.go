package protocol

import (
	"testing"

	"github.com/vango-dev/rsc/pkg/vdom"
)

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"element marker", vdom.ElementMarker, "$RE"},
		{"fragment marker", vdom.FragmentMarker, "$RF"},
		{"plain string", "hello", "hello"},
		{"dollar", "$", "$$"},
		{"user RE", "$RE", "$$RE"},
		{"double dollar", "$$x", "$$$x"},
		{"number", 1.5, 1.5},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeValue(tt.in); got != tt.want {
				t.Errorf("EscapeValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapeValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"$RE", vdom.ElementMarker},
		{"$RF", vdom.FragmentMarker},
		{"$$RE", "$RE"},
		{"$$", "$"},
		{"$$$x", "$$x"},
		{"$x", "$x"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := UnescapeValue(tt.in); got != tt.want {
				t.Errorf("UnescapeValue(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeInverse(t *testing.T) {
	for _, s := range []string{"", "a", "$", "$$", "$RE", "$RF", "$$RE", "$$$", "x$RE"} {
		got := UnescapeValue(EscapeValue(s).(string))
		if got != s {
			t.Errorf("round trip %q = %v", s, got)
		}
	}
}
