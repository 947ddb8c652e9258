package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vango-dev/rsc/pkg/vdom"
)

func TestRenderEscapesPropValues(t *testing.T) {
	tests := []struct {
		name string
		node vdom.Node
		want string
	}{
		{
			name: "quote and newline in prop",
			node: vdom.Div(vdom.Prop("title", "say \"hi\"\n<now>")),
			want: `<div title="say &quot;hi&quot;&#10;&lt;now&gt;"></div>`,
		},
		{
			name: "className cannot break out",
			node: vdom.Div(vdom.Class(`x" onclick="alert(1)`)),
			want: `<div class="x&quot; onclick=&quot;alert(1)"></div>`,
		},
		{
			name: "data attribute with ampersand",
			node: vdom.Span(vdom.Prop("data-q", "a&b"), "x"),
			want: `<span data-q="a&amp;b">x</span>`,
		},
		{
			name: "style value",
			node: vdom.Div(vdom.Style("fontFamily", `"Fira" & co`)),
			want: `<div style="font-family:&quot;Fira&quot; &amp; co"></div>`,
		},
		{
			name: "text and attribute in one element",
			node: vdom.P(vdom.Prop("lang", "it's"), "it's <b>"),
			want: `<p lang="it&#39;s">it&#39;s &lt;b&gt;</p>`,
		},
		{
			name: "dollar strings render verbatim",
			node: vdom.P(vdom.Prop("title", "$RE"), "$$x"),
			want: `<p title="$RE">$$x</p>`,
		},
	}

	renderer := NewRenderer(RendererConfig{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScriptString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"closing script tag", `{"x":"</script><script>alert(1)</script>"}`},
		{"html comment", `"<!--"`},
		{"ampersand", `"a&b"`},
		{"line separators", "a\u2028b\u2029c"},
		{"escaped dollar", `"$$RE"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scriptString(tt.input)
			if strings.ContainsAny(got, "<>&\u2028\u2029") {
				t.Errorf("scriptString() = %s, want no raw <, >, & or line separators", got)
			}
			var back string
			if err := json.Unmarshal([]byte(got), &back); err != nil {
				t.Fatalf("scriptString() = %s is not a string literal: %v", got, err)
			}
			if back != tt.input {
				t.Errorf("literal evaluates to %q, want %q", back, tt.input)
			}
		})
	}
}

func BenchmarkEscapeAttr(b *testing.B) {
	s := `value="test" with 'quotes' & newlines
and tabs	here`
	for i := 0; i < b.N; i++ {
		escapeAttr(s)
	}
}
