package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/rsc/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderPrimitives(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node vdom.Node
		want string
	}{
		{"integer", vdom.Value(2024), "2024"},
		{"decimal", vdom.Value(1.5), "1.5"},
		{"true", vdom.Value(true), ""},
		{"null", vdom.Null, ""},
		{"nil", nil, ""},
		{"sequence", vdom.Sequence{vdom.Text("a"), vdom.Value(1), vdom.Null, vdom.Text("b")}, "a1b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.H1("Title"),
		vdom.P("Content"),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderFragment(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Fragment(vdom.Key("/"), vdom.H1("a"), vdom.Fragment(vdom.P("b"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<h1>a</h1><p>b</p>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderVoidElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Nav(vdom.Hr(), vdom.Input(), vdom.Img(vdom.Src("/a.png"), vdom.Width(400))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<nav><hr><input><img src="/a.png" width="400"></nav>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node vdom.Node
		want string
	}{
		{
			name: "label for",
			node: vdom.Label(vdom.For("newComment"), "New Comment"),
			want: `<label for="newComment">New Comment</label>`,
		},
		{
			name: "textarea default value",
			node: vdom.Textarea(vdom.ID("c"), vdom.Rows(5), vdom.DefaultValue("What are <your> thoughts?")),
			want: `<textarea id="c" rows="5">What are &lt;your&gt; thoughts?</textarea>`,
		},
		{
			name: "input default value",
			node: vdom.Input(vdom.DefaultValue("x")),
			want: `<input value="x">`,
		},
		{
			name: "boolean attribute",
			node: vdom.Input(vdom.Prop("disabled", true), vdom.Prop("required", false)),
			want: `<input disabled>`,
		},
		{
			name: "data boolean",
			node: vdom.Div(vdom.Prop("data-open", false)),
			want: `<div data-open="false"></div>`,
		},
		{
			name: "attribute escaping",
			node: vdom.A(vdom.Href(`/x?a=1&b="2"`), "x"),
			want: `<a href="/x?a=1&amp;b=&quot;2&quot;">x</a>`,
		},
		{
			name: "node props skipped",
			node: vdom.Div(vdom.Prop("slot", vdom.Span("hidden")), vdom.Prop("nothing", nil)),
			want: `<div></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderStyle(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Label(vdom.Style("display", "block", "marginBottom", 16), "x")
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<label style="display:block;margin-bottom:16px">x</label>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderRejectsComponent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	c := vdom.Func("Post", func(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
		return vdom.Null, nil
	})

	_, err := renderer.RenderToString(vdom.Div(vdom.Comp(c)))
	if !errors.Is(err, ErrUnresolvedComponent) {
		t.Errorf("error = %v, want ErrUnresolvedComponent", err)
	}
}

func TestRenderRejectsMappingChild(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	var m vdom.Mapping
	m.Set("a", vdom.Value(1))

	_, err := renderer.RenderToString(vdom.Div(m))
	if !errors.Is(err, ErrInvalidChild) {
		t.Errorf("error = %v, want ErrInvalidChild", err)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	html, err := renderer.RenderToString(vdom.Ul(vdom.Li("a"), vdom.Li(vdom.Em("b"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<ul>\n  <li>a</li>\n  <li>\n    <em>b</em>\n  </li>\n</ul>\n"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}
