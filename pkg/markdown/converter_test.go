package markdown

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/rsc/internal/logging"
	"github.com/vango-dev/rsc/pkg/resolve"
	"github.com/vango-dev/rsc/pkg/vdom"
)

func newTestConverter(p Prober) *Converter {
	return NewConverter(WithProber(p), WithLogger(logging.NewNop()))
}

func fixedProber(w, h int) Prober {
	return ProberFunc(func(context.Context, string) (Size, error) {
		return Size{Width: w, Height: h}, nil
	})
}

func TestConvertBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want vdom.Node
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello *world* and **bold**.\n",
			want: vdom.Fragment(
				vdom.H1("Title"),
				vdom.P("Hello ", vdom.Em("world"), " and ", vdom.Strong("bold"), "."),
			),
		},
		{
			name: "tight list",
			src:  "- a\n- b\n",
			want: vdom.Fragment(vdom.Ul(vdom.Li("a"), vdom.Li("b"))),
		},
		{
			name: "blockquote",
			src:  "> quoted\n",
			want: vdom.Fragment(vdom.Blockquote(vdom.P("quoted"))),
		},
		{
			name: "link with title",
			src:  "[home](/ \"Home\")\n",
			want: vdom.Fragment(vdom.P(vdom.A(vdom.Href("/"), vdom.Prop("title", "Home"), "home"))),
		},
		{
			name: "thematic break",
			src:  "a\n\n***\n",
			want: vdom.Fragment(vdom.P("a"), vdom.Hr()),
		},
		{
			name: "strikethrough",
			src:  "~~gone~~\n",
			want: vdom.Fragment(vdom.P(vdom.Del("gone"))),
		},
		{
			name: "code span",
			src:  "run `go test`\n",
			want: vdom.Fragment(vdom.P("run ", vdom.Code("go test"))),
		},
		{
			name: "raw html dropped",
			src:  "<div>x</div>\n\ntext\n",
			want: vdom.Fragment(vdom.P("text")),
		},
		{
			name: "unknown language",
			src:  "```nosuchlang\nx\n```\n",
			want: vdom.Fragment(vdom.Pre(vdom.Code(vdom.Class("language-nosuchlang"), "x\n"))),
		},
	}

	c := newTestConverter(fixedProber(1, 1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert([]byte(tt.src))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if !vdom.Equal(got, tt.want) {
				t.Errorf("Convert(%q)\n got: %#v\nwant: %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestConvertHighlightsCode(t *testing.T) {
	c := newTestConverter(fixedProber(1, 1))
	src := "```go\npackage main\n\nfunc main() {}\n```\n"

	got, err := c.Convert([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	pre := onlyChild(t, got)
	if pre.Tag.Name != "pre" {
		t.Fatalf("block = %s, want pre", pre.Tag)
	}
	code, ok := pre.Children().(vdom.Element)
	if !ok || code.Tag.Name != "code" {
		t.Fatalf("pre child = %#v", pre.Children())
	}
	if cls, _ := code.Props.String("className"); cls != "language-go" {
		t.Errorf("className = %q", cls)
	}

	spans := 0
	vdom.Walk(code.Children(), func(n vdom.Node) bool {
		if el, ok := n.(vdom.Element); ok && el.Tag.Name == "span" {
			cls, _ := el.Props.String("className")
			if !strings.HasPrefix(cls, classPrefix) {
				t.Errorf("span class %q lacks prefix", cls)
			}
			spans++
		}
		return true
	})
	if spans == 0 {
		t.Error("no highlighted tokens")
	}
	if text := textOf(code.Children()); text != "package main\n\nfunc main() {}\n" {
		t.Errorf("code text = %q", text)
	}
}

func TestConvertImageParagraphBecomesFragment(t *testing.T) {
	c := newTestConverter(fixedProber(640, 480))

	got, err := c.Convert([]byte("![a cat](https://example.com/cat.png)\n"))
	if err != nil {
		t.Fatal(err)
	}
	block := onlyChild(t, got)
	if !block.Tag.Fragment {
		t.Fatalf("image paragraph = %s, want Fragment", block.Tag)
	}
	img, ok := block.Children().(vdom.Element)
	if !ok || !img.Tag.IsComponent() || img.Tag.Component.Name() != "Image" {
		t.Fatalf("fragment child = %#v", block.Children())
	}
	if src, _ := img.Props.String("src"); src != "https://example.com/cat.png" {
		t.Errorf("src = %q", src)
	}
	if alt, _ := img.Props.String("alt"); alt != "a cat" {
		t.Errorf("alt = %q", alt)
	}

	// A paragraph that merely contains an image stays a paragraph.
	got, _ = c.Convert([]byte("see ![x](https://example.com/x.png)\n"))
	if p := onlyChild(t, got); p.Tag.Name != "p" {
		t.Errorf("mixed paragraph = %s, want p", p.Tag)
	}
}

func TestConvertResolves(t *testing.T) {
	c := newTestConverter(fixedProber(640, 480))
	tree, err := c.Convert([]byte("# Cats\n\n![cat](https://example.com/cat.png)\n"))
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := resolve.Resolve(context.Background(), tree)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if vdom.ContainsComponent(resolved) {
		t.Fatal("resolved tree still holds components")
	}
	if text := textOf(resolved); !strings.Contains(text, "Width: 640, Height: 480") {
		t.Errorf("resolved text = %q", text)
	}
}

func onlyChild(t *testing.T, n vdom.Node) vdom.Element {
	t.Helper()
	frag, ok := n.(vdom.Element)
	if !ok || !frag.Tag.Fragment {
		t.Fatalf("Convert() = %#v, want Fragment", n)
	}
	el, ok := frag.Children().(vdom.Element)
	if !ok {
		t.Fatalf("fragment child = %#v, want one element", frag.Children())
	}
	return el
}

func textOf(n vdom.Node) string {
	var b strings.Builder
	vdom.Walk(n, func(n vdom.Node) bool {
		switch v := n.(type) {
		case vdom.Primitive:
			switch x := v.Value.(type) {
			case string:
				b.WriteString(x)
			case float64:
				b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
			}
		case vdom.Element:
			if c := v.Children(); c != nil {
				b.WriteString(textOf(c))
			}
			return false
		}
		return true
	})
	return b.String()
}
