// Package markdown converts markdown posts into server trees.
//
// Block and inline markdown map onto plain elements. Fenced code is
// highlighted into class-tagged spans, and images become Image component
// elements so their dimensions are probed during resolution rather than at
// conversion time.
package markdown

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// Option configures a Converter.
type Option func(*Converter)

// WithProber sets the prober used by the Image component.
func WithProber(p Prober) Option {
	return func(c *Converter) {
		if p != nil {
			c.prober = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Converter turns markdown source into a vdom tree. It is safe for
// concurrent use.
type Converter struct {
	md     goldmark.Markdown
	prober Prober
	logger *slog.Logger
	image  *Image
}

// NewConverter creates a converter with strikethrough and bare-URL linking
// enabled.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		md:     goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
		prober: NewHTTPProber(nil),
		logger: slog.Default().With("component", "markdown"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.image = &Image{Prober: c.prober, Logger: c.logger}
	return c
}

// Convert parses source and returns a Fragment holding its blocks. Raw HTML
// is dropped.
func (c *Converter) Convert(source []byte) (vdom.Node, error) {
	doc := c.md.Parser().Parse(text.NewReader(source))
	w := &walker{c: c, source: source}
	children, err := w.children(doc)
	if err != nil {
		return nil, err
	}
	return vdom.Fragment(nodeArgs(children)...), nil
}

type walker struct {
	c      *Converter
	source []byte
}

func (w *walker) children(n ast.Node) ([]vdom.Node, error) {
	var out []vdom.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		node, err := w.node(child)
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		out = appendMerged(out, node)
	}
	return out, nil
}

func (w *walker) node(n ast.Node) (vdom.Node, error) {
	switch n := n.(type) {
	case *ast.Text:
		return w.text(n), nil
	case *ast.String:
		return vdom.Text(string(n.Value)), nil
	case *ast.RawHTML, *ast.HTMLBlock:
		return nil, nil
	case *ast.ThematicBreak:
		return vdom.Hr(), nil
	case *ast.CodeSpan:
		return vdom.Code(w.plain(n)), nil
	case *ast.FencedCodeBlock:
		return highlight(string(n.Language(w.source)), w.lines(n)), nil
	case *ast.CodeBlock:
		return highlight("", w.lines(n)), nil
	case *ast.AutoLink:
		url := string(n.URL(w.source))
		return vdom.A(vdom.Href(url), string(n.Label(w.source))), nil
	case *ast.Image:
		return w.imageElement(n), nil
	}

	kids, err := w.children(n)
	if err != nil {
		return nil, err
	}

	switch n := n.(type) {
	case *ast.Heading:
		if n.Level < 1 || n.Level > 6 {
			return nil, fmt.Errorf("markdown: heading level %d", n.Level)
		}
		return vdom.H("h"+strconv.Itoa(n.Level), nodeArgs(kids)...), nil
	case *ast.Paragraph:
		return paragraph(kids), nil
	case *ast.TextBlock:
		return sequenceOf(kids), nil
	case *ast.Emphasis:
		if n.Level >= 2 {
			return vdom.Strong(nodeArgs(kids)...), nil
		}
		return vdom.Em(nodeArgs(kids)...), nil
	case *east.Strikethrough:
		return vdom.Del(nodeArgs(kids)...), nil
	case *ast.Link:
		args := []any{vdom.Href(string(n.Destination))}
		if len(n.Title) > 0 {
			args = append(args, vdom.Prop("title", string(n.Title)))
		}
		return vdom.A(append(args, nodeArgs(kids)...)...), nil
	case *ast.Blockquote:
		return vdom.Blockquote(nodeArgs(kids)...), nil
	case *ast.List:
		if !n.IsOrdered() {
			return vdom.Ul(nodeArgs(kids)...), nil
		}
		args := nodeArgs(kids)
		if n.Start > 1 {
			args = append([]any{vdom.Prop("start", n.Start)}, args...)
		}
		return vdom.Ol(args...), nil
	case *ast.ListItem:
		return vdom.Li(nodeArgs(kids)...), nil
	default:
		return sequenceOf(kids), nil
	}
}

// paragraph renders a paragraph whose first child is a component as a
// Fragment so block-level component output is not nested inside <p>.
func paragraph(kids []vdom.Node) vdom.Node {
	if len(kids) > 0 {
		if el, ok := kids[0].(vdom.Element); ok && el.Tag.IsComponent() {
			return vdom.Fragment(nodeArgs(kids)...)
		}
	}
	return vdom.P(nodeArgs(kids)...)
}

func (w *walker) text(n *ast.Text) vdom.Node {
	s := string(n.Segment.Value(w.source))
	switch {
	case n.HardLineBreak():
		return vdom.Sequence{vdom.Text(s), vdom.Br()}
	case n.SoftLineBreak():
		s += "\n"
	}
	return vdom.Text(s)
}

func (w *walker) imageElement(n *ast.Image) vdom.Node {
	args := []any{vdom.Src(string(n.Destination))}
	if alt := w.plain(n); alt != "" {
		args = append(args, vdom.Alt(alt))
	}
	return vdom.Comp(w.c.image, args...)
}

// plain returns the concatenated text of n's descendants.
func (w *walker) plain(n ast.Node) string {
	var buf []byte
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf = append(buf, t.Segment.Value(w.source)...)
		case *ast.String:
			buf = append(buf, t.Value...)
		}
		return ast.WalkContinue, nil
	})
	return string(buf)
}

func (w *walker) lines(n ast.Node) string {
	var buf []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf = append(buf, seg.Value(w.source)...)
	}
	return string(buf)
}

// appendMerged appends node, flattening sequences and joining a string onto
// a preceding string so runs of text stay a single child.
func appendMerged(out []vdom.Node, node vdom.Node) []vdom.Node {
	if seq, ok := node.(vdom.Sequence); ok {
		for _, n := range seq {
			out = appendMerged(out, n)
		}
		return out
	}
	if p, ok := node.(vdom.Primitive); ok {
		if s, ok := p.Value.(string); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(vdom.Primitive); ok {
				if ps, ok := prev.Value.(string); ok {
					out[len(out)-1] = vdom.Text(ps + s)
					return out
				}
			}
		}
	}
	return append(out, node)
}

func sequenceOf(kids []vdom.Node) vdom.Node {
	switch len(kids) {
	case 0:
		return nil
	case 1:
		return kids[0]
	default:
		return vdom.Sequence(kids)
	}
}

func nodeArgs(nodes []vdom.Node) []any {
	args := make([]any, len(nodes))
	for i, n := range nodes {
		args[i] = n
	}
	return args
}
