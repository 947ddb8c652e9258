package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/vango-dev/rsc/pkg/vdom"
)

var (
	// ErrUnresolvedComponent is returned when a tree still references a
	// component. Only client trees can be rendered.
	ErrUnresolvedComponent = errors.New("render: unresolved component")

	// ErrInvalidChild is returned for mappings placed where content is
	// expected, and for elements without a tag.
	ErrInvalidChild = errors.New("render: invalid child")
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used for terminal output as it changes whitespace.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer writes client trees as HTML. A Renderer holds configuration only
// and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a client tree to an HTML string.
func (r *Renderer) RenderToString(node vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a client tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node vdom.Node) error {
	s := &state{r: r, w: w}
	return s.renderNode(node, 0)
}

// state carries per-call rendering state.
type state struct {
	r *Renderer
	w io.Writer

	// beforeBodyEnd, when set, runs right before </body> is written.
	beforeBodyEnd func(io.Writer) error
	bodyClosed    bool
}

func (s *state) write(str string) error {
	_, err := io.WriteString(s.w, str)
	return err
}

// renderNode dispatches rendering based on node kind.
func (s *state) renderNode(node vdom.Node, depth int) error {
	switch n := node.(type) {
	case nil:
		return nil
	case vdom.Primitive:
		return s.renderPrimitive(n)
	case vdom.Sequence:
		for _, child := range n {
			if err := s.renderNode(child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.Mapping:
		return fmt.Errorf("%w: mapping with keys %v", ErrInvalidChild, n.Keys())
	case vdom.Element:
		switch {
		case n.Tag.Component != nil:
			return fmt.Errorf("%w: %s", ErrUnresolvedComponent, n.Tag.Component.Name())
		case n.Tag.Fragment:
			return s.renderNode(n.Children(), depth)
		case n.Tag.Name == "":
			return fmt.Errorf("%w: element without tag", ErrInvalidChild)
		}
		return s.renderElement(n, depth)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidChild, node)
	}
}

// renderPrimitive writes text content. Booleans and null render nothing.
func (s *state) renderPrimitive(p vdom.Primitive) error {
	switch v := p.Value.(type) {
	case string:
		return s.write(escapeHTML(v))
	case float64:
		return s.write(formatNumber(v))
	default:
		return nil
	}
}

// renderElement renders an HTML element with its attributes and children.
func (s *state) renderElement(el vdom.Element, depth int) error {
	tag := el.Tag.Name
	pretty := s.r.config.Pretty

	if pretty && depth > 0 {
		s.writeIndent(depth)
	}

	if err := s.write("<" + tag); err != nil {
		return err
	}
	if err := s.renderAttributes(el); err != nil {
		return err
	}
	if err := s.write(">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if pretty {
			return s.write("\n")
		}
		return nil
	}

	children := el.Children()

	// An uncontrolled textarea carries its initial text as content.
	if tag == "textarea" && children == nil {
		if v, ok := el.Props.Get("defaultValue"); ok {
			children = v
		}
	}

	hasBlockChildren := hasElementChild(children) && !isInlineElement(tag)
	if pretty && hasBlockChildren {
		if err := s.write("\n"); err != nil {
			return err
		}
	}

	if err := s.renderNode(children, depth+1); err != nil {
		return err
	}

	if pretty && hasBlockChildren {
		s.writeIndent(depth)
	}

	if tag == "body" && s.beforeBodyEnd != nil && !s.bodyClosed {
		s.bodyClosed = true
		if err := s.beforeBodyEnd(s.w); err != nil {
			return err
		}
	}

	if err := s.write("</" + tag + ">"); err != nil {
		return err
	}
	if pretty {
		return s.write("\n")
	}
	return nil
}

// renderAttributes renders props as attributes in prop order.
func (s *state) renderAttributes(el vdom.Element) error {
	for _, entry := range el.Props.Entries {
		key := entry.Key

		switch key {
		case "children", "key", "ref":
			continue
		case "className":
			key = "class"
		case "htmlFor":
			key = "for"
		case "defaultValue":
			if el.Tag.Name == "textarea" {
				continue
			}
			key = "value"
		case "defaultChecked":
			key = "checked"
		case "style":
			if m, ok := entry.Value.(vdom.Mapping); ok {
				css := styleToCSS(m)
				if css != "" {
					if err := s.write(` style="` + escapeAttr(css) + `"`); err != nil {
						return err
					}
				}
				continue
			}
		}

		// Nodes riding in props are data for the client, not attributes.
		p, ok := entry.Value.(vdom.Primitive)
		if !ok {
			continue
		}

		switch v := p.Value.(type) {
		case bool:
			if isBooleanAttr(key) {
				if v {
					if err := s.write(" " + key); err != nil {
						return err
					}
				}
				continue
			}
			if isDataOrARIA(key) {
				if err := s.write(` ` + key + `="` + strconv.FormatBool(v) + `"`); err != nil {
					return err
				}
			}
		case string:
			if err := s.write(` ` + key + `="` + escapeAttr(v) + `"`); err != nil {
				return err
			}
		case float64:
			if err := s.write(` ` + key + `="` + formatNumber(v) + `"`); err != nil {
				return err
			}
		}
	}
	return nil
}

// hasElementChild reports whether content holds at least one markup element.
func hasElementChild(n vdom.Node) bool {
	switch c := n.(type) {
	case vdom.Element:
		if c.Tag.Fragment {
			return hasElementChild(c.Children())
		}
		return true
	case vdom.Sequence:
		for _, item := range c {
			if hasElementChild(item) {
				return true
			}
		}
	}
	return false
}

// formatNumber formats a number the way a JavaScript runtime prints it for
// integral and ordinary decimal values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeIndent writes indentation for pretty printing.
func (s *state) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(s.w, s.r.config.Indent)
	}
}
