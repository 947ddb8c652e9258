package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new Element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Node, []Node, Component, string,
// or a number/bool scalar. Non-attribute arguments become children.
func createElement(tag Tag, args []any) Element {
	el := Element{Tag: tag}
	var children []Node

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional children)
			continue

		case Attr:
			el.applyAttr(v)

		case []Attr:
			for _, a := range v {
				el.applyAttr(a)
			}

		case Node:
			children = append(children, v)

		case []Node:
			children = append(children, Sequence(v))

		case []Element:
			seq := make(Sequence, len(v))
			for i, c := range v {
				seq[i] = c
			}
			children = append(children, seq)

		case Component:
			children = append(children, Element{Tag: Tag{Component: v}})

		case string:
			children = append(children, Text(v))

		default:
			children = append(children, Value(v))
		}
	}

	switch len(children) {
	case 0:
	case 1:
		el.Props.Set("children", children[0])
	default:
		el.Props.Set("children", Sequence(children))
	}

	return el
}

// applyAttr writes an attribute into the element's props.
// The "key" attribute sets the element key instead of a prop.
func (e *Element) applyAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			e.Key = s
		}
		return
	}
	e.Props.Set(a.Key, toNode(a.Value))
}

// toNode converts an attribute value into a Node.
func toNode(v any) Node {
	switch x := v.(type) {
	case Node:
		return x
	case []Node:
		return Sequence(x)
	default:
		return Value(v)
	}
}

// H creates an element with a literal tag name.
func H(tag string, args ...any) Element { return createElement(Tag{Name: tag}, args) }

// Fragment groups children without a wrapper element.
func Fragment(args ...any) Element { return createElement(Tag{Fragment: true}, args) }

// Comp creates an element that invokes the component with the given props.
func Comp(c Component, args ...any) Element { return createElement(Tag{Component: c}, args) }

// Document structure
func Html(args ...any) Element  { return H("html", args...) }
func Head(args ...any) Element  { return H("head", args...) }
func Body(args ...any) Element  { return H("body", args...) }
func Title(args ...any) Element { return H("title", args...) }
func Meta(args ...any) Element  { return H("meta", args...) }

// Sectioning
func Header(args ...any) Element  { return H("header", args...) }
func Footer(args ...any) Element  { return H("footer", args...) }
func Main(args ...any) Element    { return H("main", args...) }
func Nav(args ...any) Element     { return H("nav", args...) }
func Section(args ...any) Element { return H("section", args...) }
func Article(args ...any) Element { return H("article", args...) }
func H1(args ...any) Element      { return H("h1", args...) }
func H2(args ...any) Element      { return H("h2", args...) }
func H3(args ...any) Element      { return H("h3", args...) }
func H4(args ...any) Element      { return H("h4", args...) }
func H5(args ...any) Element      { return H("h5", args...) }
func H6(args ...any) Element      { return H("h6", args...) }

// Grouping content
func Div(args ...any) Element        { return H("div", args...) }
func P(args ...any) Element          { return H("p", args...) }
func Pre(args ...any) Element        { return H("pre", args...) }
func Blockquote(args ...any) Element { return H("blockquote", args...) }
func Ul(args ...any) Element         { return H("ul", args...) }
func Ol(args ...any) Element         { return H("ol", args...) }
func Li(args ...any) Element         { return H("li", args...) }
func Hr(args ...any) Element         { return H("hr", args...) }
func Figure(args ...any) Element     { return H("figure", args...) }
func Figcaption(args ...any) Element { return H("figcaption", args...) }

// Text-level semantics
func A(args ...any) Element      { return H("a", args...) }
func Span(args ...any) Element   { return H("span", args...) }
func Em(args ...any) Element     { return H("em", args...) }
func Strong(args ...any) Element { return H("strong", args...) }
func I(args ...any) Element      { return H("i", args...) }
func Code(args ...any) Element   { return H("code", args...) }
func Br(args ...any) Element     { return H("br", args...) }
func Del(args ...any) Element    { return H("del", args...) }

// Embedded content
func Img(args ...any) Element { return H("img", args...) }

// Forms
func Form(args ...any) Element     { return H("form", args...) }
func Label(args ...any) Element    { return H("label", args...) }
func Input(args ...any) Element    { return H("input", args...) }
func Textarea(args ...any) Element { return H("textarea", args...) }
func Button(args ...any) Element   { return H("button", args...) }
