package vdom

import "strings"

// Attr represents a single prop.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Prop sets an arbitrary prop. The value may be a Node, letting nodes ride
// inside the props of another element.
func Prop(key string, value any) Attr { return attr(key, value) }

// Key sets the element key used for identity by the rendering layer.
func Key(key string) Attr { return attr("key", key) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the className prop, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Style sets the style prop from alternating name/value pairs, keeping order.
// Example: Style("display", "block", "marginBottom", 16)
func Style(pairs ...any) Attr {
	var m Mapping
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		m.Set(name, toNode(pairs[i+1]))
	}
	return attr("style", m)
}

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// For sets the htmlFor prop.
func For(id string) Attr { return attr("htmlFor", id) }

// Rows sets the rows attribute.
func Rows(n int) Attr { return attr("rows", n) }

// Cols sets the cols attribute.
func Cols(n int) Attr { return attr("cols", n) }

// DefaultValue sets the uncontrolled initial value of a form control.
func DefaultValue(v string) Attr { return attr("defaultValue", v) }

// Method sets the method attribute.
func Method(m string) Attr { return attr("method", m) }
