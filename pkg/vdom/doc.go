// Package vdom provides the tree node model shared by the resolver, the wire
// codec, the renderer and the navigator.
//
// # Core Types
//
// Node is a tagged union with four variants:
//
//   - Primitive: string, number (float64), bool or null
//   - Sequence: ordered list of nodes
//   - Mapping: ordered string-keyed collection of nodes
//   - Element: a tag, an optional key and props
//
// An Element's tag is a literal markup name, the Fragment marker, or, before
// resolution only, a Component. Children live in the "children" prop.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), Key("main"),
//	    H1("Title"),
//	    P("Content"),
//	    Comp(Comments, Prop("postSlug", slug)),
//	)
//
// # Client Trees
//
// A tree in which no Component reference remains is a client tree. Only
// client trees may be encoded or rendered; ContainsComponent checks this.
package vdom
