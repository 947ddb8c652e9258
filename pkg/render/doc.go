// Package render provides server-side rendering of client trees to HTML.
//
// The render package converts resolved trees into HTML strings or streams,
// handling:
//
//   - HTML5 compliant element rendering
//   - Proper text and attribute escaping (XSS prevention)
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, checked, etc.)
//   - Prop mapping (className, htmlFor, style objects, defaultValue)
//   - Full document rendering with the embedded client tree
//
// # Basic Usage
//
// To render a client tree to a string:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(tree)
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, tree)
//
// # Documents
//
// A first page load carries the encoded tree so the browser runtime can
// bootstrap its route cache without another request:
//
//	err := renderer.RenderDocument(w, render.Document{
//	    Tree:    tree,
//	    Encoded: encoded,
//	})
//
// # Client Trees Only
//
// The renderer never invokes components. A tree that still references one
// fails with ErrUnresolvedComponent; resolve it first.
package render
