package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// DefaultClientScript is the path of the browser runtime.
const DefaultClientScript = "/client.js"

// InitialTreeGlobal is the window property holding the encoded tree of the
// first page load.
const InitialTreeGlobal = "__INITIAL_CLIENT_TREE__"

// Document contains everything needed to render a first-load page.
type Document struct {
	// Tree is the resolved client tree, usually rooted at an html element.
	Tree vdom.Node

	// Encoded is the wire form of Tree, embedded for the client to bootstrap
	// without a second request.
	Encoded []byte

	// ClientScript is the path to the runtime script.
	// Defaults to DefaultClientScript if not specified.
	ClientScript string
}

// RenderDocument renders a complete HTML document to the given writer.
// The bootstrap scripts are placed right before </body>, or after the tree
// when it has no body element.
func (r *Renderer) RenderDocument(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
		return err
	}
	if r.config.Pretty {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	s := &state{r: r, w: w, beforeBodyEnd: doc.writeBootstrap}
	if err := s.renderNode(doc.Tree, 0); err != nil {
		return err
	}
	if !s.bodyClosed {
		return doc.writeBootstrap(w)
	}
	return nil
}

// writeBootstrap writes the embedded tree and the runtime script tag.
func (doc Document) writeBootstrap(w io.Writer) error {
	src := doc.ClientScript
	if src == "" {
		src = DefaultClientScript
	}

	if _, err := fmt.Fprintf(w, "<script>window.%s=%s</script>", InitialTreeGlobal, scriptString(string(doc.Encoded))); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, `<script src="%s" defer></script>`, escapeAttr(src))
	return err
}
