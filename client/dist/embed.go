// Package clientdist embeds the browser runtime served at /client.js.
package clientdist

import _ "embed"

// ClientJS is the browser runtime. It revives the tree embedded in the first
// document, then intercepts links, history traversal and form submission,
// fetching encoded trees with ?jsx and re-rendering the page from them.
//
//go:embed client.js
var ClientJS []byte
