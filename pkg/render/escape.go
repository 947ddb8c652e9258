package render

import (
	"encoding/json"
	"strings"
)

// htmlReplacer escapes text for safe inclusion in HTML content.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrReplacer additionally escapes whitespace that could break attribute
// parsing.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// escapeAttr escapes an attribute value.
func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}

// scriptString returns s as a JavaScript string literal that is safe inside
// a <script> element. json.Marshal writes every '<', '>' and '&' as a
// \u00XX escape, along with U+2028 and U+2029, so the payload can never
// close the element.
func scriptString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
