package render

import "strings"

func set(names string) map[string]bool {
	m := make(map[string]bool)
	for _, n := range strings.Fields(names) {
		m[n] = true
	}
	return m
}

// inlineElements stay on one line in pretty output.
var inlineElements = set(`
	a abbr b bdi bdo br button cite code data del dfn em i ins kbd label
	mark q rb rp rt rtc ruby s samp small span strong sub sup time u var wbr
`)

// booleanAttrs render as a bare name when true and are omitted when false.
var booleanAttrs = set(`
	allowfullscreen async autofocus autoplay checked controls default defer
	disabled formnovalidate hidden ismap itemscope loop multiple muted
	nomodule novalidate open playsinline readonly required reversed selected
`)

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// isDataOrARIA reports whether booleans on this attribute render as
// "true"/"false" strings.
func isDataOrARIA(name string) bool {
	return strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-")
}
