package blog

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	rscerrors "github.com/vango-dev/rsc/internal/errors"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// Route returns the raw tree for u: the index at "/", a post page for any
// path without a '.', and ErrRouteNotFound otherwise. The page sits in a
// Fragment keyed by the path inside the layout.
func (b *Blog) Route(ctx context.Context, u *url.URL) (vdom.Node, error) {
	path := u.Path
	if path == "" {
		path = "/"
	}

	var page vdom.Node
	switch {
	case path == "/":
		page = vdom.Comp(b.index)
	case !strings.Contains(path, "."):
		slug := SlugFromPath(path)
		if slug == "" {
			return nil, rscerrors.New(rscerrors.CodeRouteNotFound)
		}
		page = vdom.Comp(b.postPage, vdom.Prop("postSlug", slug))
	default:
		return nil, rscerrors.New(rscerrors.CodeRouteNotFound)
	}

	return vdom.Comp(b.layout, vdom.Fragment(vdom.Key(path), page)), nil
}

// SlugFromPath returns the sanitised slug for a route path.
func SlugFromPath(path string) string {
	return SanitizeSlug(strings.TrimPrefix(path, "/"))
}

// maxSlugBytes is the longest file name most filesystems accept.
const maxSlugBytes = 255

var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// SanitizeSlug turns s into a safe file stem: path separators, reserved
// punctuation and control characters are removed, "." and ".." and device
// names become empty, trailing dots and spaces are trimmed, and the result
// is cut to 255 bytes.
func SanitizeSlug(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x20, r >= 0x80 && r <= 0x9f:
			continue
		case strings.ContainsRune(`/\?<>:*|"`, r):
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	if out == "." || out == ".." {
		return ""
	}
	if reservedNames[strings.ToLower(strings.SplitN(out, ".", 2)[0])] {
		return ""
	}
	out = strings.TrimRight(out, ". ")

	for len(out) > maxSlugBytes {
		_, size := utf8.DecodeLastRuneInString(out)
		out = out[:len(out)-size]
	}
	return out
}
