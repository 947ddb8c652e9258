package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// classPrefix namespaces token classes so page styles can target them.
const classPrefix = "hl-"

// highlight renders code as <pre><code> with one span per token that
// carries a highlight class. Unknown languages fall back to plain text.
func highlight(lang, code string) vdom.Node {
	lang = strings.ToLower(strings.TrimSpace(lang))

	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	codeArgs := []any{}
	if lang != "" {
		codeArgs = append(codeArgs, vdom.Class("language-"+lang))
	}
	if lexer == nil {
		return vdom.Pre(vdom.Code(append(codeArgs, code)...))
	}

	iter, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return vdom.Pre(vdom.Code(append(codeArgs, code)...))
	}

	var tokens []vdom.Node
	for tok := iter(); tok != chroma.EOF; tok = iter() {
		cls := tokenClass(tok.Type)
		if cls == "" {
			tokens = appendMerged(tokens, vdom.Text(tok.Value))
			continue
		}
		tokens = append(tokens, vdom.Span(vdom.Class(classPrefix+cls), tok.Value))
	}
	return vdom.Pre(vdom.Code(append(codeArgs, nodeArgs(tokens)...)...))
}

// tokenClass returns the short class for t, falling back to its
// sub-category and category. Plain text and whitespace have no class.
func tokenClass(t chroma.TokenType) string {
	if t == chroma.Text || t == chroma.TextWhitespace {
		return ""
	}
	for _, tt := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if cls, ok := chroma.StandardTypes[tt]; ok && cls != "" {
			return cls
		}
	}
	return ""
}
