package blog

import (
	"context"
	"fmt"
	"slices"

	"github.com/vango-dev/rsc/pkg/store"
	"github.com/vango-dev/rsc/pkg/vdom"
)

// CommentPlaceholder is the initial text of the comment textarea.
const CommentPlaceholder = "What are your thoughts?"

func (b *Blog) renderLayout(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	children, _ := props.Get("children")
	return vdom.Html(
		vdom.Head(vdom.Title(b.title)),
		vdom.Body(
			vdom.Style(
				"background", b.background(),
				"transition", "background .3s ease-in-out",
			),
			vdom.Nav(
				vdom.A(vdom.Href("/"), "Home"),
				vdom.Hr(),
				vdom.Input(),
				vdom.Hr(),
			),
			vdom.Main(children),
			vdom.Comp(b.footer, vdom.Prop("author", b.author)),
		),
	), nil
}

func (b *Blog) renderIndex(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	slugs, err := b.posts.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	return vdom.Fragment(
		vdom.H1("Welcome to my blog"),
		vdom.Div(vdom.Map(slugs, func(slug string) vdom.Node {
			return vdom.Comp(b.post, vdom.Key(slug), vdom.Prop("slug", slug))
		})),
	), nil
}

func (b *Blog) renderPostPage(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	slug, _ := props.String("postSlug")
	return vdom.Fragment(
		vdom.Comp(b.post, vdom.Prop("slug", slug)),
		vdom.Hr(),
		vdom.Comp(b.newComment),
		vdom.Hr(),
		vdom.Comp(b.commentList, vdom.Prop("postSlug", slug)),
		vdom.Hr(),
		vdom.Comp(b.prevNext, vdom.Prop("currPostSlug", slug)),
	), nil
}

func (b *Blog) renderPost(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	slug, _ := props.String("slug")
	src, err := b.posts.Read(ctx, slug)
	if err != nil {
		return nil, err
	}
	content, err := b.md.Convert(src)
	if err != nil {
		return nil, fmt.Errorf("blog: convert %s: %w", slug, err)
	}
	return vdom.Section(
		vdom.H2(vdom.A(vdom.Href("/"+slug), slug)),
		vdom.Article(content),
	), nil
}

func (b *Blog) renderNewComment(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	block := func() vdom.Attr { return vdom.Style("display", "block", "marginBottom", 16) }
	return vdom.Form(
		vdom.Label(vdom.For("newComment"), block(), "New Comment"),
		vdom.Textarea(
			vdom.ID("newComment"),
			vdom.Name("newComment"),
			vdom.Rows(5),
			vdom.Cols(33),
			block(),
			vdom.DefaultValue(CommentPlaceholder),
		),
		vdom.Button("comment"),
	), nil
}

func (b *Blog) renderComments(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	slug, _ := props.String("postSlug")
	comments, err := b.comments.List(ctx, slug)
	if err != nil {
		return nil, err
	}
	return vdom.Section(
		vdom.H3("Comments"),
		vdom.Ul(vdom.Map(comments, func(c store.Comment) vdom.Node {
			return vdom.Li(vdom.Key(c.Key()), c.Text)
		})),
	), nil
}

func (b *Blog) renderPrevNext(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	curr, _ := props.String("currPostSlug")
	slugs, err := b.posts.Slugs(ctx)
	if err != nil {
		return nil, err
	}

	i := slices.Index(slugs, curr)
	var prev, next string
	if i > 0 {
		prev = slugs[i-1]
	}
	if i < len(slugs)-1 {
		next = slugs[i+1]
	}

	return vdom.Div(
		vdom.Style("display", "flex", "gap", "24px"),
		vdom.If(prev != "", vdom.A(vdom.Href("/"+prev), "Previous post")),
		vdom.If(next != "", vdom.A(vdom.Href("/"+next), "Next post")),
	), nil
}

func (b *Blog) renderFooter(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	author, _ := props.String("author")
	return vdom.Footer(
		vdom.Hr(),
		vdom.P(vdom.I("(c) ", author, ", ", b.now().Year())),
	), nil
}
