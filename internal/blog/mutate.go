package blog

import (
	"context"
	"strings"

	"github.com/mitchellh/mapstructure"

	rscerrors "github.com/vango-dev/rsc/internal/errors"
	"github.com/vango-dev/rsc/pkg/store"
)

// commentPayload is the object form of a submission. The bare string form
// is what the bundled client sends.
type commentPayload struct {
	Comment    string `mapstructure:"comment"`
	NewComment string `mapstructure:"newComment"`
}

// Mutate appends a comment to the post at route. The payload is the decoded
// JSON body: either the comment text itself or an object carrying it under
// "comment" or "newComment".
func (b *Blog) Mutate(ctx context.Context, route string, payload any) error {
	if strings.Contains(route, ".") {
		return rscerrors.New(rscerrors.CodeRouteNotFound)
	}
	slug := SlugFromPath(route)
	if slug == "" {
		return rscerrors.New(rscerrors.CodeRouteNotFound)
	}

	text, err := commentText(payload)
	if err != nil {
		return err
	}
	if _, err := b.posts.Read(ctx, slug); err != nil {
		return err
	}

	c := store.NewComment(text)
	if err := b.comments.Append(ctx, slug, c); err != nil {
		return rscerrors.New(rscerrors.CodeComponentFailed).
			WithDetail("Saving the comment failed.").
			Wrap(err)
	}
	b.logger.Info("comment added", "slug", slug, "id", c.ID.String())
	return nil
}

func commentText(payload any) (string, error) {
	var text string
	switch v := payload.(type) {
	case string:
		text = v
	case map[string]any:
		var p commentPayload
		if err := mapstructure.Decode(v, &p); err != nil {
			return "", rscerrors.New(rscerrors.CodeInvalidPayload).Wrap(err)
		}
		text = p.Comment
		if text == "" {
			text = p.NewComment
		}
	default:
		return "", rscerrors.New(rscerrors.CodeInvalidPayload)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", rscerrors.New(rscerrors.CodeInvalidPayload).WithDetail("The comment is empty.")
	}
	return text, nil
}
