package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const postExt = ".md"

// FSPosts reads posts from the *.md files at the root of an fs.FS. The slug
// is the file name without its extension.
type FSPosts struct {
	fsys fs.FS
}

// NewFSPosts creates a post source over fsys.
func NewFSPosts(fsys fs.FS) *FSPosts {
	return &FSPosts{fsys: fsys}
}

// Slugs implements PostSource.
func (p *FSPosts) Slugs(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(p.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}
	var slugs []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != postExt {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), postExt))
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Read implements PostSource.
func (p *FSPosts) Read(ctx context.Context, slug string) ([]byte, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	if strings.ContainsAny(slug, `/\`) {
		return nil, postNotFound(nil)
	}
	data, err := fs.ReadFile(p.fsys, slug+postExt)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, postNotFound(err)
	}
	if err != nil {
		return nil, fmt.Errorf("store: read post %s: %w", slug, err)
	}
	return data, nil
}
