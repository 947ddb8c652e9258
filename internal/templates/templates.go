package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/rsc/internal/errors"
)

// Config contains template variables.
type Config struct {
	// Title is the document title.
	Title string

	// Author is shown in the footer.
	Author string

	// StoreKind selects the comment backend. Default: file.
	StoreKind string

	// Year stamps the starter posts.
	Year int
}

// Template is a named set of files.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to template text.
	Files map[string]string
}

var templates = map[string]*Template{
	"blog":    blogTemplate(),
	"minimal": minimalTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "template %q not found (available: %v)", name, List())
	}
	return tmpl, nil
}

// List returns all template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's relative file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create renders every file under dir and returns the paths written. All
// files are rendered before anything is written, and Create fails without
// writing when any target already exists.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if cfg.StoreKind == "" {
		cfg.StoreKind = "file"
	}

	rendered := make(map[string][]byte, len(t.Files))
	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if _, err := os.Stat(fullPath); err == nil {
			return nil, errors.Newf(errors.CategoryCLI, "%s already exists", fullPath)
		}
		rendered[fullPath] = buf.Bytes()
	}

	written := make([]string, 0, len(rendered))
	for _, relPath := range t.Paths() {
		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(fullPath, rendered[fullPath], 0644); err != nil {
			return written, err
		}
		written = append(written, fullPath)
	}
	return written, nil
}

const configFile = `server:
  addr: ":8080"
  metrics: true
blog:
  title: {{printf "%q" .Title}}
  author: {{printf "%q" .Author}}
  postsDir: posts
store:
  kind: {{.StoreKind}}
  file:
    path: posts/comments.json
log:
  level: info
  format: text
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Configuration and a single post",
		Files: map[string]string{
			"rsc.yaml": configFile,
			"posts/hello-world.md": `# Hello, world

This is the first post of {{.Title}}.
`,
		},
	}
}

func blogTemplate() *Template {
	return &Template{
		Name:        "blog",
		Description: "Configuration and starter posts showing the supported markdown",
		Files: map[string]string{
			"rsc.yaml": configFile,
			"posts/hello-world.md": `# Hello, world

Welcome to **{{.Title}}**, written by {{.Author}} in {{.Year}}.

Every page here is a tree of server components. Follow the links below
the post to move between entries without a full page load.
`,
			"posts/markdown-tour.md": `# A tour of the markdown

Paragraphs support *emphasis*, **strong text**, ~~strikethrough~~ and
` + "`inline code`" + `. Links such as https://go.dev become anchors.

> Block quotes work too.

1. Ordered
2. Lists

- and unordered ones

` + "```go" + `
func main() {
	fmt.Println("highlighted")
}
` + "```" + `

---

Images are measured on the server:

![Gopher](https://go.dev/images/gophers/ladder.svg)
`,
		},
	}
}
