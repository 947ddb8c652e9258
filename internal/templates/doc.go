// Package templates scaffolds new blog sites.
//
// A template is a set of files (configuration and starter posts) rendered
// with text/template and written under a target directory. Existing files
// are never overwritten.
//
// # Usage
//
//	tmpl, err := templates.Get("blog")
//	if err != nil {
//	    return err
//	}
//	written, err := tmpl.Create(dir, templates.Config{Title: "Notes", Author: "Sam"})
//
// # Template Variables
//
//	{{.Title}}      - Document title
//	{{.Author}}     - Footer author
//	{{.StoreKind}}  - Comment backend (file, memory, redis, s3)
//	{{.Year}}       - Current year
package templates
