package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rsc/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		cfg      templates.Config
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a new blog",
		Long: `Write rsc.yaml and starter posts into dir (default: the current directory).

Existing files are never overwritten.

Examples:
  rsc init
  rsc init notes --title="Field notes" --author=Sam
  rsc init --template=minimal --store=memory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			cfg.Year = time.Now().Year()
			written, err := tmpl.Create(dir, cfg)
			if err != nil {
				return err
			}
			for _, p := range written {
				success(cmd.OutOrStdout(), "Wrote %s", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "blog", "Template to use: blog or minimal")
	cmd.Flags().StringVar(&cfg.Title, "title", "My blog", "Document title")
	cmd.Flags().StringVar(&cfg.Author, "author", "Jae Doe", "Footer author")
	cmd.Flags().StringVar(&cfg.StoreKind, "store", "file", "Comment store: file, memory, redis or s3")
	return cmd
}
