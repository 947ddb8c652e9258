package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rsc/pkg/navigator"
	"github.com/vango-dev/rsc/pkg/protocol"
	"github.com/vango-dev/rsc/pkg/render"
	"github.com/vango-dev/rsc/pkg/vdom"
)

const defaultServerURL = "http://localhost:8080"

func fetchCmd() *cobra.Command {
	var (
		serverURL string
		raw       bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <route>",
		Short: "Fetch a route's client tree",
		Long: `Fetch the encoded client tree of a route and print it as HTML.

Examples:
  rsc fetch /
  rsc fetch /hello-world --raw
  rsc fetch / --server=http://blog.internal:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := navigator.NewHTTPFetcher(serverURL, nil)
			if err != nil {
				return err
			}
			tree, err := f.FetchTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printTree(cmd.OutOrStdout(), tree, raw)
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", defaultServerURL, "Base URL of the server")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the wire JSON instead of HTML")
	return cmd
}

var prettyRenderer = render.NewRenderer(render.RendererConfig{Pretty: true})

// printTree writes tree as pretty HTML, or re-encoded when raw is set.
func printTree(w io.Writer, tree vdom.Node, raw bool) error {
	if raw {
		if err := protocol.EncodeTo(w, tree); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}
	if err := prettyRenderer.RenderToWriter(w, tree); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
