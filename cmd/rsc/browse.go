package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rsc/pkg/navigator"
	"github.com/vango-dev/rsc/pkg/vdom"
)

const browseHelp = `commands:
  go <route>     follow a link
  back           history back
  forward        history forward
  post <text>    submit a comment on the current route
  reload         re-fetch the current route
  quit           leave`

func browseCmd() *cobra.Command {
	var (
		serverURL string
		start     string
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Navigate the server from the terminal",
		Long: `Start a line-driven navigation session against a running server.

Every rendered page is printed as HTML. Back and forward reuse cached trees;
followed links, reloads and posts always re-fetch.

` + browseHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), browseOptions{
				In:        cmd.InOrStdin(),
				Out:       cmd.OutOrStdout(),
				ServerURL: serverURL,
				Start:     start,
				CacheSize: cacheSize,
				Logger:    slog.Default(),
			})
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", defaultServerURL, "Base URL of the server")
	cmd.Flags().StringVar(&start, "start", "/", "Route to open first")
	cmd.Flags().IntVar(&cacheSize, "cache", 0, "Maximum cached routes (0 is unbounded)")
	return cmd
}

type browseOptions struct {
	In        io.Reader
	Out       io.Writer
	ServerURL string
	Start     string
	CacheSize int
	Client    *http.Client
	Logger    *slog.Logger
}

// runBrowse drives a Navigator from line commands until quit or end of input.
// Failed commands are reported and the session continues.
func runBrowse(ctx context.Context, opts browseOptions) error {
	fetcher, err := navigator.NewHTTPFetcher(opts.ServerURL, opts.Client)
	if err != nil {
		return err
	}
	out := opts.Out
	screen := navigator.RendererFunc(func(ctx context.Context, route string, tree vdom.Node) error {
		fmt.Fprintf(out, "--- %s\n", route)
		return printTree(out, tree, false)
	})
	history := navigator.NewMemoryHistory(opts.Start)
	nav := navigator.New(fetcher, screen, history,
		navigator.WithCache(navigator.NewRouteCache(opts.CacheSize)),
		navigator.WithLogger(opts.Logger),
	)

	if err := nav.Navigate(ctx, history.Current(), false); err != nil {
		return err
	}

	scanner := bufio.NewScanner(opts.In)
	for {
		fmt.Fprint(out, "rsc> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		verb, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch verb {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, browseHelp)
		case "go":
			var handled bool
			handled, err = nav.HandleClick(ctx, navigator.ClickEvent{Href: arg})
			if err == nil && !handled {
				fmt.Fprintf(out, "not a root-relative link: %q\n", arg)
			}
		case "back":
			if !history.Back() {
				fmt.Fprintln(out, "no previous page")
				continue
			}
			err = nav.HandlePopState(ctx)
		case "forward":
			if !history.Forward() {
				fmt.Fprintln(out, "no next page")
				continue
			}
			err = nav.HandlePopState(ctx)
		case "post":
			if arg == "" {
				fmt.Fprintln(out, "usage: post <text>")
				continue
			}
			err = nav.HandleSubmit(ctx, map[string]string{"comment": arg})
		case "reload":
			err = nav.Reload(ctx)
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", verb)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
