package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rsc/internal/config"
	rscerrors "github.com/vango-dev/rsc/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		rscerrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "rsc",
		Short: "Serve and browse server component trees",
		Long: `rsc serves a markdown blog whose pages are server component trees.

The server resolves every component before answering, then sends either an
HTML document or the encoded client tree (?jsx). The client commands speak
the same protocol from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "Path to the configuration file")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(load),
		fetchCmd(),
		browseCmd(),
		configCmd(load),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads path when it exists and falls back to defaults otherwise.
// Environment overrides are applied either way.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.New()
	if _, err := os.Stat(path); err == nil {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
