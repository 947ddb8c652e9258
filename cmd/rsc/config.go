package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/rsc/internal/config"
)

func configCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration serve would run with, as YAML.

Defaults are merged with the configuration file and the RSC_* environment
variables, then validated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
