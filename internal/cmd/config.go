package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillchess/internal/config"
)

func Config() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.Path()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			out, err := cfg.Dump()
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
