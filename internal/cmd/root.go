package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "v0.1.0"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "skillchess",
		Short: "Chess with per-player skills",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("config", "c", "", "Config file (default: XDG lookup)")

	root.SetVersionTemplate(version + "\n")
	root.Version = version

	root.AddCommand(Serve())
	root.AddCommand(Analyze())
	root.AddCommand(SelfPlay())
	root.AddCommand(Config())

	return root
}
