package main

import (
	"github.com/felipemarinho97/webshare-stremio/config"
	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wsctl",
		Short:         "Inspect how webshare filenames are parsed and ranked",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = config.LoadDotEnv()
			logging.InitLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newTagCommand())
	rootCmd.AddCommand(newResolveCommand())

	return rootCmd
}
