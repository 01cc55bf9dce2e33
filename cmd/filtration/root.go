package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "filtration",
		Short:         "Filtration edits item filter scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (default ~/.filtration/config.yaml)")

	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newNewCmd(flags))
	cmd.AddCommand(newReplaceColorsCmd(flags))
	cmd.AddCommand(newBlockCmd(flags))
	cmd.AddCommand(newSaveAsCmd(flags))
	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newRecentCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
