package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSaveAsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save-as <file> <new-path>",
		Short: "Write a filter script to a new location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaveAs(cmd, flags, args[0], args[1])
		},
	}

	return cmd
}

func runSaveAs(cmd *cobra.Command, flags *rootFlags, path, newPath string) error {
	app, ctx, err := newAppContext(cmd, flags, "save as")
	if err != nil {
		return err
	}
	script, err := app.openScript(ctx, "save as", path)
	if err != nil {
		return err
	}

	target := app.Settings.ResolveScriptPath(newPath)
	if err := app.Script.SaveAs(ctx, script, target); err != nil {
		return newCommandError("save as", "writing "+target, err, "Check the destination is writable; the original file was not changed.")
	}

	app.recordRecent(ctx, script)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", script.FilePath)
	return nil
}
