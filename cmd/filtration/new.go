package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type newOptions struct {
	description string
	force       bool
}

func newNewCmd(flags *rootFlags) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create a filter script holding one empty Show block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Script description written as the header comment")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runNew(cmd *cobra.Command, flags *rootFlags, path string, opts *newOptions) error {
	app, ctx, err := newAppContext(cmd, flags, "create script")
	if err != nil {
		return err
	}

	resolved := app.Settings.ResolveScriptPath(path)
	if !opts.force {
		if _, err := os.Stat(resolved); err == nil {
			return newCommandError("create script", "checking "+resolved, errors.New("file already exists"), "Use --force to overwrite it.")
		}
	}

	script := app.Script.New(opts.description)
	if err := app.Script.SaveAs(ctx, script, resolved); err != nil {
		return newCommandError("create script", "writing "+resolved, err, "Check the directory exists and is writable.")
	}

	app.recordRecent(ctx, script)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", resolved)
	return nil
}
