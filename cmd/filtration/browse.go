package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/tui"
)

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Open a filter script in the interactive browser",
		Long: `Open a filter script in the interactive browser.

A path that does not exist yet starts a new script that is written there
on the first save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, args[0])
		},
	}

	return cmd
}

func runBrowse(cmd *cobra.Command, flags *rootFlags, path string) error {
	app, ctx, err := newAppContext(cmd, flags, "browse")
	if err != nil {
		return err
	}

	var script *filter.Script
	resolved := app.Settings.ResolveScriptPath(path)
	if _, statErr := os.Stat(resolved); errors.Is(statErr, os.ErrNotExist) {
		script = app.Script.New("")
		script.FilePath = resolved
	} else {
		script, err = app.openScript(ctx, "browse", path)
		if err != nil {
			return err
		}
	}

	final, err := tui.Run(ctx, app.Script, script)
	if err != nil {
		app.Logger.Error(ctx, "browser failed", "error", err)
		return newCommandError("browse", "running the browser", err, "Run from an interactive terminal.")
	}
	app.Logger.Info(ctx, "browser closed", "path", resolved, "unsaved", final.Dirty())

	if final.Dirty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Unsaved changes were discarded.")
	}
	return nil
}
