package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

const maxParallelLoads = 4

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	failText  = color.New(color.FgRed)
)

// validationResult is the outcome for one file. Messages is empty when the
// file loaded and passed validation.
type validationResult struct {
	Path     string
	Messages []string
}

func newValidateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that filter scripts parse and can be saved",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, flags *rootFlags, paths []string) error {
	app, ctx, err := newAppContext(cmd, flags, "validate")
	if err != nil {
		return err
	}

	results := make([]validationResult, len(paths))

	// each goroutine owns the script it loads
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(maxParallelLoads, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			resolved := app.Settings.ResolveScriptPath(path)
			results[i] = validationResult{Path: resolved}

			script, err := app.Script.Open(gctx, resolved)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				results[i].Messages = []string{err.Error()}
				return nil
			}
			results[i].Messages = validationMessages(app.Script.Validate(script))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return newCommandError("validate", "loading scripts", err, "Retry the command.")
	}

	failed := 0
	out := cmd.OutOrStdout()
	for _, result := range results {
		if len(result.Messages) == 0 {
			fmt.Fprintf(out, "%s %s\n", passColor.Sprint("✓"), result.Path)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", failColor.Sprint("✗"), result.Path)
		for _, message := range result.Messages {
			fmt.Fprintf(out, "    %s\n", failText.Sprint(message))
		}
	}

	if failed > 0 {
		return newCommandError("validate", fmt.Sprintf("%d of %d scripts are invalid", failed, len(results)), errors.New("validation failed"), "Fix the problems listed above.")
	}
	return nil
}

func validationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var validationErr *filtrationerrors.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Messages) > 0 {
		return validationErr.Messages
	}
	return []string{err.Error()}
}
