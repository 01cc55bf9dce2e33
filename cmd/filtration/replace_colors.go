package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/958877748/Filtration/internal/config"
	"github.com/958877748/Filtration/internal/domain/filter"
)

type replaceColorsOptions struct {
	text       string
	background string
	border     string
	recipe     string
	dryRun     bool
}

func newReplaceColorsCmd(flags *rootFlags) *cobra.Command {
	opts := &replaceColorsOptions{}

	cmd := &cobra.Command{
		Use:   "replace-colors <file>",
		Short: "Swap one color for another across matching rule blocks",
		Long: `Replace colors in every rule block whose color items match exactly.

A block is changed only when every requested kind is present on it with
exactly the old color. Colors are hex values, #RRGGBB or #RRGGBBAA.`,
		Example: `  filtration replace-colors loot.filter --text '#ff0000:#00ff00'
  filtration replace-colors loot.filter --recipe dark-theme.toml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplaceColors(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "Text color replacement as OLD:NEW")
	cmd.Flags().StringVar(&opts.background, "background", "", "Background color replacement as OLD:NEW")
	cmd.Flags().StringVar(&opts.border, "border", "", "Border color replacement as OLD:NEW")
	cmd.Flags().StringVar(&opts.recipe, "recipe", "", "Recipe file (.yaml, .yml or .toml) listing replacements")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print a diff instead of saving")

	return cmd
}

func runReplaceColors(cmd *cobra.Command, flags *rootFlags, path string, opts *replaceColorsOptions) error {
	request, err := buildReplaceRequest(opts)
	if err != nil {
		return err
	}

	app, ctx, err := newAppContext(cmd, flags, "replace colors")
	if err != nil {
		return err
	}
	script, err := app.openScript(ctx, "replace colors", path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		preview, err := app.Script.PreviewReplaceColors(ctx, script, request)
		if err != nil {
			return newCommandError("replace colors", "previewing replacement", err, "Retry without --dry-run to see the error in context.")
		}
		if preview.Changed == 0 {
			fmt.Fprintln(out, "No blocks match the requested colors.")
			return nil
		}
		fmt.Fprint(out, preview.Diff)
		fmt.Fprintf(out, "\n%d blocks would change (+%d -%d lines)\n", preview.Changed, preview.Stats.Added, preview.Stats.Removed)
		return nil
	}

	changed, err := app.Script.ReplaceColors(ctx, script, request)
	if err != nil {
		return newCommandError("replace colors", "replacing colors", err, "Retry the command.")
	}
	if changed == 0 {
		fmt.Fprintln(out, "No blocks match the requested colors.")
		return nil
	}
	if err := app.saveScript(ctx, "replace colors", script); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Replaced colors in %d blocks\n", changed)
	return nil
}

// buildReplaceRequest merges the recipe with the per-kind flags. Flags win
// over recipe entries of the same kind.
func buildReplaceRequest(opts *replaceColorsOptions) (filter.ColorReplaceRequest, error) {
	var request filter.ColorReplaceRequest

	if opts.recipe != "" {
		recipe, err := config.LoadRecipe(opts.recipe)
		if err != nil {
			return request, newCommandError("replace colors", "loading recipe "+opts.recipe, err, "Check the recipe lists text, background or border entries with old and new hex colors.")
		}
		request, err = recipe.Request()
		if err != nil {
			return request, newCommandError("replace colors", "reading recipe "+opts.recipe, err, "Use #RRGGBB or #RRGGBBAA colors.")
		}
	}

	pairs := []struct {
		kind  filter.ColorKind
		value string
	}{
		{filter.TextColor, opts.text},
		{filter.BackgroundColor, opts.background},
		{filter.BorderColor, opts.border},
	}
	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}
		replacement, err := config.ParseColorPair(pair.value)
		if err != nil {
			return request, newCommandError("replace colors", "reading --"+pair.kind.String(), err, "Pass colors as OLD:NEW, for example '#ff0000:#00ff00'.")
		}
		request.Set(pair.kind, replacement)
	}

	if len(request.Enabled()) == 0 {
		return request, newCommandError("replace colors", "building replacement", errors.New("no replacement requested"), "Pass --text, --background, --border or --recipe.")
	}
	return request, nil
}
