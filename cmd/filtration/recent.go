package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/958877748/Filtration/internal/registry"
)

type recentOptions struct {
	jsonOutput bool
	forget     string
}

func newRecentCmd(flags *rootFlags) *cobra.Command {
	opts := &recentOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened filter scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecent(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.forget, "forget", "", "Remove a script from the list")

	return cmd
}

func runRecent(cmd *cobra.Command, flags *rootFlags, opts *recentOptions) error {
	app, _, err := newAppContext(cmd, flags, "list recent scripts")
	if err != nil {
		return err
	}

	reg, err := registry.NewRegistry(app.Settings.RecentPath, app.Settings.RecentLimit)
	if err != nil {
		return newCommandError("list recent scripts", "loading "+app.Settings.RecentPath, err, "Delete the file to start a fresh list.")
	}

	if opts.forget != "" {
		if err := reg.Forget(opts.forget); err != nil {
			return newCommandError("forget script", "updating recent list", err, "Run 'filtration recent' to see the listed paths.")
		}
		if err := reg.Save(); err != nil {
			return newCommandError("forget script", "saving recent list", err, "Check file permissions and retry.")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Forgot %s\n", opts.forget)
		return nil
	}

	entries := reg.List()
	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(registry.File{Version: "1.0", Entries: entries})
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scripts opened yet.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "OPENED\tBLOCKS\tSECTIONS\tDESCRIPTION\tPATH")
	for _, entry := range entries {
		fmt.Fprintf(writer, "%s\t%d\t%d\t%s\t%s\n",
			formatRelativeTime(entry.OpenedAt),
			entry.Blocks,
			entry.Sections,
			truncate(valueOrFallback(entry.Description, "-"), descriptionWidth),
			entry.Path,
		)
	}
	return writer.Flush()
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
