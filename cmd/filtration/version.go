package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

func currentBuild() buildInfo {
	return buildInfo{Version: version, Commit: commit, Date: date, GoVersion: runtime.Version()}
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the filtration release and build details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuild()
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, info.Version)
				return nil
			}

			label := color.New(color.Faint).SprintFunc()
			fmt.Fprintf(out, "filtration %s\n", color.New(color.FgGreen, color.Bold).Sprint(info.Version))
			fmt.Fprintf(out, "  %s %s\n", label("commit:"), info.Commit)
			fmt.Fprintf(out, "  %s %s\n", label("built: "), info.Date)
			fmt.Fprintf(out, "  %s %s\n", label("go:    "), info.GoVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the release version")

	return cmd
}
