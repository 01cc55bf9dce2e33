package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/958877748/Filtration/internal/domain/filter"
)

const descriptionWidth = 48

type showOptions struct {
	sectionsOnly bool
	jsonOutput   bool
}

// blockRow is one line of show output and the JSON element for a block.
type blockRow struct {
	Index       int               `json:"index"`
	Kind        string            `json:"kind"`
	Action      string            `json:"action,omitempty"`
	Group       string            `json:"group,omitempty"`
	Description string            `json:"description"`
	Colors      map[string]string `json:"colors,omitempty"`
	Items       int               `json:"items"`
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "List the blocks of a filter script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.sectionsOnly, "sections", false, "List section blocks only")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runShow(cmd *cobra.Command, flags *rootFlags, path string, opts *showOptions) error {
	app, ctx, err := newAppContext(cmd, flags, "show")
	if err != nil {
		return err
	}
	script, err := app.openScript(ctx, "show", path)
	if err != nil {
		return err
	}

	rows := make([]blockRow, 0, len(script.Blocks))
	for i, block := range script.Blocks {
		if opts.sectionsOnly && block.Kind() != filter.KindSection {
			continue
		}
		rows = append(rows, describeBlock(i, block))
	}

	if opts.jsonOutput {
		return renderShowJSON(cmd, script, rows)
	}
	return renderShowTable(cmd, script, rows)
}

func describeBlock(index int, block filter.Block) blockRow {
	row := blockRow{Index: index, Kind: string(block.Kind()), Description: block.Summary()}

	switch b := block.(type) {
	case *filter.SectionBlock:
	case *filter.RuleBlock:
		row.Action = string(b.Action)
		row.Group = b.Group.String()
		row.Items = len(b.Items)
		for _, kind := range filter.ColorKinds {
			if item := b.ColorItem(kind); item != nil {
				if row.Colors == nil {
					row.Colors = make(map[string]string)
				}
				row.Colors[kind.String()] = item.Color.Hex()
			}
		}
	default:
		panic(fmt.Sprintf("show: unknown block type %T", block))
	}
	return row
}

func renderShowJSON(cmd *cobra.Command, script *filter.Script, rows []blockRow) error {
	payload := struct {
		Path        string     `json:"path"`
		Description string     `json:"description,omitempty"`
		Count       int        `json:"count"`
		Blocks      []blockRow `json:"blocks"`
	}{
		Path:        script.FilePath,
		Description: script.Description,
		Count:       len(rows),
		Blocks:      rows,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderShowTable(cmd *cobra.Command, script *filter.Script, rows []blockRow) error {
	out := cmd.OutOrStdout()
	if script.Description != "" {
		fmt.Fprintf(out, "%s\n\n", script.Description)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No blocks to show.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "INDEX\tKIND\tACTION\tGROUP\tDESCRIPTION\tCOLORS")
	for _, row := range rows {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Index,
			row.Kind,
			valueOrFallback(row.Action, "-"),
			valueOrFallback(row.Group, "-"),
			truncate(valueOrFallback(row.Description, "(no description)"), descriptionWidth),
			formatColors(row.Colors),
		)
	}
	return writer.Flush()
}

func formatColors(colors map[string]string) string {
	if len(colors) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(colors))
	for _, kind := range filter.ColorKinds {
		if hex, ok := colors[kind.String()]; ok {
			parts = append(parts, kind.String()+"="+hex)
		}
	}
	return strings.Join(parts, " ")
}

// truncate fits value on one table line of at most width columns.
func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
