package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	scriptapp "github.com/958877748/Filtration/internal/app/script"
	"github.com/958877748/Filtration/internal/domain/filter"
)

func newBlockCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Add, move, remove, copy and paste blocks by index",
	}

	cmd.AddCommand(newBlockAddCmd(flags))
	cmd.AddCommand(newBlockAddSectionCmd(flags))
	cmd.AddCommand(newBlockMoveCmd(flags))
	cmd.AddCommand(newBlockRemoveCmd(flags))
	cmd.AddCommand(newBlockCopyCmd(flags))
	cmd.AddCommand(newBlockPasteCmd(flags))

	return cmd
}

func newBlockAddCmd(flags *rootFlags) *cobra.Command {
	var after int

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Insert an empty Show block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newAppContext(cmd, flags, "add block")
			if err != nil {
				return err
			}
			script, err := app.openScript(ctx, "add block", args[0])
			if err != nil {
				return err
			}
			target, err := targetAt("add block", script, after)
			if err != nil {
				return err
			}
			block, err := app.Script.AddBlock(ctx, script, target)
			if err != nil {
				return newCommandError("add block", "inserting block", err, "Run 'filtration show' to check the --after index.")
			}
			if err := app.saveScript(ctx, "add block", script); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added block at index %d\n", script.IndexOf(block))
			return nil
		},
	}

	cmd.Flags().IntVar(&after, "after", -1, "Insert after this block index (default appends)")

	return cmd
}

func newBlockAddSectionCmd(flags *rootFlags) *cobra.Command {
	var (
		after       int
		description string
	)

	cmd := &cobra.Command{
		Use:   "add-section <file>",
		Short: "Insert a section marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newAppContext(cmd, flags, "add section")
			if err != nil {
				return err
			}
			script, err := app.openScript(ctx, "add section", args[0])
			if err != nil {
				return err
			}
			target, err := targetAt("add section", script, after)
			if err != nil {
				return err
			}
			section, err := app.Script.AddSection(ctx, script, target)
			if err != nil {
				return newCommandError("add section", "inserting section", err, "Run 'filtration show' to check the --after index.")
			}
			if description != "" {
				section.Description = description
			}
			if err := app.saveScript(ctx, "add section", script); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added section at index %d\n", script.IndexOf(section))
			return nil
		},
	}

	cmd.Flags().IntVar(&after, "after", -1, "Insert after this block index (default appends)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Section title")

	return cmd
}

func newBlockMoveCmd(flags *rootFlags) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <file> <index>",
		Short: "Move a block to the top, up, down or to the bottom",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := scriptapp.ParseDirection(to)
			if err != nil {
				return newCommandError("move block", "reading --to", err, "Use --to top, up, down or bottom.")
			}

			app, ctx, err := newAppContext(cmd, flags, "move block")
			if err != nil {
				return err
			}
			script, err := app.openScript(ctx, "move block", args[0])
			if err != nil {
				return err
			}
			block, err := blockAt("move block", script, args[1])
			if err != nil {
				return err
			}

			moved, err := app.Script.Move(ctx, script, block, direction)
			if err != nil {
				return newCommandError("move block", "moving block "+args[1], err, "Run 'filtration show' to list block indexes.")
			}
			if !moved {
				fmt.Fprintf(cmd.OutOrStdout(), "Block %s is already at the %s.\n", args[1], boundaryName(direction))
				return nil
			}
			if err := app.saveScript(ctx, "move block", script); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved block %s to index %d\n", args[1], script.IndexOf(block))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Direction: top, up, down or bottom")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func boundaryName(direction scriptapp.Direction) string {
	if direction == scriptapp.MoveTop || direction == scriptapp.MoveUp {
		return "top"
	}
	return "bottom"
}

func newBlockRemoveCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <file> <index>",
		Short: "Delete a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newAppContext(cmd, flags, "remove block")
			if err != nil {
				return err
			}
			script, err := app.openScript(ctx, "remove block", args[0])
			if err != nil {
				return err
			}
			block, err := blockAt("remove block", script, args[1])
			if err != nil {
				return err
			}

			if !force {
				confirmed, err := confirmRemoval(cmd, args[1], block)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Script.Remove(ctx, script, block); err != nil {
				return newCommandError("remove block", "removing block "+args[1], err, "Run 'filtration show' to list block indexes.")
			}
			if err := app.saveScript(ctx, "remove block", script); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed block %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")

	return cmd
}

func confirmRemoval(cmd *cobra.Command, index string, block filter.Block) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("remove block", "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	summary := block.Summary()
	if summary == "" {
		summary = string(block.Kind())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Remove block %s (%s)? [y/N]: ", index, summary)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}

func newBlockCopyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <file> <index>",
		Short: "Copy a block to the Filtration clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newAppContext(cmd, flags, "copy block")
			if err != nil {
				return err
			}
			script, err := app.openScript(ctx, "copy block", args[0])
			if err != nil {
				return err
			}
			block, err := blockAt("copy block", script, args[1])
			if err != nil {
				return err
			}
			if err := app.Script.Copy(ctx, block); err != nil {
				return newCommandError("copy block", "writing clipboard "+app.Clipboard.Path(), err, "Check clipboard_path in the settings file.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Copied block %s\n", args[1])
			return nil
		},
	}

	return cmd
}

func newBlockPasteCmd(flags *rootFlags) *cobra.Command {
	var after int

	cmd := &cobra.Command{
		Use:   "paste <file>",
		Short: "Insert the block held in the Filtration clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := newAppContext(cmd, flags, "paste block")
			if err != nil {
				return err
			}
			script, err := app.openScript(ctx, "paste block", args[0])
			if err != nil {
				return err
			}
			target, err := targetAt("paste block", script, after)
			if err != nil {
				return err
			}

			block, err := app.Script.Paste(ctx, script, target)
			if err != nil {
				return newCommandError("paste block", "reading clipboard "+app.Clipboard.Path(), err, "Check clipboard_path in the settings file.")
			}
			if block == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Clipboard does not hold a block; nothing pasted.")
				return nil
			}
			if err := app.saveScript(ctx, "paste block", script); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pasted block at index %d\n", script.IndexOf(block))
			return nil
		},
	}

	cmd.Flags().IntVar(&after, "after", -1, "Insert after this block index (default appends)")

	return cmd
}
