// Package translator converts between the line-oriented item filter DSL and
// the filter document model. Every function is stateless and deterministic.
//
// A rule block is written as its description comments, an action line
// carrying the optional group path, and one indented line per item:
//
//	# Chaos orbs
//	Show # Currency - Orbs
//	    Class "Currency"
//	    SetTextColor 255 0 0
//	    SetBorderColor 0 0 255 200 # Orb Border
//
// A section block is a "# Section: <description>" line. A multi-line
// description continues on the following comment lines of the same
// paragraph. Blocks are separated by one blank line.
package translator

import (
	"fmt"
	"strings"

	"github.com/958877748/Filtration/internal/domain/filter"
)

const (
	itemIndent    = "    "
	sectionMarker = "Section:"
)

// SerializeBlock renders a single block without a trailing newline.
func SerializeBlock(block filter.Block) string {
	var b strings.Builder
	writeBlock(&b, block)
	return b.String()
}

// SerializeScript renders the whole script: the description header followed
// by every block, one blank line apart, ending with a newline.
func SerializeScript(script *filter.Script) string {
	var b strings.Builder

	if script.Description != "" {
		writeComments(&b, script.Description)
		b.WriteString("\n\n")
	}

	for i, block := range script.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeBlock(&b, block)
	}
	if len(script.Blocks) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func writeBlock(b *strings.Builder, block filter.Block) {
	switch blk := block.(type) {
	case *filter.RuleBlock:
		if blk.Description != "" {
			writeComments(b, blk.Description)
			b.WriteString("\n")
		}
		b.WriteString(string(blk.Action))
		if path := blk.Group.String(); path != "" {
			b.WriteString(" # ")
			b.WriteString(path)
		}
		for _, item := range blk.Items {
			b.WriteString("\n")
			b.WriteString(itemIndent)
			b.WriteString(serializeItem(item))
		}
	case *filter.SectionBlock:
		first, rest, multiline := strings.Cut(blk.Description, "\n")
		b.WriteString("# ")
		b.WriteString(sectionMarker)
		if first != "" {
			b.WriteString(" ")
			b.WriteString(first)
		}
		if multiline {
			b.WriteString("\n")
			writeComments(b, rest)
		}
	default:
		panic(fmt.Sprintf("translator: unhandled block variant %T", block))
	}
}

func writeComments(b *strings.Builder, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		if line == "" {
			b.WriteString("#")
			continue
		}
		b.WriteString("# ")
		b.WriteString(line)
	}
}

func serializeItem(item filter.Item) string {
	switch it := item.(type) {
	case *filter.ColorItem:
		c := it.Color
		line := fmt.Sprintf("%s %d %d %d", it.Kind.Keyword(), c.R, c.G, c.B)
		if !c.Opaque() {
			line += fmt.Sprintf(" %d", c.A)
		}
		if it.ThemeComponent != "" {
			line += " # " + it.ThemeComponent
		}
		return line
	case *filter.DirectiveItem:
		if it.Value == "" {
			return it.Name
		}
		return it.Name + " " + it.Value
	default:
		panic(fmt.Sprintf("translator: unhandled item variant %T", item))
	}
}
