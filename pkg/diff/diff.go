package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Stats counts the lines a diff adds and removes.
type Stats struct {
	Added   int
	Removed int
}

// GenerateUnifiedDiff compares two texts line by line and renders the result
// with unified diff markers. It returns an empty string when the texts are
// identical. Diffs exceeding 10,000 lines are truncated with a marker.
func GenerateUnifiedDiff(before, after, beforeLabel, afterLabel string) string {
	if before == after {
		return ""
	}

	diffs := lineDiffs(before, after)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(before), countLines(after))

	written := 3
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitDiffLines(d.Text) {
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage)
				buf.WriteString("\n")
				return buf.String()
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
			written++
		}
	}

	return buf.String()
}

// Summarize returns the number of added and removed lines between two texts.
func Summarize(before, after string) Stats {
	var stats Stats
	for _, d := range lineDiffs(before, after) {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			stats.Removed += len(splitDiffLines(d.Text))
		case diffmatchpatch.DiffInsert:
			stats.Added += len(splitDiffLines(d.Text))
		}
	}
	return stats
}

func lineDiffs(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

func splitDiffLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func countLines(text string) int {
	return len(splitDiffLines(text))
}
