package diff

import (
	"strings"
	"testing"
)

func TestGenerateUnifiedDiff_IdenticalContent(t *testing.T) {
	text := "Show\n    SetTextColor 255 0 0\n"

	if result := GenerateUnifiedDiff(text, text, "before", "after"); result != "" {
		t.Errorf("Expected empty diff for identical content, got: %s", result)
	}
}

func TestGenerateUnifiedDiff_ColorChange(t *testing.T) {
	before := "Show\n    SetTextColor 255 0 0\n    SetBorderColor 0 0 255\n"
	after := "Show\n    SetTextColor 0 255 0\n    SetBorderColor 0 0 255\n"

	result := GenerateUnifiedDiff(before, after, "loot.filter", "loot.filter (replaced)")

	if !strings.Contains(result, "--- loot.filter\n") || !strings.Contains(result, "+++ loot.filter (replaced)\n") {
		t.Errorf("Diff should contain unified diff headers, got:\n%s", result)
	}
	if !strings.Contains(result, "-    SetTextColor 255 0 0\n") {
		t.Error("Diff should show removed line with - prefix")
	}
	if !strings.Contains(result, "+    SetTextColor 0 255 0\n") {
		t.Error("Diff should show added line with + prefix")
	}
	if !strings.Contains(result, "     SetBorderColor 0 0 255\n") {
		t.Error("Diff should keep unchanged lines as context")
	}
}

func TestGenerateUnifiedDiff_EmptyBefore(t *testing.T) {
	result := GenerateUnifiedDiff("", "new content\n", "before", "after")

	if !strings.Contains(result, "+new content") {
		t.Errorf("Diff should show added content, got:\n%s", result)
	}
}

func TestGenerateUnifiedDiff_Truncation(t *testing.T) {
	var before, after []string
	for i := 0; i < 11000; i++ {
		before = append(before, "SetTextColor 1 1 1")
		if i%2 == 0 {
			after = append(after, "SetTextColor 2 2 2")
		} else {
			after = append(after, "SetTextColor 1 1 1")
		}
	}

	result := GenerateUnifiedDiff(strings.Join(before, "\n"), strings.Join(after, "\n"), "before", "after")

	if !strings.Contains(result, "truncated") {
		t.Error("Large diff should be truncated with truncation message")
	}
	if lineCount := strings.Count(result, "\n"); lineCount > maxDiffLines+1 {
		t.Errorf("Truncated diff should not exceed %d lines, got %d", maxDiffLines+1, lineCount)
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize("a\nb\nc\n", "a\nB\nc\nd\n")

	if stats.Added != 2 || stats.Removed != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
