package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/958877748/Filtration/internal/domain/filter"
)

// chromeLines is the number of rows taken by the header and footer.
const chromeLines = 8

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n")
	content.WriteString(m.renderBlockList())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())
	return content.String()
}

func (m Model) renderHeader() string {
	name := "untitled"
	if m.script.FilePath != "" {
		name = filepath.Base(m.script.FilePath)
	}
	if m.dirty {
		name += " *"
	}

	summary := mutedStyle.Render(fmt.Sprintf("%d blocks  %d sections  %d theme components",
		len(m.script.Blocks), len(m.script.Sections()), m.script.ThemeComponents.Len()))

	line := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("Filtration  "+name), summary)
	if m.script.Description != "" {
		line = lipgloss.JoinVertical(lipgloss.Left, line, mutedStyle.Render(m.truncate(m.script.Description, 4)))
	}
	return headerStyle.Width(m.width).Render(line)
}

func (m Model) renderBlockList() string {
	if len(m.script.Blocks) == 0 {
		return mutedStyle.Render("  No blocks. Press a to add one.")
	}

	start, end := m.visibleRange()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := m.renderBlock(i, m.script.Blocks[i])
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render(row))
		} else {
			rows = append(rows, itemStyle.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

// visibleRange returns the window of block indexes that fits the terminal
// and keeps the cursor in view.
func (m Model) visibleRange() (int, int) {
	total := len(m.script.Blocks)
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	if total <= rows {
		return 0, total
	}

	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > total {
		start = total - rows
	}
	return start, start + rows
}

func (m Model) renderBlock(index int, block filter.Block) string {
	number := mutedStyle.Render(fmt.Sprintf("%3d ", index+1))

	switch b := block.(type) {
	case *filter.SectionBlock:
		return number + sectionStyle.Render("§ "+m.truncate(b.Description, 10))
	case *filter.RuleBlock:
		return number + m.renderRule(b)
	default:
		panic(fmt.Sprintf("tui: unknown block type %T", block))
	}
}

func (m Model) renderRule(rule *filter.RuleBlock) string {
	action := showStyle.Render(fmt.Sprintf("%-4s", rule.Action))
	if rule.Action == filter.ActionHide {
		action = hideStyle.Render(fmt.Sprintf("%-4s", rule.Action))
	}

	parts := []string{action}
	if !rule.Group.IsRoot() {
		parts = append(parts, groupStyle.Render("["+rule.Group.String()+"]"))
	}

	description := rule.Description
	if description == "" {
		description = "(no description)"
	}
	parts = append(parts, sampleStyle(rule).Render(" "+m.truncate(description, 40)+" "))

	for _, kind := range filter.ColorKinds {
		if item := rule.ColorItem(kind); item != nil {
			parts = append(parts, swatch(kind, item.Color))
		}
	}
	if directives := countDirectives(rule); directives > 0 {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("+%d", directives)))
	}
	return strings.Join(parts, " ")
}

// sampleStyle renders a description the way the loot label would look.
func sampleStyle(rule *filter.RuleBlock) lipgloss.Style {
	style := lipgloss.NewStyle()
	if item := rule.ColorItem(filter.TextColor); item != nil {
		style = style.Foreground(terminalColor(item.Color))
	}
	if item := rule.ColorItem(filter.BackgroundColor); item != nil {
		style = style.Background(terminalColor(item.Color))
	}
	return style
}

func swatch(kind filter.ColorKind, color filter.Color) string {
	label := strings.ToUpper(kind.String()[:1])
	return mutedStyle.Render(label) + lipgloss.NewStyle().Background(terminalColor(color)).Render("  ")
}

// terminalColor drops the alpha channel, which terminals cannot show.
func terminalColor(color filter.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color.R, color.G, color.B))
}

func countDirectives(rule *filter.RuleBlock) int {
	count := 0
	for _, item := range rule.Items {
		if _, ok := item.(*filter.DirectiveItem); ok {
			count++
		}
	}
	return count
}

// truncate shortens text to the terminal width minus reserved columns.
func (m Model) truncate(text string, reserved int) string {
	limit := m.width - reserved
	if limit < 8 {
		limit = 8
	}
	return runewidth.Truncate(strings.Join(strings.Fields(text), " "), limit, "…")
}

func (m Model) renderFooter() string {
	var lines []string

	switch {
	case m.confirm == confirmDelete:
		lines = append(lines, confirmStyle.Render("Delete selected block? (y/n)"))
	case m.confirm == confirmQuit:
		lines = append(lines, confirmStyle.Render("Discard unsaved changes and quit? (y/n)"))
	case m.errorMsg != "":
		lines = append(lines, errorStyle.Render("✗ "+m.errorMsg))
	case m.saving:
		lines = append(lines, m.spinner.View()+" "+statusStyle.Render(m.status))
	case m.status != "":
		lines = append(lines, statusStyle.Render(m.status))
	}

	lines = append(lines, m.help.View(m.keys))
	return footerStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}
