package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	accentColor  = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("245")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("196")
	warningColor = lipgloss.Color("226")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingRight(2)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	groupStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	showStyle    = lipgloss.NewStyle().Foreground(successColor)
	hideStyle    = lipgloss.NewStyle().Foreground(errorColor)

	itemStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor).
				PaddingLeft(1)

	statusStyle  = lipgloss.NewStyle().Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	confirmStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(accentColor)

	footerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			MarginTop(1)
)
