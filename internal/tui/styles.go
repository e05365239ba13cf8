package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	styleCursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	styleDone = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	styleHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	styleFeed = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleForm = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 2)
)
