package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	repoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	approvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	changesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))
)
