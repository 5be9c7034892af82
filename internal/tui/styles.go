package tui

import "github.com/charmbracelet/lipgloss"

const (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("241")
	alert  = lipgloss.Color("196")
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(accent).
			Padding(0, 2).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(muted).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(muted)

	dangerStyle = lipgloss.NewStyle().Foreground(alert).Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(accent).Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
