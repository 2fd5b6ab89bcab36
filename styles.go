package main

import "github.com/charmbracelet/lipgloss"

// docStyle is the shared outer frame style for content areas.
// The actual width/height are set dynamically in AppModel.View based on the
// current terminal size (tea.WindowSizeMsg).
var docStyle = lipgloss.NewStyle().Padding(1, 2)

// maxTabWidth caps a nav tab's label before it is truncated.
const maxTabWidth = 16

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "252"}).
			Background(lipgloss.Color("#04B575"))

	focusedTabStyle = lipgloss.NewStyle().Underline(true)

	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"})
)
