package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true)

	draggingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	movedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	selectedMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Render("● ")

	pinnedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	sentinelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	zoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var groupColors = map[string]lipgloss.Color{
	"grey":   lipgloss.Color("250"),
	"blue":   lipgloss.Color("12"),
	"red":    lipgloss.Color("9"),
	"yellow": lipgloss.Color("11"),
	"green":  lipgloss.Color("10"),
	"pink":   lipgloss.Color("13"),
	"purple": lipgloss.Color("5"),
	"cyan":   lipgloss.Color("14"),
	"orange": lipgloss.Color("208"),
}

func groupStyle(name string) lipgloss.Style {
	c, ok := groupColors[name]
	if !ok {
		c = groupColors["grey"]
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
