package tui

import "github.com/charmbracelet/lipgloss"

// — styles ——————————————————————————————————————————————————————————————————

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	starStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	langStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().Faint(true)

	activeSortStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Padding(0, 1)

	inactiveSortStyle = lipgloss.NewStyle().
				Faint(true).
				Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth - 2)

	focusedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	detailHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().Faint(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3).
			Width(58)
)

// languagePalette colors the language bar, one entry per share in order.
var languagePalette = []lipgloss.Color{"39", "205", "214", "42", "141", "203", "226", "45", "244"}
