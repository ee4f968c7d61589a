package cli

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorPurple = lipgloss.Color("#d3869b")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleTitle  = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleMentor = lipgloss.NewStyle().Foreground(colorBlue)
	styleYou    = lipgloss.NewStyle().Foreground(colorGreen)
	styleNotice = lipgloss.NewStyle().Foreground(colorYellow)
	styleErr    = lipgloss.NewStyle().Foreground(colorRed)
	styleTag    = lipgloss.NewStyle().Foreground(colorPurple)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	styleActiveTab = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).Underline(true)
	styleTab       = lipgloss.NewStyle().Foreground(colorDim)
)

// difficultyStyle maps a mission difficulty label to a color.
func difficultyStyle(difficulty string) lipgloss.Style {
	switch difficulty {
	case "Easy":
		return lipgloss.NewStyle().Foreground(colorGreen)
	case "Medium":
		return lipgloss.NewStyle().Foreground(colorYellow)
	case "Hard":
		return lipgloss.NewStyle().Foreground(colorHeader)
	case "Expert":
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return styleDim
	}
}
