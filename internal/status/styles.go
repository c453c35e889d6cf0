package status

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"}).
			Italic(true)

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1)
)

// Style returns the text style for a severity.
func Style(s Severity) lipgloss.Style {
	switch s {
	case SeveritySuccess:
		return successStyle
	case SeverityError:
		return errorStyle
	default:
		return loadingStyle
	}
}

func renderBlock(b Block) string {
	style := Style(b.Severity)
	return blockStyle.
		BorderForeground(style.GetForeground()).
		Render(style.Render(b.Text()))
}
