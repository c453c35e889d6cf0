package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elsanchez/bakraload/internal/controller"
	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/status"
)

// Styles with adaptive colors for light/dark backgrounds
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"}).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "63"}).
			Padding(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "255", Dark: "255"}).
			Background(lipgloss.AdaptiveColor{Light: "63", Dark: "63"}).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"}).
				Padding(0, 2)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "255", Dark: "255"}).
			Background(lipgloss.AdaptiveColor{Light: "34", Dark: "28"}).
			Padding(0, 2)

	busyButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"}).
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "238"}).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"}).
			Padding(0, 1).
			Width(40)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("bakraload") + "\n\n")
	b.WriteString(m.viewTabBar() + "\n\n")

	switch m.currentView {
	case viewConfirm:
		b.WriteString(m.viewConfirm())
		return b.String()
	case viewHelp:
		b.WriteString(m.viewHelp())
		return b.String()
	}

	switch m.ctrl.ActiveTab() {
	case controller.TabSingle:
		b.WriteString(m.viewSingle())
	case controller.TabBulk:
		b.WriteString(m.viewBulk())
	default:
		b.WriteString(m.viewDownloads())
	}

	return b.String()
}

// viewTabBar renders the tab header with the active tab highlighted
func (m Model) viewTabBar() string {
	active := m.ctrl.ActiveTab()

	tabs := make([]string, 0, len(controller.Tabs))
	for i, t := range controller.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewButton renders a control with its current label
func (m Model) viewButton(id controller.ControlID) string {
	ctl := m.ctrl.Control(id)
	if ctl.Busy {
		return m.spinner.View() + " " + busyButtonStyle.Render(ctl.Label)
	}
	return buttonStyle.Render(ctl.Label)
}

func (m Model) viewFormat() string {
	f := m.format()
	if f == domain.FormatNone {
		return helpStyle.Render("Format: service default (ctrl+f to change)")
	}
	return helpStyle.Render(fmt.Sprintf("Format: %s (ctrl+f to change)", f))
}

// viewStatus renders a status region, indented
func (m Model) viewStatus(region status.Region) string {
	out := m.board.Render(region)
	if out == "" {
		return ""
	}
	return "\n" + lipgloss.NewStyle().MarginLeft(2).Render(out) + "\n"
}

// viewSingle renders the single URL form
func (m Model) viewSingle() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("  Video URL") + "\n")
	b.WriteString("  " + m.urlInput.View() + "\n\n")
	b.WriteString("  " + m.viewButton(controller.ControlSingle) + "  " + m.viewFormat() + "\n")
	b.WriteString(m.viewStatus(status.RegionSingle))

	help := "\n" + helpStyle.Render("  enter download • tab next tab • alt+1/2/3 jump • f1 help • esc quit")
	return b.String() + help
}

// viewBulk renders the bulk URL form
func (m Model) viewBulk() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("  URLs (one per line)") + "\n")
	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(m.bulkInput.View()) + "\n\n")
	b.WriteString("  " + m.viewButton(controller.ControlBulk) + "  " + m.viewFormat() + "\n")
	b.WriteString(m.viewStatus(status.RegionBulk))

	help := "\n" + helpStyle.Render("  ctrl+s download all • tab next tab • alt+1/2/3 jump • f1 help • esc quit")
	return b.String() + help
}

// viewDownloads renders the artifact cards
func (m Model) viewDownloads() string {
	var b strings.Builder
	b.WriteString("  " + m.viewButton(controller.ControlRefresh) + "  " + m.viewButton(controller.ControlClear) + "\n")
	b.WriteString(m.viewStatus(status.RegionDownloads))
	b.WriteString("\n")

	listing := m.ctrl.Listing()
	switch {
	case !m.ctrl.ListingEnabled() && !listing.Loaded:
		b.WriteString(helpStyle.Render("  Listing is disabled. Press r to load it.") + "\n")
	case !listing.Loaded:
		b.WriteString("  " + m.spinner.View() + " Loading...\n")
	case listing.Err != nil:
		// The error block is already in the downloads region
	case listing.Empty():
		b.WriteString("  📁\n  No downloads yet. Start downloading some content!\n")
	default:
		for i, item := range listing.Items {
			b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(renderCard(item, i == m.cursor)) + "\n")
		}
	}

	help := "\n" + helpStyle.Render(
		"  ↑/k up • ↓/j down • enter open • s save • r refresh • c clear all • 1/2/3 tabs • ? help • q quit",
	)
	return b.String() + help
}

// renderCard renders one listed artifact
func renderCard(item domain.ArtifactItem, selected bool) string {
	icon, meta, action := "📄", status.FormatSize(item.Size), "⬇ Download"
	if item.IsFolder() {
		icon, meta, action = "📁", fmt.Sprintf("%d files", item.FileCount), "📦 Download ZIP"
	}

	body := lipgloss.NewStyle().Bold(true).Render(item.Name) + "\n" +
		icon + " " + meta + "\n" +
		helpStyle.Render(action)

	if selected {
		return selectedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

// viewConfirm renders the clear confirmation dialog
func (m Model) viewConfirm() string {
	body := controller.ClearPrompt + "\n\n" + helpStyle.Render("y confirm • any other key cancels")
	return boxStyle.Render(body)
}

// viewHelp renders the help screen
func (m Model) viewHelp() string {
	help := `
  Tabs:
    tab / shift+tab   Next / previous tab
    alt+1/2/3         Jump to a tab (1/2/3 on Downloads)

  Single:
    enter             Download the URL
    ctrl+f            Cycle format

  Bulk:
    ctrl+s            Download every line
    ctrl+f            Cycle format

  Downloads:
    ↑/k ↓/j           Select an item
    enter / o         Open in the browser
    s                 Save into the output directory
    r                 Refresh the listing
    c                 Clear all downloads

    ctrl+c            Quit
`

	return help + "\n" + helpStyle.Render("  Press any key to return")
}
