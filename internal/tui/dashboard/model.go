package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/bakraload/internal/controller"
	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/status"
)

// view represents overlays drawn on top of the active tab
type view int

const (
	viewTabs view = iota
	viewConfirm
	viewHelp
)

// formatChoices is the cycle order of ctrl+f
var formatChoices = []domain.Format{
	domain.FormatNone,
	domain.FormatDefault,
	domain.FormatMP4,
	domain.FormatMP3,
}

// Model is the Bubbletea model for the download dashboard
type Model struct {
	// Navigation
	currentView view
	width       int
	height      int
	quitting    bool

	// Dependencies
	ctx   context.Context
	ctrl  *controller.Controller
	board *status.Board

	// Components
	urlInput  textinput.Model
	bulkInput textarea.Model
	spinner   spinner.Model

	// State
	cursor    int
	formatIdx int
}

// NewModel creates a dashboard driving ctrl. board must be the presenter
// ctrl was built with.
func NewModel(ctx context.Context, ctrl *controller.Controller, board *status.Board, format domain.Format) Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.youtube.com/watch?v=..."
	urlInput.Focus()
	urlInput.CharLimit = 2048
	urlInput.Width = 60

	bulkInput := textarea.New()
	bulkInput.Placeholder = "One URL per line"
	bulkInput.ShowLineNumbers = true
	bulkInput.CharLimit = 0
	bulkInput.SetWidth(64)
	bulkInput.SetHeight(8)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		currentView: viewTabs,
		ctx:         ctx,
		ctrl:        ctrl,
		board:       board,
		urlInput:    urlInput,
		bulkInput:   bulkInput,
		spinner:     s,
	}
	for i, f := range formatChoices {
		if f == format {
			m.formatIdx = i
		}
	}
	return m
}

// Init starts the spinner and the cursor blink
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m Model) format() domain.Format {
	return formatChoices[m.formatIdx]
}

func (m Model) input(text string) controller.Input {
	return controller.Input{Text: text, Format: m.format()}
}

// items returns the listed artifacts; the cursor indexes into it
func (m Model) items() []domain.ArtifactItem {
	return m.ctrl.Listing().Items
}

func (m Model) selected() (domain.ArtifactItem, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.ArtifactItem{}, false
	}
	return items[m.cursor], true
}
