package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/bakraload/internal/controller"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 8 {
			m.urlInput.Width = min(msg.Width-8, 100)
			m.bulkInput.SetWidth(min(msg.Width-4, 104))
		}
		return m, nil

	case intentDoneMsg:
		return m.handleIntentDone(msg)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update focused input
	switch m.ctrl.ActiveTab() {
	case controller.TabSingle:
		m.urlInput, cmd = m.urlInput.Update(msg)
		cmds = append(cmds, cmd)
	case controller.TabBulk:
		m.bulkInput, cmd = m.bulkInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleIntentDone applies follow-up work once a dispatched intent finished
func (m Model) handleIntentDone(msg intentDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.intent {
	case controller.IntentSubmitSingle:
		if msg.err == nil && msg.outcome.Cleared {
			m.urlInput.Reset()
		}
	case controller.IntentSubmitBulk:
		if msg.err == nil && msg.outcome.Cleared {
			m.bulkInput.Reset()
		}
	case controller.IntentRefreshListing, controller.IntentClearAll:
		if n := len(m.items()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
	}
	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.currentView {
	case viewConfirm:
		return m.handleConfirmKeys(msg)
	case viewHelp:
		// Any key returns to the tabs
		m.currentView = viewTabs
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		next := (int(m.ctrl.ActiveTab()) + 1) % len(controller.Tabs)
		return m.switchTab(controller.Tabs[next])

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab"))):
		prev := (int(m.ctrl.ActiveTab()) + len(controller.Tabs) - 1) % len(controller.Tabs)
		return m.switchTab(controller.Tabs[prev])

	case key.Matches(msg, key.NewBinding(key.WithKeys("alt+1"))):
		return m.switchTab(controller.TabSingle)
	case key.Matches(msg, key.NewBinding(key.WithKeys("alt+2"))):
		return m.switchTab(controller.TabBulk)
	case key.Matches(msg, key.NewBinding(key.WithKeys("alt+3"))):
		return m.switchTab(controller.TabDownloads)

	case key.Matches(msg, key.NewBinding(key.WithKeys("f1"))):
		m.currentView = viewHelp
		return m, nil
	}

	switch m.ctrl.ActiveTab() {
	case controller.TabSingle:
		return m.handleSingleKeys(msg)
	case controller.TabBulk:
		return m.handleBulkKeys(msg)
	default:
		return m.handleDownloadsKeys(msg)
	}
}

// switchTab activates t, moves focus and refreshes the listing when asked
func (m Model) switchTab(t controller.Tab) (tea.Model, tea.Cmd) {
	refresh := m.ctrl.SwitchTab(t)

	var cmd tea.Cmd
	m.urlInput.Blur()
	m.bulkInput.Blur()
	switch t {
	case controller.TabSingle:
		cmd = m.urlInput.Focus()
	case controller.TabBulk:
		cmd = m.bulkInput.Focus()
	}

	if refresh {
		return m, tea.Batch(cmd, m.refreshListing())
	}
	return m, cmd
}

// handleSingleKeys handles keys on the single URL tab
func (m Model) handleSingleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.submitSingle()

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+f"))):
		m.formatIdx = (m.formatIdx + 1) % len(formatChoices)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.quitting = true
		return m, tea.Quit
	}

	before := m.urlInput.Value()
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)

	// Detection runs on every edit of the field
	if m.urlInput.Value() != before {
		m.ctrl.DetectInput(m.urlInput.Value())
	}
	return m, cmd
}

// handleBulkKeys handles keys on the bulk tab
func (m Model) handleBulkKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		return m, m.submitBulk()

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+f"))):
		m.formatIdx = (m.formatIdx + 1) % len(formatChoices)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.bulkInput, cmd = m.bulkInput.Update(msg)
	return m, cmd
}

// handleDownloadsKeys handles keys on the downloads tab
func (m Model) handleDownloadsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("q", "esc"))):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("1"))):
		return m.switchTab(controller.TabSingle)
	case key.Matches(msg, key.NewBinding(key.WithKeys("2"))):
		return m.switchTab(controller.TabBulk)
	case key.Matches(msg, key.NewBinding(key.WithKeys("3"))):
		return m.switchTab(controller.TabDownloads)

	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter", "o"))):
		if item, ok := m.selected(); ok {
			return m, m.retrieveItem(item.Name)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("s"))):
		if item, ok := m.selected(); ok {
			return m, m.saveItem(item.Name)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		return m, m.refreshListing()

	case key.Matches(msg, key.NewBinding(key.WithKeys("c"))):
		m.currentView = viewConfirm
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("?"))):
		m.currentView = viewHelp
		return m, nil
	}

	return m, nil
}

// handleConfirmKeys handles the clear confirmation dialog
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.currentView = viewTabs
	if key.Matches(msg, key.NewBinding(key.WithKeys("y", "Y"))) {
		return m, m.clearAll()
	}
	return m, nil
}
