package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/bakraload/internal/controller"
)

// Async commands that return tea.Msg

func dispatch(ctx context.Context, ctrl *controller.Controller, intent controller.Intent, in controller.Input) tea.Cmd {
	return func() tea.Msg {
		outcome, err := ctrl.Dispatch(ctx, intent, in)
		return intentDoneMsg{intent: intent, outcome: outcome, err: err}
	}
}

func (m Model) submitSingle() tea.Cmd {
	return dispatch(m.ctx, m.ctrl, controller.IntentSubmitSingle, m.input(m.urlInput.Value()))
}

func (m Model) submitBulk() tea.Cmd {
	return dispatch(m.ctx, m.ctrl, controller.IntentSubmitBulk, m.input(m.bulkInput.Value()))
}

func (m Model) refreshListing() tea.Cmd {
	return dispatch(m.ctx, m.ctrl, controller.IntentRefreshListing, controller.Input{})
}

func (m Model) clearAll() tea.Cmd {
	return dispatch(m.ctx, m.ctrl, controller.IntentClearAll, controller.Input{Confirmer: controller.Approve})
}

func (m Model) retrieveItem(name string) tea.Cmd {
	return dispatch(m.ctx, m.ctrl, controller.IntentRetrieveItem, controller.Input{Name: name})
}

func (m Model) saveItem(name string) tea.Cmd {
	return dispatch(m.ctx, m.ctrl, controller.IntentSaveItem, controller.Input{Name: name})
}
