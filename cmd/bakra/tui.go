package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/bakraload/internal/controller"
	"github.com/elsanchez/bakraload/internal/logging"
	"github.com/elsanchez/bakraload/internal/opener"
	"github.com/elsanchez/bakraload/internal/saver"
	"github.com/elsanchez/bakraload/internal/status"
	"github.com/elsanchez/bakraload/internal/tui/dashboard"
)

// runTUI starts the dashboard. Logs go to a file so they do not draw over it.
func (a *app) runTUI(ctx context.Context) int {
	logger, closer, err := logging.OpenFile(a.cfg.Log)
	if err != nil {
		fmt.Fprintf(a.stderr, "Warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}
	a.logger = logger
	a.client = a.newClient()

	board := status.NewBoard()
	ctrl := controller.New(a.client, board,
		controller.WithMode(a.cfg.ResponseMode()),
		controller.WithFormat(a.cfg.Format()),
		controller.WithListing(a.cfg.UI.Listing),
		controller.WithSaver(saver.New(a.cfg.Download.OutputDir)),
		controller.WithOpener(opener.NewBrowser()),
		controller.WithLogger(logger),
	)

	logger.Info("starting dashboard",
		"service", a.client.BaseURL(),
		"mode", string(a.cfg.ResponseMode()),
		"output_dir", a.cfg.Download.OutputDir,
	)

	model := dashboard.NewModel(ctx, ctrl, board, a.cfg.Format())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
