package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/ui"
)

// TUI launches the interactive terminal browser for the watchlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Logs go to a file so they don't corrupt the rendered screen.
	fileLogger, err := shared.NewFileLogger("./tmp/watchlist-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	svc, _, closeDB, err := r.openService(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	p := tea.NewProgram(ui.NewModel(ctx, svc), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
