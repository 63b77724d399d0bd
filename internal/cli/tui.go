package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/focus/internal/app"
	"github.com/spf13/cobra"
)

// runTUI opens the terminal UI. The model saves after every change and
// waits for the last save before quitting.
func runTUI(cmd *cobra.Command, _ []string, deps *Dependencies) error {
	d, err := deps.Dispatcher(cmd.Context())
	if err != nil {
		return err
	}

	deps.Logger.Info("starting tui", "file", deps.Store.Path())
	model := app.New(deps.Config, d, deps.Store, deps.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
