package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/willie/internal/engine"
)

// Run starts the interactive TUI on top of the engine.
func Run(eng *engine.Engine, maxIterations int) error {
	p := tea.NewProgram(NewModel(eng, maxIterations), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
