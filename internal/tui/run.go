package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astro-sched/astroplan/internal/schedule"
)

// Run starts the schedule board and blocks until the user quits. The board
// attaches its own event listener for the footer feed and detaches it on
// exit.
func Run(m *schedule.Manager, save func() error) error {
	model := New(m, save)

	l := listener{ch: model.feedCh}
	m.Attach(l)
	defer m.Detach(l)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
