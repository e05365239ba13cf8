package ui

import (
	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/tui"
)

func (a *App) boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive schedule board",
		Long: `Open a full-screen interactive view of the schedule.

The board shows every task in start-time order, lets you add, complete and
remove tasks, and streams schedule events in its footer.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}
			return tui.Run(a.manager, a.saveSchedule)
		},
	}
}
