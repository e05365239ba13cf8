package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [description]",
		Short: "Remove a task by description",
		Long: `Remove the first task matching the description (case-insensitive).

Removing a task that does not exist is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			removed, ok := a.manager.Remove(args[0])
			if !ok {
				fmt.Printf("No task matching %q.\n", args[0])
				return nil
			}

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Removed %s: %s %s\n", removed.ID, removed.Description, removed.Interval())
			return nil
		},
	}
}
