package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [description]",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			t, err := a.manager.Complete(args[0])
			if err != nil {
				return err
			}

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Completed %s: %s %s\n", t.ID, t.Description, t.Interval())
			return nil
		},
	}
}

func (a *App) reopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen [description]",
		Short: "Mark a completed task as pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			t, err := a.manager.Reopen(args[0])
			if err != nil {
				return err
			}

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Reopened %s: %s %s\n", t.ID, t.Description, t.Interval())
			return nil
		},
	}
}
