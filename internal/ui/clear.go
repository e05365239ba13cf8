package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all tasks from the schedule",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			n := a.manager.Len()
			if n == 0 {
				fmt.Println("Schedule is already empty.")
				return nil
			}

			if !yes {
				fmt.Printf("Remove all %d tasks? [y/N] ", n)
				var answer string
				_, _ = fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			a.manager.Clear()

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Removed %d tasks.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
