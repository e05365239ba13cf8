package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		end      string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a new task to the schedule",
		Long: `Add a new task to the schedule.

The task is rejected if its time window overlaps an already scheduled task.

Example:
  astroplan add "Telescope calibration" --start=09:00 --end=10:30 --priority=high`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			if priority == "" {
				priority = a.config.Schedule.DefaultPriority
			}

			t, err := task.New(args[0], start, end, priority)
			if err != nil {
				return err
			}

			if err := a.manager.Add(t); err != nil {
				return err
			}

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Added %s: %s %s [%s]\n", t.ID, t.Description, t.Interval(), t.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium or high (default from config)")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
