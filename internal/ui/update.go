package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/task"
)

func (a *App) updateCmd() *cobra.Command {
	var (
		description string
		start       string
		end         string
		priority    string
	)

	cmd := &cobra.Command{
		Use:   "update [task]",
		Short: "Update fields of an existing task",
		Long: `Update one or more fields of a task, addressed by ID or description.

Only the flags you pass change; the update is applied atomically and rejected
as a whole if the new time window would overlap another task.

Example:
  astroplan update "Telescope calibration" --end=11:00 --priority=medium`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			id, err := a.resolveTaskID(args[0])
			if err != nil {
				return err
			}

			var cs task.Changeset
			if cmd.Flags().Changed("desc") {
				cs.Description = &description
			}
			if cmd.Flags().Changed("start") {
				cs.Start = &start
			}
			if cmd.Flags().Changed("end") {
				cs.End = &end
			}
			if cmd.Flags().Changed("priority") {
				p, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				cs.Priority = &p
			}

			updated, err := a.manager.Update(id, cs)
			if err != nil {
				return err
			}

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Updated %s: %s %s [%s]\n",
				updated.ID, updated.Description, updated.Interval(), updated.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: low, medium or high")

	return cmd
}

// resolveTaskID resolves a task reference, which may be a task ID or a
// description (case-insensitive, first match in start-time order).
func (a *App) resolveTaskID(ref string) (string, error) {
	if t, err := a.manager.Get(ref); err == nil {
		return t.ID, nil
	}
	for _, t := range a.manager.Tasks() {
		if strings.EqualFold(t.Description, ref) {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no task matching %q", task.ErrNotFound, ref)
}
