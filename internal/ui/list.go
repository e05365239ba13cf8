package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		priority string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled tasks in start-time order",
		Long: `List scheduled tasks, sorted by start time.

With --priority only tasks of that priority are shown. With --from and --to
only tasks overlapping the half-open window [from, to) are shown.`,
		Example: `  astroplan list
  astroplan list --priority=high
  astroplan list --from=09:00 --to=12:00`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			var tasks []*task.Task
			switch {
			case from != "" || to != "":
				var err error
				tasks, err = a.manager.TasksInRange(from, to)
				if err != nil {
					return err
				}
			case priority != "":
				p, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				tasks = a.manager.TasksByPriority(p)
			default:
				tasks = a.manager.Tasks()
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks scheduled.")
				return nil
			}

			fmt.Println(formatHeader("Schedule"))
			width := termWidth()
			for _, t := range tasks {
				fmt.Println(formatTaskLine(t, width))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Only show tasks with this priority")
	cmd.Flags().StringVar(&from, "from", "", "Window start (HH:MM, requires --to)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (HH:MM, requires --from)")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

// formatTaskLine renders one schedule row, truncated to the terminal width.
func formatTaskLine(t *task.Task, width int) string {
	status := "○"
	if t.Completed {
		status = formatDone("✓")
	}

	desc := t.Description
	// 24 columns of status, interval, priority tag and padding.
	if room := width - 24; room > 3 && len(desc) > room {
		desc = desc[:room-1] + "…"
	}
	if t.Completed {
		desc = formatMuted(desc)
	}

	return fmt.Sprintf("  %s %s  %s %s", status, t.Interval(), desc, paintPriority(t.Priority))
}

// paintPriority renders the priority tag in its color.
func paintPriority(p task.Priority) string {
	tag := fmt.Sprintf("[%s]", p)
	switch p {
	case task.PriorityHigh:
		return colorHigh.Sprint(tag)
	case task.PriorityMedium:
		return colorMedium.Sprint(tag)
	default:
		return colorLow.Sprint(tag)
	}
}
