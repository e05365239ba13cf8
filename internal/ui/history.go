package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/events"
)

func (a *App) historyCmd() *cobra.Command {
	var (
		limit int
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent schedule events from the journal",
		Long: `Show recent schedule events recorded in the event journal, newest first.

Requires the journal to be enabled in the config (events.journal_path).`,
		Example: `  astroplan history
  astroplan history --limit=50
  astroplan history --kind=task_conflict`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}
			if a.journal == nil {
				return errors.New("event journal is disabled; set events.journal_path in the config")
			}

			if kind != "" && !events.Kind(kind).Valid() {
				return fmt.Errorf("unknown event kind %q", kind)
			}

			entries, err := a.journal.Recent(cmd.Context(), limit, kind)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No events recorded.")
				return nil
			}

			for _, e := range entries {
				line := fmt.Sprintf("%s  %-22s %s",
					e.OccurredAt.Format("2006-01-02 15:04:05"), e.Kind, e.Message)
				if e.ConflictingID != "" {
					line += formatMuted(fmt.Sprintf(" (conflicts with %s)", e.ConflictingID))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show")
	cmd.Flags().StringVar(&kind, "kind", "", "Only show events of this kind")

	return cmd
}
