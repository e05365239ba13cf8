package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) gapsCmd() *cobra.Command {
	var (
		from string
		to   string
		fit  int
	)

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Show free slots in the schedule",
		Long: `Show the free slots within a window of the day.

With --fit the earliest slot that can hold a task of that many minutes is
shown instead.`,
		Example: `  astroplan gaps
  astroplan gaps --from=09:00 --to=17:00
  astroplan gaps --fit=45`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			if fit > 0 {
				slot, ok, err := a.manager.NextFit(from, to, fit)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Printf("No free slot of %d minutes between %s and %s.\n", fit, from, to)
					return nil
				}
				fmt.Printf("Earliest fit: %s-%s (%d minutes free)\n", slot.Start, slot.End, slot.Minutes())
				if interval, ok, err := a.manager.Suggest(from, to, fit); err == nil && ok {
					fmt.Printf("Schedule it with: astroplan add \"...\" --start=%s --end=%s\n",
						interval.Start, interval.End)
				}
				return nil
			}

			free, err := a.manager.Gaps(from, to)
			if err != nil {
				return err
			}
			if len(free) == 0 {
				fmt.Printf("No free slots between %s and %s.\n", from, to)
				return nil
			}

			fmt.Println(formatHeader("Free slots"))
			for _, s := range free {
				fmt.Printf("  %s-%s  %s\n", s.Start, s.End, formatMuted(fmt.Sprintf("%d min", s.Minutes())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "00:00", "Window start (HH:MM)")
	cmd.Flags().StringVar(&to, "to", "23:59", "Window end (HH:MM)")
	cmd.Flags().IntVar(&fit, "fit", 0, "Show the earliest slot holding this many minutes")

	return cmd
}
