package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the schedule as JSON",
		Long: `Export the full schedule as a JSON array, sorted by start time.

Without a file argument the schedule is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			if len(args) == 0 {
				return a.manager.Export(os.Stdout)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := a.manager.Export(f); err != nil {
				return err
			}

			fmt.Printf("Exported %d tasks to %s\n", a.manager.Len(), args[0])
			return nil
		},
	}
}
