package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the schedule from a JSON export",
		Long: `Replace the current schedule with the tasks from a JSON export file.

The import is all-or-nothing: if any record is invalid or two records overlap,
the current schedule is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureManager(); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := a.manager.Import(f); err != nil {
				return err
			}

			if err := a.saveSchedule(); err != nil {
				return err
			}

			fmt.Printf("Imported %d tasks from %s\n", a.manager.Len(), args[0])
			return nil
		},
	}
}
