// Package ui implements the astroplan command line interface.
package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/config"
	"github.com/astro-sched/astroplan/internal/db"
	"github.com/astro-sched/astroplan/internal/notify"
	"github.com/astro-sched/astroplan/internal/schedule"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	manager *schedule.Manager
	journal *db.Journal
	filelog *notify.FileLog
	root    *cobra.Command
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "astroplan",
		Short: "A single-day schedule planner with conflict detection",
		Long: `Astroplan manages one actor's daily schedule of time-bounded tasks.

No two tasks ever overlap: every add and update is conflict-checked
before it is committed, and every state change is announced to the
attached notifiers.`,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.updateCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.reopenCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.gapsCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.historyCmd())
	a.root.AddCommand(a.boardCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("astroplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases listener resources.
func (a *App) Close() error {
	if a.filelog != nil {
		_ = a.filelog.Close()
	}
	if a.journal != nil {
		return a.journal.Close()
	}
	return nil
}

// ensureManager lazily constructs the shared manager, loads the persisted
// schedule and attaches the configured listeners. The schedule file is
// loaded before listeners attach so startup restore does not produce
// notifications.
func (a *App) ensureManager() error {
	if a.manager != nil {
		return nil
	}

	applyColorMode(a.config.UI.Color)

	m := schedule.Default()

	if err := a.loadSchedule(m); err != nil {
		return err
	}

	if a.config.Events.Console {
		m.Attach(notify.NewConsole(os.Stderr))
	}
	if path := a.config.Events.LogPath; path != "" {
		l, err := notify.OpenFileLog(path)
		if err != nil {
			return err
		}
		a.filelog = l
		m.Attach(l)
	}
	if path := a.config.Events.JournalPath; path != "" {
		j, err := db.Open(path)
		if err != nil {
			return err
		}
		a.journal = j
		m.Attach(j)
	}

	a.manager = m
	return nil
}

// loadSchedule restores the schedule from the configured file, if present.
func (a *App) loadSchedule(m *schedule.Manager) error {
	f, err := os.Open(a.config.Schedule.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening schedule file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := m.Import(f); err != nil {
		return fmt.Errorf("loading schedule from %s: %w", a.config.Schedule.FilePath, err)
	}
	return nil
}

// saveSchedule writes the current schedule to the configured file. It
// serializes directly rather than through Export so routine persistence does
// not publish an export event after every command.
func (a *App) saveSchedule() error {
	path := a.config.Schedule.FilePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating schedule directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating schedule file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.manager.Tasks()); err != nil {
		return fmt.Errorf("writing schedule file: %w", err)
	}
	return nil
}
