package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astro-sched/astroplan/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  astroplan config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.FilePath = promptValue(reader, "Schedule file", cfg.Schedule.FilePath)
	cfg.Schedule.DefaultPriority = promptValue(reader, "Default priority (low/medium/high)", cfg.Schedule.DefaultPriority)
	cfg.Events.JournalPath = promptValue(reader, "Event journal path (empty to disable)", cfg.Events.JournalPath)
	cfg.Events.LogPath = promptValue(reader, "Event log path (empty to disable)", cfg.Events.LogPath)
	cfg.Events.Console = promptYesNo("Print events to the console?")
	cfg.UI.Color = promptValue(reader, "Color output (auto/always/never)", cfg.UI.Color)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[schedule]")
	fmt.Printf("  file_path        = %s\n", cfg.Schedule.FilePath)
	fmt.Printf("  default_priority = %s\n", cfg.Schedule.DefaultPriority)
	fmt.Println("\n[events]")
	fmt.Printf("  journal_path     = %s\n", cfg.Events.JournalPath)
	fmt.Printf("  log_path         = %s\n", cfg.Events.LogPath)
	fmt.Printf("  console          = %t\n", cfg.Events.Console)
	fmt.Println("\n[ui]")
	fmt.Printf("  color            = %s\n", cfg.UI.Color)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}
