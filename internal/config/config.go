// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/astro-sched/astroplan/internal/task"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Events   EventsConfig   `toml:"events"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds schedule persistence settings.
type ScheduleConfig struct {
	FilePath        string `toml:"file_path"`        // JSON export loaded/saved by the CLI
	DefaultPriority string `toml:"default_priority"` // "low", "medium" or "high"
}

// EventsConfig holds listener settings.
type EventsConfig struct {
	JournalPath string `toml:"journal_path"` // SQLite event journal ("" disables)
	LogPath     string `toml:"log_path"`     // JSON-lines event log ("" disables)
	Console     bool   `toml:"console"`      // console notifier on/off
}

// UIConfig holds output settings.
type UIConfig struct {
	Color string `toml:"color"` // "auto", "always", "never"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			FilePath:        defaultDataPath("schedule.json"),
			DefaultPriority: string(task.PriorityMedium),
		},
		Events: EventsConfig{
			JournalPath: defaultDataPath("events.db"),
			LogPath:     "", // disabled by default
			Console:     true,
		},
		UI: UIConfig{
			Color: "auto",
		},
	}
}

// defaultDataPath returns a path under the default data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "astroplan", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "astroplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and
// env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies
// env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Schedule.FilePath = expandPath(cfg.Schedule.FilePath)
	cfg.Events.JournalPath = expandPath(cfg.Events.JournalPath)
	cfg.Events.LogPath = expandPath(cfg.Events.LogPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ASTROPLAN_SCHEDULE_FILE"); v != "" {
		cfg.Schedule.FilePath = v
	}
	if v := os.Getenv("ASTROPLAN_DEFAULT_PRIORITY"); v != "" {
		cfg.Schedule.DefaultPriority = v
	}
	if v := os.Getenv("ASTROPLAN_JOURNAL_PATH"); v != "" {
		cfg.Events.JournalPath = v
	}
	if v := os.Getenv("ASTROPLAN_EVENT_LOG"); v != "" {
		cfg.Events.LogPath = v
	}
	if v := os.Getenv("ASTROPLAN_CONSOLE"); v != "" {
		cfg.Events.Console = v != "false" && v != "0"
	}
	if v := os.Getenv("ASTROPLAN_COLOR"); v != "" {
		cfg.UI.Color = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Schedule.FilePath == "" {
		return errors.New("schedule file_path must be set")
	}
	if _, err := task.ParsePriority(c.Schedule.DefaultPriority); err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be 'auto', 'always' or 'never', got %q", c.UI.Color)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
