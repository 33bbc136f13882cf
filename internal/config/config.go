// Package config provides configuration types, defaults, and persistence
// for stobind.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/stobind/internal/log"
)

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowIcons     bool `mapstructure:"show_icons"`      // Show command-type glyphs in the browser
	ShowStatusBar bool `mapstructure:"show_status_bar"` // Show the status bar with merge statistics
}

// TracingConfig controls the optional OpenTelemetry pipeline.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`  // "stdout", "file" or "none"
	FilePath string `mapstructure:"file_path"` // Output for the "file" exporter
}

// Config holds all configuration options for stobind.
type Config struct {
	DBPath             string        `mapstructure:"db_path"`
	ActiveProfile      string        `mapstructure:"active_profile"`
	DefaultEnvironment string        `mapstructure:"default_environment"` // "space" or "ground"
	WatchDebounceMS    int           `mapstructure:"watch_debounce_ms"`
	UI                 UIConfig      `mapstructure:"ui"`
	Tracing            TracingConfig `mapstructure:"tracing"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DBPath:             DefaultDBPath(),
		ActiveProfile:      "",
		DefaultEnvironment: "space",
		WatchDebounceMS:    1000,
		UI: UIConfig{
			ShowIcons:     true,
			ShowStatusBar: true,
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}

// DefaultDBPath returns the profile database location under the user
// config directory.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stobind.db"
	}
	return filepath.Join(home, ".config", "stobind", "stobind.db")
}

// DefaultConfigTemplate is the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# stobind configuration
#
# db_path: where profiles are stored (defaults to ~/.config/stobind/stobind.db)
# active_profile: the profile commands operate on when --profile is omitted
# default_environment: "space" or "ground"

default_environment: space
watch_debounce_ms: 1000

ui:
  show_icons: true
  show_status_bar: true

tracing:
  enabled: false
  exporter: stdout
`
}

// WriteDefaultConfig writes the default config template to configPath,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// Validate reports configuration values no command can work with.
func Validate(cfg Config) error {
	switch cfg.DefaultEnvironment {
	case "space", "ground":
	default:
		return fmt.Errorf("default_environment must be %q or %q, got %q", "space", "ground", cfg.DefaultEnvironment)
	}
	if cfg.WatchDebounceMS < 0 {
		return fmt.Errorf("watch_debounce_ms must be non-negative, got %d", cfg.WatchDebounceMS)
	}
	return nil
}
