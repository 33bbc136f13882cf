package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/stobind/internal/config"
	"github.com/zjrosen/stobind/internal/log"
	"github.com/zjrosen/stobind/internal/profile"
	"github.com/zjrosen/stobind/internal/ui"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stobind",
	Short: "A terminal ui for managing game keybind profiles",
	Long: `A terminal user interface and CLI for importing, browsing and exporting
game keybind files. Profiles keep separate space and ground bindsets,
aliases, and per-key execution-order stabilization flags.`,
	Version: version,
	RunE:    runBrowser,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/stobind/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write a debug log to ~/.config/stobind/debug.log")
	rootCmd.PersistentFlags().String("profile", "",
		"profile to operate on (default: active_profile from config)")
	rootCmd.PersistentFlags().String("env", "",
		"environment, space or ground (default: default_environment from config)")

	_ = viper.BindPFlag("active_profile", rootCmd.PersistentFlags().Lookup("profile"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("db_path", defaults.DBPath)
	viper.SetDefault("default_environment", defaults.DefaultEnvironment)
	viper.SetDefault("watch_debounce_ms", defaults.WatchDebounceMS)
	viper.SetDefault("ui.show_icons", defaults.UI.ShowIcons)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .stobind/config.yaml (current directory)
		// 2. ~/.config/stobind/config.yaml (user config)
		if _, err := os.Stat(".stobind/config.yaml"); err == nil {
			viper.SetConfigFile(".stobind/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "stobind"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default one
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func initLogging() {
	if !debugMode && os.Getenv("STOBIND_DEBUG") == "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	logDir := filepath.Join(home, ".config", "stobind")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return
	}
	if _, err := log.Init(filepath.Join(logDir, "debug.log")); err == nil {
		log.SetEnabled(true)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "stobind", "config.yaml")
}

// configFilePath returns the loaded config file, or the default location
// when running on pure defaults.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigPath()
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	name, err := profileName(cmd)
	if err != nil {
		return err
	}
	prof, err := svc.Repo.FindByName(name)
	if err != nil {
		return err
	}

	model := ui.New(ui.Config{
		Repo:        svc.Repo,
		Profile:     prof,
		Environment: environment(cmd),
		ShowIcons:   cfg.UI.ShowIcons,
		StatusBar:   cfg.UI.ShowStatusBar,
		Logs:        log.NewListener(cmd.Context()),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// profileName resolves --profile, falling back to the configured active
// profile.
func profileName(cmd *cobra.Command) (string, error) {
	if name, _ := cmd.Flags().GetString("profile"); name != "" {
		return name, nil
	}
	if cfg.ActiveProfile != "" {
		return cfg.ActiveProfile, nil
	}
	return "", fmt.Errorf("no profile selected: pass --profile or run 'stobind profile use <name>'")
}

// environment resolves --env, falling back to the configured default.
func environment(cmd *cobra.Command) profile.Environment {
	if env, _ := cmd.Flags().GetString("env"); env != "" {
		return profile.Environment(env)
	}
	return profile.Environment(cfg.DefaultEnvironment)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
