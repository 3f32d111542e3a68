// Package config defines the amptown configuration, loaded through viper
// from config file, environment (AMPTOWN_*), and flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete amptown configuration.
type Config struct {
	Agent   AgentConfig   `mapstructure:"agent"`
	Tmux    TmuxConfig    `mapstructure:"tmux"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AgentConfig controls the agent process launched in every session.
type AgentConfig struct {
	// Command is the agent binary to launch in each session.
	Command string `mapstructure:"command"`
	// Args are extra arguments appended to the agent command.
	Args []string `mapstructure:"args"`
}

// TmuxConfig controls the tmux sessions hosting the agents.
type TmuxConfig struct {
	// Width is the width of created tmux sessions.
	Width int `mapstructure:"width"`
	// Height is the height of created tmux sessions.
	Height int `mapstructure:"height"`
	// HistoryLimit is the number of lines of scrollback to keep.
	HistoryLimit int `mapstructure:"history_limit"`
	// CallTimeoutSeconds bounds each individual tmux invocation. A timeout
	// fails only the agent whose call it was, never the whole roster.
	CallTimeoutSeconds int `mapstructure:"call_timeout_seconds"`
}

// WatchConfig controls the watch dashboard.
type WatchConfig struct {
	// RefreshSeconds is how often the dashboard re-queries tmux and gh.
	RefreshSeconds int `mapstructure:"refresh_seconds"`
	// MergedPRLimit is how many merged pull requests to list.
	MergedPRLimit int `mapstructure:"merged_pr_limit"`
}

// LoggingConfig controls the orchestrator's own debug logging.
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true).
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info").
	Level string `mapstructure:"level"`
}

// CallTimeout returns the per-call tmux timeout as a duration.
func (c *TmuxConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

// RefreshInterval returns the watch refresh period as a duration.
func (c *WatchConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			Command: "amp",
			Args:    []string{"--dangerously-allow-all", "--no-ide"},
		},
		Tmux: TmuxConfig{
			Width:              200,
			Height:             50,
			HistoryLimit:       50000,
			CallTimeoutSeconds: 10,
		},
		Watch: WatchConfig{
			RefreshSeconds: 5,
			MergedPRLimit:  10,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers all default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("agent.command", defaults.Agent.Command)
	viper.SetDefault("agent.args", defaults.Agent.Args)

	viper.SetDefault("tmux.width", defaults.Tmux.Width)
	viper.SetDefault("tmux.height", defaults.Tmux.Height)
	viper.SetDefault("tmux.history_limit", defaults.Tmux.HistoryLimit)
	viper.SetDefault("tmux.call_timeout_seconds", defaults.Tmux.CallTimeoutSeconds)

	viper.SetDefault("watch.refresh_seconds", defaults.Watch.RefreshSeconds)
	viper.SetDefault("watch.merged_pr_limit", defaults.Watch.MergedPRLimit)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Agent.Command == "" {
		return fmt.Errorf("agent.command must not be empty")
	}
	if c.Tmux.Width <= 0 || c.Tmux.Height <= 0 {
		return fmt.Errorf("tmux dimensions must be positive, got %dx%d", c.Tmux.Width, c.Tmux.Height)
	}
	if c.Tmux.CallTimeoutSeconds <= 0 {
		return fmt.Errorf("tmux.call_timeout_seconds must be positive, got %d", c.Tmux.CallTimeoutSeconds)
	}
	if c.Watch.RefreshSeconds <= 0 {
		return fmt.Errorf("watch.refresh_seconds must be positive, got %d", c.Watch.RefreshSeconds)
	}
	return nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "amptown")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".amptown"
	}
	return filepath.Join(home, ".config", "amptown")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
