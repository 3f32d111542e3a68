// Package cmd implements the amptown command-line interface. The commands
// are a thin front over the supervisor: they parse flags, wire up the tmux
// session manager for the target repository's instance, and print per-agent
// reports.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ampcode/amptown/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "amptown",
	Short: "Fixed-roster coding agent orchestrator",
	Long: `Amptown runs a fixed crew of six autonomous coding agents against a
single repository: three implementers that open pull requests and three
reviewers that review and land them. Each agent lives in its own detached
tmux session; amptown spawns them, injects their instructions, and reports
on them, holding no state of its own between invocations.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/amptown/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/amptown")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AMPTOWN")
	// Replace dots with underscores for nested keys in env vars
	// e.g., AMPTOWN_TMUX_CALL_TIMEOUT_SECONDS for tmux.call_timeout_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
