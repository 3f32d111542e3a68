package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ampcode/amptown/internal/config"
	"github.com/ampcode/amptown/internal/gitrepo"
	"github.com/ampcode/amptown/internal/logging"
	"github.com/ampcode/amptown/internal/supervisor"
	"github.com/ampcode/amptown/internal/tmux"
	"github.com/ampcode/amptown/internal/workspace"
)

// resolveRepoPath turns the optional positional argument into an absolute
// repository path, defaulting to the current directory.
func resolveRepoPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository path: %w", err)
	}
	return abs, nil
}

// newSupervisor wires a Supervisor for the repository's instance: the
// instance ID keys the tmux socket, the session names, and the default town.
func newSupervisor(repoPath string, cfg *config.Config, log *logging.Logger) (*supervisor.Supervisor, string, error) {
	instanceID, err := workspace.InstanceID(repoPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to derive instance id: %w", err)
	}

	opts := tmux.DefaultOptions(instanceID)
	opts.Timeout = cfg.Tmux.CallTimeout()
	opts.Width = cfg.Tmux.Width
	opts.Height = cfg.Tmux.Height
	opts.HistoryLimit = cfg.Tmux.HistoryLimit

	sessions := tmux.NewManager(opts)
	validator := gitrepo.NewValidator()
	return supervisor.New(instanceID, repoPath, sessions, validator, log), instanceID, nil
}

// townLogger opens the debug logger in the town directory, but only when the
// town already exists: read-only commands never create it. Falls back to a
// no-op logger.
func townLogger(repoPath, townOverride string, cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NewNopLogger()
	}
	ws, err := workspace.Locate(repoPath, townOverride)
	if err != nil {
		return logging.NewNopLogger()
	}
	if _, err := os.Stat(ws.Path); err != nil {
		return logging.NewNopLogger()
	}
	log, err := logging.NewLogger(ws.Path, cfg.Logging.Level)
	if err != nil {
		return logging.NewNopLogger()
	}
	return log
}

// agentCommand builds the command line launched inside every session.
func agentCommand(cfg *config.Config) string {
	if len(cfg.Agent.Args) == 0 {
		return cfg.Agent.Command
	}
	return cfg.Agent.Command + " " + strings.Join(cfg.Agent.Args, " ")
}

// printOutcomes prints the per-agent summary lines every command ends with.
func printOutcomes(outcomes []supervisor.AgentOutcome) {
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Printf("  %-16s %s: %v\n", o.Identity.Name, o.Kind, o.Err)
		} else {
			fmt.Printf("  %-16s %s\n", o.Identity.Name, o.Kind)
		}
	}
}
