package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ampcode/amptown/internal/roster"
	"github.com/ampcode/amptown/internal/workspace"
)

var logsCmd = &cobra.Command{
	Use:   "logs <agent-name> [repo-path]",
	Short: "Print an agent's transcript log",
	Long: `Print the captured transcript of one roster agent, e.g. impl-alpha or
reviewer-gamma. The transcript is written by the tmux server and survives
the agent stopping.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLogs,
}

var logsTown string

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().StringVar(&logsTown, "town", "", "town directory the crew was spawned with")
}

func runLogs(cmd *cobra.Command, args []string) error {
	id, ok := roster.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown agent %q; roster agents are impl-{alpha,beta,gamma} and reviewer-{alpha,beta,gamma}", args[0])
	}

	repoPath, err := resolveRepoPath(args[1:])
	if err != nil {
		return err
	}

	ws, err := workspace.Locate(repoPath, logsTown)
	if err != nil {
		return err
	}

	f, err := os.Open(ws.LogPath(id.Name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no transcript for %s yet (looked in %s)", id.Name, ws.LogsDir)
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}
