package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampcode/amptown/internal/config"
	"github.com/ampcode/amptown/internal/gitrepo"
	"github.com/ampcode/amptown/internal/logging"
)

var statusCmd = &cobra.Command{
	Use:   "status [repo-path]",
	Short: "Show the state of the agent crew",
	Long: `Show the liveness of all six roster agents for the given repository.
Agents that are not running are listed too; an empty town is not an error.
The state is re-derived from the tmux server on every call.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

var statusTown string

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusTown, "town", "", "town directory to read agent logs from")
}

func runStatus(cmd *cobra.Command, args []string) error {
	repoPath, err := resolveRepoPath(args)
	if err != nil {
		return err
	}

	if err := gitrepo.CheckTools("tmux"); err != nil {
		return err
	}

	cfg := config.Get()
	sup, instanceID, err := newSupervisor(repoPath, cfg, logging.NewNopLogger())
	if err != nil {
		return err
	}

	sessions, err := sup.Status(cmd.Context(), statusTown)
	if err != nil {
		return err
	}

	fmt.Printf("Instance %s\n", instanceID)
	for _, s := range sessions {
		fmt.Printf("  %-16s %-10s %s\n", s.Identity.Name, s.Status, s.Session)
	}
	return nil
}
