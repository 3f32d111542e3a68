package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampcode/amptown/internal/config"
	"github.com/ampcode/amptown/internal/gitrepo"
)

var stopCmd = &cobra.Command{
	Use:   "stop [repo-path]",
	Short: "Stop the agent crew",
	Long: `Terminate all six roster agent sessions for the given repository.
Stopping is idempotent: agents that are not running are reported as such.
The town directory and agent logs are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStop,
}

var stopTown string

func init() {
	rootCmd.AddCommand(stopCmd)
	stopCmd.Flags().StringVar(&stopTown, "town", "", "town directory the crew was spawned with")
}

func runStop(cmd *cobra.Command, args []string) error {
	repoPath, err := resolveRepoPath(args)
	if err != nil {
		return err
	}

	if err := gitrepo.CheckTools("tmux"); err != nil {
		return err
	}

	cfg := config.Get()
	log := townLogger(repoPath, stopTown, cfg)
	defer log.Close()

	sup, _, err := newSupervisor(repoPath, cfg, log)
	if err != nil {
		return err
	}

	report := sup.Stop(cmd.Context())
	printOutcomes(report.Outcomes)
	fmt.Println("\nTown directory and agent logs were kept.")
	return nil
}
