package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampcode/amptown/internal/config"
	"github.com/ampcode/amptown/internal/gitrepo"
	"github.com/ampcode/amptown/internal/supervisor"
)

var spawnCmd = &cobra.Command{
	Use:   "spawn [repo-path]",
	Short: "Spawn the agent crew for a repository",
	Long: `Spawn the six-agent crew (three implementers, three reviewers) for the
given repository, defaulting to the current directory.

Each agent runs in its own detached tmux session and receives a one-shot
instruction prompt composed from its role preamble plus the optional global
and per-role instruction files. Agents whose sessions already exist are left
untouched; their instructions are not re-sent.

Sessions survive this command exiting. Use 'amptown stop' to terminate them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpawn,
}

var (
	spawnTown             string
	spawnLogsDir          string
	spawnGlobalInstr      string
	spawnReviewerInstr    string
	spawnImplementerInstr string
	spawnDryRun           bool
)

func init() {
	rootCmd.AddCommand(spawnCmd)

	spawnCmd.Flags().StringVar(&spawnTown, "town", "", "existing town directory to reuse (default: derived from repo path)")
	spawnCmd.Flags().StringVar(&spawnLogsDir, "logs-dir", "", "deprecated alias for --town; logs always live in <town>/logs")
	spawnCmd.Flags().StringVar(&spawnGlobalInstr, "instructions", "", "file with instructions for all agents")
	spawnCmd.Flags().StringVar(&spawnReviewerInstr, "reviewer-instructions", "", "file with instructions for reviewer agents only")
	spawnCmd.Flags().StringVar(&spawnImplementerInstr, "implementer-instructions", "", "file with instructions for implementer agents only")
	spawnCmd.Flags().BoolVar(&spawnDryRun, "dry-run", false, "report what would be done without creating sessions")
	_ = spawnCmd.Flags().MarkDeprecated("logs-dir", "use --town instead")
}

func runSpawn(cmd *cobra.Command, args []string) error {
	repoPath, err := resolveRepoPath(args)
	if err != nil {
		return err
	}

	cfg := config.Get()

	if !spawnDryRun {
		if err := gitrepo.CheckTools("tmux", "git", cfg.Agent.Command); err != nil {
			return err
		}
	}

	town := spawnTown
	if town == "" {
		town = spawnLogsDir
	}

	log := townLogger(repoPath, town, cfg)
	defer log.Close()

	sup, instanceID, err := newSupervisor(repoPath, cfg, log)
	if err != nil {
		return err
	}

	report, err := sup.Spawn(cmd.Context(), supervisor.SpawnOptions{
		TownOverride:                town,
		AgentCommand:                agentCommand(cfg),
		GlobalInstructionsPath:      spawnGlobalInstr,
		ReviewerInstructionsPath:    spawnReviewerInstr,
		ImplementerInstructionsPath: spawnImplementerInstr,
		DryRun:                      spawnDryRun,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Town %s (instance %s)\n", report.Workspace.Path, instanceID)
	if spawnDryRun {
		fmt.Println("Dry run; no sessions were created.")
	}
	printOutcomes(report.Outcomes)

	created, running, failed := report.Counts()
	fmt.Printf("\n%d created, %d already running, %d failed\n", created, running, failed)

	if report.AllFailed() {
		return fmt.Errorf("all %d agents failed to start", len(report.Outcomes))
	}
	return nil
}
