package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ampcode/amptown/internal/config"
	"github.com/ampcode/amptown/internal/gitrepo"
	"github.com/ampcode/amptown/internal/logging"
	"github.com/ampcode/amptown/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [repo-path]",
	Short: "Live dashboard for the agent crew",
	Long: `Open a live dashboard showing each roster agent's liveness and recent
activity, plus the repository's open and merged pull requests (via gh, when
available). The view refreshes itself; press q to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var watchTown string

var errNotATerminal = errors.New("watch requires an interactive terminal")

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchTown, "town", "", "town directory to read agent logs from")
}

func runWatch(cmd *cobra.Command, args []string) error {
	repoPath, err := resolveRepoPath(args)
	if err != nil {
		return err
	}

	if err := gitrepo.CheckTools("tmux"); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotATerminal
	}

	cfg := config.Get()
	sup, _, err := newSupervisor(repoPath, cfg, logging.NewNopLogger())
	if err != nil {
		return err
	}

	model := watch.NewModel(sup, &watch.GHPRLister{RepoPath: repoPath}, watchTown,
		cfg.Watch.RefreshInterval(), cfg.Watch.MergedPRLimit)
	return watch.Run(model)
}
