package cmd

import (
	"path/filepath"
	"testing"

	"github.com/ampcode/amptown/internal/config"
)

func TestResolveRepoPath(t *testing.T) {
	t.Run("defaults to current directory", func(t *testing.T) {
		got, err := resolveRepoPath(nil)
		if err != nil {
			t.Fatalf("resolveRepoPath() error = %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("resolveRepoPath() = %q, want absolute path", got)
		}
	})

	t.Run("absolutizes a relative argument", func(t *testing.T) {
		got, err := resolveRepoPath([]string{"some/repo"})
		if err != nil {
			t.Fatalf("resolveRepoPath() error = %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("resolveRepoPath() = %q, want absolute path", got)
		}
		if filepath.Base(got) != "repo" {
			t.Errorf("resolveRepoPath() = %q, want path ending in repo", got)
		}
	})

	t.Run("keeps an absolute argument", func(t *testing.T) {
		got, err := resolveRepoPath([]string{"/tmp/repo"})
		if err != nil {
			t.Fatalf("resolveRepoPath() error = %v", err)
		}
		if got != "/tmp/repo" {
			t.Errorf("resolveRepoPath() = %q, want /tmp/repo", got)
		}
	})
}

func TestAgentCommand(t *testing.T) {
	cfg := config.Default()
	if got, want := agentCommand(cfg), "amp --dangerously-allow-all --no-ide"; got != want {
		t.Errorf("agentCommand() = %q, want %q", got, want)
	}

	cfg.Agent.Args = nil
	if got := agentCommand(cfg); got != "amp" {
		t.Errorf("agentCommand() without args = %q, want amp", got)
	}
}

func TestTownLoggerWithoutTownIsNop(t *testing.T) {
	cfg := config.Default()
	repo := t.TempDir()
	t.Setenv("TMPDIR", t.TempDir())

	log := townLogger(repo, "", cfg)
	if log == nil {
		t.Fatal("townLogger() = nil")
	}
	// Must not have created the town as a side effect.
	log.Info("probe")
	if err := log.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
