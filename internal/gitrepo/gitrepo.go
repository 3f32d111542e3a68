// Package gitrepo validates that a target path is a usable git working tree
// and that the external tools amptown depends on are installed.
//
// The package performs read-only checks only. All git interaction beyond
// "is this a working tree" belongs to the spawned agents, not the
// orchestrator.
package gitrepo

import (
	"os"
	"os/exec"
	"strings"

	"github.com/ampcode/amptown/internal/errors"
)

// CommandExecutor abstracts command execution for testability.
// This allows tests to mock git invocations without executing them.
type CommandExecutor interface {
	// Run executes a command in dir and returns combined output.
	Run(dir string, name string, args ...string) ([]byte, error)
}

// CLICommandExecutor executes commands using os/exec.
type CLICommandExecutor struct{}

// Run executes a command and returns combined output.
func (e *CLICommandExecutor) Run(dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Validator checks repository paths.
type Validator struct {
	executor CommandExecutor
}

// NewValidator creates a Validator backed by the git CLI.
func NewValidator() *Validator {
	return &Validator{executor: &CLICommandExecutor{}}
}

// NewValidatorWithExecutor creates a Validator with a custom executor.
// This is primarily useful for testing.
func NewValidatorWithExecutor(executor CommandExecutor) *Validator {
	return &Validator{executor: executor}
}

// Validate reports whether path exists and is inside a git working tree.
// It returns ErrPathNotFound if the path does not exist and
// ErrNotGitRepository if it exists but is not a working tree. No mutation.
func (v *Validator) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ErrPathNotFound
		}
		return err
	}
	if !info.IsDir() {
		return errors.ErrNotGitRepository
	}

	output, err := v.executor.Run(path, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(string(output)) != "true" {
		return errors.ErrNotGitRepository
	}
	return nil
}

// CheckTools verifies that every named binary is on PATH. It is called once
// at command startup, before any session is touched, and returns
// ErrToolUnavailable naming the first missing tool.
func CheckTools(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return errors.Join(errors.ErrToolUnavailable, err)
		}
	}
	return nil
}
