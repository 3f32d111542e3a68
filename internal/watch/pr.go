// Package watch implements the live dashboard over a running agent town:
// roster liveness, per-agent activity gleaned from transcript logs, and the
// pull requests the crew has opened and merged.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// PullRequest is one entry from gh's JSON pull request listing.
type PullRequest struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	State       string `json:"state"`
	Author      Author `json:"author"`
	CreatedAt   string `json:"createdAt"`
	HeadRefName string `json:"headRefName"`
}

// Author is the author field of a pull request.
type Author struct {
	Login string `json:"login"`
}

// PRLister lists pull requests for the target repository.
type PRLister interface {
	// ListOpen returns the repository's open pull requests.
	ListOpen(ctx context.Context) ([]PullRequest, error)
	// ListMerged returns up to limit recently merged pull requests.
	ListMerged(ctx context.Context, limit int) ([]PullRequest, error)
}

// GHPRLister lists pull requests through the gh CLI. The dashboard treats
// any failure (gh missing, no remote, rate limit) as an empty list: PRs are
// decoration on the roster view, not a prerequisite.
type GHPRLister struct {
	// RepoPath is the repository to run gh in.
	RepoPath string
}

const prJSONFields = "number,title,state,author,createdAt,headRefName"

// ListOpen returns the repository's open pull requests.
func (l *GHPRLister) ListOpen(ctx context.Context) ([]PullRequest, error) {
	return l.list(ctx, "pr", "list", "--json", prJSONFields)
}

// ListMerged returns up to limit recently merged pull requests.
func (l *GHPRLister) ListMerged(ctx context.Context, limit int) ([]PullRequest, error) {
	return l.list(ctx, "pr", "list", "--state", "merged",
		"--limit", strconv.Itoa(limit), "--json", prJSONFields)
}

func (l *GHPRLister) list(ctx context.Context, args ...string) ([]PullRequest, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Dir = l.RepoPath
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gh %s failed: %w", args[0], err)
	}

	var prs []PullRequest
	if err := json.Unmarshal(output, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return prs, nil
}
