// Package instruction composes the one-shot initialization prompt sent into
// each agent's session at creation time. There is no further structured
// channel to an agent once it is running, so this text plus naming convention
// is the entire coordination contract.
package instruction

import (
	"fmt"
	"os"
	"strings"

	"github.com/ampcode/amptown/internal/errors"
	"github.com/ampcode/amptown/internal/roster"
)

const implementerDescription = "You implement changes: pick an open piece of work, " +
	"make the change on a branch, and open a pull request for it."

const reviewerDescription = "You review changes: find open pull requests, review them, " +
	"request fixes or merge them when they are ready."

// Build composes the full instruction text for one agent. The output is a
// pure, deterministic function of its inputs: identity preamble first, then
// the global instructions if present, then the role instructions if present,
// each separated by a blank line. Nothing is truncated or reordered.
func Build(id roster.Identity, global, perRole string) string {
	var b strings.Builder

	desc := implementerDescription
	if id.Role == roster.Reviewer {
		desc = reviewerDescription
	}

	fmt.Fprintf(&b, "You are %s, %s agent %d of 3 in this repository's agent crew. %s\n",
		id.Name, id.Role, id.Ordinal, desc)
	fmt.Fprintf(&b, "Two other %s agents are working alongside you. "+
		"Before starting anything, check what your peers are already doing and avoid duplicate work with peers in your role.",
		id.Role)

	if global != "" {
		b.WriteString("\n\n")
		b.WriteString(global)
	}
	if perRole != "" {
		b.WriteString("\n\n")
		b.WriteString(perRole)
	}

	return b.String()
}

// Load reads an instruction file. An empty path yields empty instructions;
// any read failure is surfaced as ErrInstructionUnreadable so the caller
// aborts instead of composing with missing content.
func Load(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrInstructionUnreadable, path, err)
	}
	return string(data), nil
}
