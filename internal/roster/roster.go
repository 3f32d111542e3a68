// Package roster defines the fixed set of agent identities that amptown
// manages for a repository. The roster never changes at runtime: three
// implementers and three reviewers, each with a stable name that determines
// its tmux session and log file.
package roster

import "fmt"

// Role distinguishes the two kinds of agents in a town.
type Role int

const (
	// Implementer agents pick up work items and open pull requests.
	Implementer Role = iota
	// Reviewer agents review and land pull requests opened by implementers.
	Reviewer
)

// String returns the lowercase role name used in prompts and reports.
func (r Role) String() string {
	switch r {
	case Implementer:
		return "implementer"
	case Reviewer:
		return "reviewer"
	default:
		return "unknown"
	}
}

// Identity is one immutable roster entry. Identities are created once per
// process from Default() and never mutated.
type Identity struct {
	// Name is the agent's stable name, e.g. "impl-alpha".
	Name string
	// Role is the agent's side of the role partition.
	Role Role
	// Ordinal is the 1-based position within the role (alpha=1, beta=2, gamma=3).
	Ordinal int
}

// SessionName returns the tmux session name for this agent within the given
// instance. Session names follow "amptown-{instanceID}-{agentName}", the same
// convention the ampwatch dashboard discovers.
func (id Identity) SessionName(instanceID string) string {
	return fmt.Sprintf("amptown-%s-%s", instanceID, id.Name)
}

// LogFileName returns the file name (not path) of this agent's transcript log.
func (id Identity) LogFileName() string {
	return id.Name + ".log"
}

var callsigns = [...]string{"alpha", "beta", "gamma"}

// Default returns the six roster identities in spawn order: implementers
// alpha, beta, gamma, then reviewers alpha, beta, gamma. The order is fixed
// so that reports and logs are deterministic.
func Default() []Identity {
	ids := make([]Identity, 0, 6)
	for i, c := range callsigns {
		ids = append(ids, Identity{Name: "impl-" + c, Role: Implementer, Ordinal: i + 1})
	}
	for i, c := range callsigns {
		ids = append(ids, Identity{Name: "reviewer-" + c, Role: Reviewer, Ordinal: i + 1})
	}
	return ids
}

// Lookup returns the identity with the given name, or false if no roster
// entry has that name.
func Lookup(name string) (Identity, bool) {
	for _, id := range Default() {
		if id.Name == name {
			return id, true
		}
	}
	return Identity{}, false
}
