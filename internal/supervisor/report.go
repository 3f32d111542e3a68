package supervisor

import (
	"github.com/ampcode/amptown/internal/roster"
	"github.com/ampcode/amptown/internal/tmux"
	"github.com/ampcode/amptown/internal/workspace"
)

// OutcomeKind tags what happened to one agent during a roster operation.
type OutcomeKind int

const (
	// OutcomeCreated means the session was created and instructions sent.
	OutcomeCreated OutcomeKind = iota
	// OutcomeAlreadyRunning means a live session already existed. The agent
	// was left alone: no restart, no re-sent instructions.
	OutcomeAlreadyRunning
	// OutcomeSkipped means a dry run recorded the intended action without
	// touching the session host.
	OutcomeSkipped
	// OutcomeKilled means the session was terminated.
	OutcomeKilled
	// OutcomeNotRunning means there was no session to terminate.
	OutcomeNotRunning
	// OutcomeFailed means the operation failed for this agent. Err holds why.
	OutcomeFailed
)

// String returns the label printed in per-agent summary lines.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyRunning:
		return "already running"
	case OutcomeSkipped:
		return "dry run"
	case OutcomeKilled:
		return "killed"
	case OutcomeNotRunning:
		return "not running"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AgentOutcome is the result of a spawn or stop operation for one agent.
type AgentOutcome struct {
	// Identity is the roster entry this outcome concerns.
	Identity roster.Identity
	// Session is the tmux session name.
	Session string
	// Kind tags the outcome.
	Kind OutcomeKind
	// Err is set when Kind is OutcomeFailed.
	Err error
}

// SpawnReport aggregates the per-agent outcomes of one Spawn invocation.
// It always contains one outcome per roster identity, in roster order.
type SpawnReport struct {
	// Workspace is the resolved town the agents share.
	Workspace *workspace.Workspace
	// Outcomes holds exactly one entry per roster identity.
	Outcomes []AgentOutcome
}

// Counts returns how many agents were created, found already running, and failed.
func (r *SpawnReport) Counts() (created, running, failed int) {
	for _, o := range r.Outcomes {
		switch o.Kind {
		case OutcomeCreated, OutcomeSkipped:
			created++
		case OutcomeAlreadyRunning:
			running++
		case OutcomeFailed:
			failed++
		}
	}
	return created, running, failed
}

// AllFailed reports whether every agent failed to start. Spawn exits non-zero
// only in this case; partial failure is reported but still exits zero.
func (r *SpawnReport) AllFailed() bool {
	for _, o := range r.Outcomes {
		if o.Kind != OutcomeFailed {
			return false
		}
	}
	return len(r.Outcomes) > 0
}

// StopReport aggregates the per-agent outcomes of one Stop invocation.
type StopReport struct {
	// Outcomes holds exactly one entry per roster identity.
	Outcomes []AgentOutcome
}

// AgentSession is the runtime view of one roster agent, derived by querying
// the tmux server. It is never cached across calls; the session host is the
// source of truth.
type AgentSession struct {
	// Identity is the roster entry.
	Identity roster.Identity
	// Session is the tmux session name.
	Session string
	// Status is the liveness the tmux server reported.
	Status tmux.Status
	// LogPath is where this agent's transcript is captured.
	LogPath string
}
