// Package supervisor owns the spawn/status/stop lifecycle of the agent
// roster. It is deliberately stateless across invocations: every operation
// re-derives the state of the world from the tmux server and the filesystem,
// so there is no registry to fall out of sync with reality.
package supervisor

import (
	"context"
	"sync"

	"github.com/ampcode/amptown/internal/errors"
	"github.com/ampcode/amptown/internal/instruction"
	"github.com/ampcode/amptown/internal/logging"
	"github.com/ampcode/amptown/internal/roster"
	"github.com/ampcode/amptown/internal/tmux"
	"github.com/ampcode/amptown/internal/workspace"
)

// SessionManager is the narrow boundary to the external session host. The
// agents behind it are opaque interactive processes; this is the entire
// surface the supervisor can drive them through, which keeps the boundary
// explicit and mockable in tests.
type SessionManager interface {
	// Create spawns a detached session running command in workdir, with
	// output captured to logPath. ErrSessionExists when already live.
	Create(ctx context.Context, name, workdir, command, logPath string) error
	// Send types text into the session followed by a submit.
	// ErrSessionNotFound if the session vanished since Create.
	Send(ctx context.Context, name, text string) error
	// List enumerates live sessions matching this instance's prefix.
	List(ctx context.Context) ([]string, error)
	// Kill terminates the session; absent sessions are a no-op.
	Kill(ctx context.Context, name string) error
	// Inspect reports the session's liveness.
	Inspect(ctx context.Context, name string) (tmux.Status, error)
}

// RepositoryValidator checks that a path is a usable git working tree.
type RepositoryValidator interface {
	Validate(path string) error
}

// Supervisor coordinates the fixed roster for one repository instance.
type Supervisor struct {
	instanceID string
	repoPath   string
	sessions   SessionManager
	validator  RepositoryValidator
	identities []roster.Identity
	log        *logging.Logger
}

// New creates a Supervisor for the given repository instance.
func New(instanceID, repoPath string, sessions SessionManager, validator RepositoryValidator, log *logging.Logger) *Supervisor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Supervisor{
		instanceID: instanceID,
		repoPath:   repoPath,
		sessions:   sessions,
		validator:  validator,
		identities: roster.Default(),
		log:        log.WithComponent("supervisor"),
	}
}

// SpawnOptions configures one Spawn invocation.
type SpawnOptions struct {
	// TownOverride, when set, is an existing workspace directory to reuse
	// verbatim instead of the repository's default town.
	TownOverride string
	// AgentCommand is the full command line launched in every session.
	AgentCommand string
	// GlobalInstructionsPath, ReviewerInstructionsPath and
	// ImplementerInstructionsPath are optional instruction files.
	GlobalInstructionsPath      string
	ReviewerInstructionsPath    string
	ImplementerInstructionsPath string
	// DryRun records intended actions without touching the session host.
	DryRun bool
}

// Spawn brings the full roster up. Prerequisite failures (bad repository,
// unusable workspace, unreadable instruction files) abort before any session
// is touched. Per-agent failures never abort siblings: the report always
// carries one outcome per roster identity.
//
// An agent whose session already exists is reported as already running and
// left untouched; in particular its instructions are not re-sent, so a
// mid-flight agent never receives a second, conflicting prompt.
func (s *Supervisor) Spawn(ctx context.Context, opts SpawnOptions) (*SpawnReport, error) {
	if err := s.validator.Validate(s.repoPath); err != nil {
		return nil, err
	}

	ws, err := workspace.Resolve(s.repoPath, opts.TownOverride)
	if err != nil {
		return nil, err
	}
	s.log.Info("workspace resolved", "path", ws.Path, "created", ws.Created)

	global, err := instruction.Load(opts.GlobalInstructionsPath)
	if err != nil {
		return nil, err
	}
	reviewer, err := instruction.Load(opts.ReviewerInstructionsPath)
	if err != nil {
		return nil, err
	}
	implementer, err := instruction.Load(opts.ImplementerInstructionsPath)
	if err != nil {
		return nil, err
	}

	outcomes := make([]AgentOutcome, len(s.identities))
	var wg sync.WaitGroup

	// One task per roster identity, nothing more: the fan-out is naturally
	// bounded at six. Agents share no mutable state, so ordering between
	// them does not matter; within one agent, Create completes before Send.
	for i, id := range s.identities {
		wg.Add(1)
		go func(i int, id roster.Identity) {
			defer wg.Done()

			perRole := implementer
			if id.Role == roster.Reviewer {
				perRole = reviewer
			}
			text := instruction.Build(id, global, perRole)

			outcomes[i] = s.spawnOne(ctx, id, ws, opts, text)
		}(i, id)
	}
	wg.Wait()

	return &SpawnReport{Workspace: ws, Outcomes: outcomes}, nil
}

func (s *Supervisor) spawnOne(ctx context.Context, id roster.Identity, ws *workspace.Workspace, opts SpawnOptions, text string) AgentOutcome {
	name := id.SessionName(s.instanceID)
	log := s.log.WithAgent(id.Name)

	if opts.DryRun {
		log.Info("dry run", "session", name, "workdir", s.repoPath)
		return AgentOutcome{Identity: id, Session: name, Kind: OutcomeSkipped}
	}

	err := s.sessions.Create(ctx, name, s.repoPath, opts.AgentCommand, ws.LogPath(id.Name))
	if errors.Is(err, errors.ErrSessionExists) {
		log.Info("session already running", "session", name)
		return AgentOutcome{Identity: id, Session: name, Kind: OutcomeAlreadyRunning}
	}
	if err != nil {
		log.Error("session create failed", "session", name, "error", err)
		return AgentOutcome{Identity: id, Session: name, Kind: OutcomeFailed, Err: err}
	}

	if err := s.sessions.Send(ctx, name, text); err != nil {
		log.Error("instruction send failed", "session", name, "error", err)
		return AgentOutcome{Identity: id, Session: name, Kind: OutcomeFailed, Err: err}
	}

	log.Info("agent started", "session", name)
	return AgentOutcome{Identity: id, Session: name, Kind: OutcomeCreated}
}

// Status queries the tmux server for every roster agent. The result always
// has six entries; a missing session is informative, not an error. Nothing
// is cached and nothing on disk is created.
func (s *Supervisor) Status(ctx context.Context, townOverride string) ([]AgentSession, error) {
	ws, err := workspace.Locate(s.repoPath, townOverride)
	if err != nil {
		return nil, err
	}

	sessions := make([]AgentSession, len(s.identities))
	var wg sync.WaitGroup

	for i, id := range s.identities {
		wg.Add(1)
		go func(i int, id roster.Identity) {
			defer wg.Done()

			name := id.SessionName(s.instanceID)
			status, err := s.sessions.Inspect(ctx, name)
			if err != nil {
				// The host not answering for one agent reads as absent;
				// there is no failed state to report.
				status = tmux.StatusNotFound
			}
			sessions[i] = AgentSession{
				Identity: id,
				Session:  name,
				Status:   status,
				LogPath:  ws.LogPath(id.Name),
			}
		}(i, id)
	}
	wg.Wait()

	return sessions, nil
}

// Stop terminates every roster agent, idempotently. Agents that are not
// running are reported as such; per-agent failures never abort siblings.
// The town directory and agent logs are left in place.
func (s *Supervisor) Stop(ctx context.Context) *StopReport {
	outcomes := make([]AgentOutcome, len(s.identities))
	var wg sync.WaitGroup

	for i, id := range s.identities {
		wg.Add(1)
		go func(i int, id roster.Identity) {
			defer wg.Done()

			name := id.SessionName(s.instanceID)
			log := s.log.WithAgent(id.Name)

			status, err := s.sessions.Inspect(ctx, name)
			if err == nil && status == tmux.StatusNotFound {
				outcomes[i] = AgentOutcome{Identity: id, Session: name, Kind: OutcomeNotRunning}
				return
			}

			if err := s.sessions.Kill(ctx, name); err != nil {
				log.Error("session kill failed", "session", name, "error", err)
				outcomes[i] = AgentOutcome{Identity: id, Session: name, Kind: OutcomeFailed, Err: err}
				return
			}
			log.Info("agent stopped", "session", name)
			outcomes[i] = AgentOutcome{Identity: id, Session: name, Kind: OutcomeKilled}
		}(i, id)
	}
	wg.Wait()

	return &StopReport{Outcomes: outcomes}
}
