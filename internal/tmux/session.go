package tmux

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ampcode/amptown/internal/errors"
)

// Status is the liveness of a session as reported by the tmux server.
// There is no failed state: tmux does not expose why a session is gone, so a
// crashed agent and a cleanly stopped one both report StatusNotFound.
type Status int

const (
	// StatusNotFound means no live session of that name exists.
	StatusNotFound Status = iota
	// StatusRunning means a live session of that name exists.
	StatusRunning
)

// String returns the status label used in reports.
func (s Status) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "not found"
}

// Options configures a Manager.
type Options struct {
	// Socket is the tmux socket name, normally InstanceSocketName(id).
	Socket string
	// Prefix is the session-name prefix List filters on.
	Prefix string
	// Timeout bounds every individual tmux invocation.
	Timeout time.Duration
	// Width and Height are the dimensions of created sessions.
	Width, Height int
	// HistoryLimit is the scrollback line limit for created sessions.
	HistoryLimit int
}

// DefaultOptions returns Manager options for an instance with sensible
// dimensions for an interactive agent.
func DefaultOptions(instanceID string) Options {
	return Options{
		Socket:       InstanceSocketName(instanceID),
		Prefix:       SessionPrefix(instanceID),
		Timeout:      10 * time.Second,
		Width:        200,
		Height:       50,
		HistoryLimit: 50000,
	}
}

// Manager drives agent sessions on one instance's tmux socket.
type Manager struct {
	opts Options
}

// NewManager creates a Manager for the given options.
func NewManager(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Manager{opts: opts}
}

// run executes one tmux command bounded by the per-call timeout.
func (m *Manager) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	output, err := commandContext(ctx, m.opts.Socket, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w: tmux %s", errors.ErrTimeout, args[0])
	}
	if err != nil {
		return string(output), fmt.Errorf("tmux %s failed: %w: %s",
			args[0], err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// exists checks session liveness. tmux has-session exits 1 for a missing
// session; any other failure is a real error.
func (m *Manager) exists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	err := commandContext(ctx, m.opts.Socket, "has-session", "-t", "="+name).Run()
	if err == nil {
		return true, nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return false, fmt.Errorf("%w: tmux has-session", errors.ErrTimeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Exit 1 covers both "session not found" and "no server running".
		return false, nil
	}
	return false, err
}

// Create spawns a detached session named name, working in workdir, pipes its
// output to logPath, and launches the agent command inside it. It returns
// ErrSessionExists if a live session of that name already exists; the caller
// treats that as "already running", not a failure.
func (m *Manager) Create(ctx context.Context, name, workdir, command, logPath string) error {
	alive, err := m.exists(ctx, name)
	if err != nil {
		return errors.NewSessionError("create", name, err)
	}
	if alive {
		return errors.NewSessionError("create", name, errors.ErrSessionExists)
	}

	args := []string{
		"new-session",
		"-d",
		"-s", name,
		"-c", workdir,
		"-x", fmt.Sprintf("%d", m.opts.Width),
		"-y", fmt.Sprintf("%d", m.opts.Height),
	}
	if _, err := m.run(ctx, args...); err != nil {
		if strings.Contains(err.Error(), "duplicate session") {
			return errors.NewSessionError("create", name, errors.ErrSessionExists)
		}
		return errors.NewSessionError("create", name, err)
	}

	if _, err := m.run(ctx, "set-option", "-t", name, "history-limit",
		fmt.Sprintf("%d", m.opts.HistoryLimit)); err != nil {
		return errors.NewSessionError("create", name, err)
	}

	// Capture everything the agent prints into its own log file. One file
	// per agent; the tmux server does the writing, so the transcript
	// survives this process exiting.
	pipeCmd := fmt.Sprintf("cat >> %q", logPath)
	if _, err := m.run(ctx, "pipe-pane", "-o", "-t", name, pipeCmd); err != nil {
		return errors.NewSessionError("create", name, err)
	}

	if command != "" {
		if _, err := m.run(ctx, "send-keys", "-t", name, command, "Enter"); err != nil {
			// The session exists but the agent never started; tear it
			// down so a retry is not reported as already running.
			_ = m.Kill(ctx, name)
			return errors.NewSessionError("create", name, err)
		}
	}

	return nil
}

// Send types text into the session's interactive program followed by Enter.
// The text is sent literally so tmux does not interpret key names inside it.
// Returns ErrSessionNotFound if the session vanished since Create.
func (m *Manager) Send(ctx context.Context, name, text string) error {
	alive, err := m.exists(ctx, name)
	if err != nil {
		return errors.NewSessionError("send", name, err)
	}
	if !alive {
		return errors.NewSessionError("send", name, errors.ErrSessionNotFound)
	}

	if _, err := m.run(ctx, "send-keys", "-t", name, "-l", text); err != nil {
		return errors.NewSessionError("send", name, err)
	}
	if _, err := m.run(ctx, "send-keys", "-t", name, "Enter"); err != nil {
		return errors.NewSessionError("send", name, err)
	}
	return nil
}

// List enumerates live sessions whose names match this instance's prefix.
// A missing tmux server means no sessions, not an error.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	lctx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	output, err := commandContext(lctx, m.opts.Socket, "list-sessions", "-F", "#{session_name}").CombinedOutput()
	if err != nil {
		if lctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: tmux list-sessions", errors.ErrTimeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// No server running on this socket.
			return nil, nil
		}
		return nil, err
	}

	var sessions []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && strings.HasPrefix(line, m.opts.Prefix) {
			sessions = append(sessions, line)
		}
	}
	return sessions, nil
}

// Kill terminates the named session. A session that is already gone is a
// no-op, so stopping is idempotent.
func (m *Manager) Kill(ctx context.Context, name string) error {
	alive, err := m.exists(ctx, name)
	if err != nil {
		return errors.NewSessionError("kill", name, err)
	}
	if !alive {
		return nil
	}
	if _, err := m.run(ctx, "kill-session", "-t", "="+name); err != nil {
		if strings.Contains(err.Error(), "can't find session") {
			return nil
		}
		return errors.NewSessionError("kill", name, err)
	}
	return nil
}

// Inspect reports the liveness of the named session.
func (m *Manager) Inspect(ctx context.Context, name string) (Status, error) {
	alive, err := m.exists(ctx, name)
	if err != nil {
		return StatusNotFound, errors.NewSessionError("inspect", name, err)
	}
	if alive {
		return StatusRunning, nil
	}
	return StatusNotFound, nil
}
