// Package errors provides centralized error definitions and error handling
// utilities for the amptown codebase. It defines sentinel errors for the
// orchestrator's failure taxonomy, domain error types with context fields,
// and classification helpers that determine whether a failure aborts a
// command or is scoped to a single agent.
//
// # Usage
//
// Creating errors:
//
//	// Sentinel with context wrapping
//	err := errors.NewWorkspaceError("resolve town directory", path, errors.ErrInvalidWorkspace)
//
//	// Agent-scoped error
//	err := errors.NewSessionError("create", sessionName, baseErr)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrSessionExists) { ... }
//
//	var sessErr *errors.SessionError
//	if errors.As(err, &sessErr) { ... }
//
//	if errors.IsAgentScoped(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Prerequisite errors. Any of these aborts the whole command before a single
// session is touched.
var (
	// ErrPathNotFound indicates that the target repository path does not exist.
	ErrPathNotFound = New("path not found")
	// ErrNotGitRepository indicates that the path is not a git working tree.
	ErrNotGitRepository = New("not a git repository")
	// ErrInvalidWorkspace indicates that an explicitly supplied town directory
	// is missing or not usable.
	ErrInvalidWorkspace = New("invalid town workspace")
	// ErrToolUnavailable indicates that a required external binary (tmux, git,
	// or the agent command) is not on PATH.
	ErrToolUnavailable = New("required tool not available")
	// ErrInstructionUnreadable indicates that an instruction file could not be read.
	ErrInstructionUnreadable = New("instruction file unreadable")
)

// Session errors. These are scoped to one agent and never abort siblings.
var (
	// ErrSessionExists indicates that a live session with the agent's name
	// already exists. Spawn converts this into an "already running" outcome.
	ErrSessionExists = New("session already exists")
	// ErrSessionNotFound indicates that a session vanished between operations.
	// Stop treats this as a no-op; Send treats it as a failure for that agent.
	ErrSessionNotFound = New("session not found")
	// ErrTimeout indicates that a single external tmux call exceeded its
	// deadline. Scoped to the agent whose call timed out.
	ErrTimeout = New("operation timed out")
)

// SessionError wraps an error from a tmux session operation with the session
// it concerned.
type SessionError struct {
	// Op is the operation that failed, e.g. "create" or "send".
	Op string
	// Session is the tmux session name.
	Session string
	// Err is the underlying error.
	Err error
}

// NewSessionError creates a SessionError for the given operation and session.
func NewSessionError(op, session string, err error) *SessionError {
	return &SessionError{Op: op, Session: session, Err: err}
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s: %v", e.Session, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error { return e.Err }

// WorkspaceError wraps an error concerning the town workspace directory.
type WorkspaceError struct {
	// Op is the operation that failed, e.g. "resolve" or "create".
	Op string
	// Path is the workspace path involved, if known.
	Path string
	// Err is the underlying error.
	Err error
}

// NewWorkspaceError creates a WorkspaceError for the given operation and path.
func NewWorkspaceError(op, path string, err error) *WorkspaceError {
	return &WorkspaceError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *WorkspaceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("workspace: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("workspace %s: %s: %v", e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *WorkspaceError) Unwrap() error { return e.Err }

// IsAgentScoped reports whether an error affects a single agent rather than
// the whole command. Agent-scoped errors are collected into the per-agent
// report; everything else aborts before any session is touched.
func IsAgentScoped(err error) bool {
	return Is(err, ErrSessionExists) ||
		Is(err, ErrSessionNotFound) ||
		Is(err, ErrTimeout)
}

// IsPrerequisite reports whether an error is a prerequisite failure that
// should abort the command with a non-zero exit code.
func IsPrerequisite(err error) bool {
	return Is(err, ErrPathNotFound) ||
		Is(err, ErrNotGitRepository) ||
		Is(err, ErrInvalidWorkspace) ||
		Is(err, ErrToolUnavailable) ||
		Is(err, ErrInstructionUnreadable)
}
