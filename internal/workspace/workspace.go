// Package workspace resolves the shared "town" directory that all agents of
// one repository work out of. The town holds the per-agent transcript logs
// and whatever coordination files the agents themselves maintain; the
// orchestrator only ensures the directory exists and never deletes it.
package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/ampcode/amptown/internal/errors"
)

// LogsDirName is the subdirectory of the town that holds per-agent logs.
const LogsDirName = "logs"

// Workspace is the resolved town directory for one repository instance.
type Workspace struct {
	// Path is the absolute town directory path.
	Path string
	// LogsDir is the directory agent transcript logs are written to.
	LogsDir string
	// Created reports whether this resolution created the directory, as
	// opposed to reusing one that already existed.
	Created bool
}

// InstanceID derives the stable 8-hex-character instance ID for a repository.
// The ID is a prefix of the SHA-256 of the repository's canonical path, so
// repeated runs against the same repository always land in the same town.
func InstanceID(repoPath string) (string, error) {
	canonical, err := filepath.Abs(repoPath)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(canonical); err == nil {
		canonical = resolved
	}
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:8], nil
}

// DefaultPath returns the default town directory for an instance ID, under
// the system temp root. This matches the "amptown-{instanceID}" layout the
// ampwatch dashboard scans for.
func DefaultPath(instanceID string) string {
	return filepath.Join(os.TempDir(), "amptown-"+instanceID)
}

// Locate returns the town workspace paths for the given repository without
// creating anything. Status and stop use this: they must work against
// whatever exists, and querying is never allowed to mutate the filesystem.
func Locate(repoPath, explicitPath string) (*Workspace, error) {
	path := explicitPath
	if path == "" {
		id, err := InstanceID(repoPath)
		if err != nil {
			return nil, errors.NewWorkspaceError("derive instance id", repoPath, err)
		}
		path = DefaultPath(id)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewWorkspaceError("locate", path, err)
	}
	return &Workspace{
		Path:    abs,
		LogsDir: filepath.Join(abs, LogsDirName),
		Created: false,
	}, nil
}

// Resolve returns the town workspace for the given repository.
//
// If explicitPath is non-empty it must already exist as a directory and is
// reused verbatim; ownership stays with the caller. Otherwise the default
// town for the repository's instance ID is used, created if missing. Creation
// is a single mkdir so concurrent resolutions of the same repository cannot
// race into duplicate towns: exactly one caller observes Created=true.
//
// In both cases the logs subdirectory is ensured. The town is never deleted
// by the orchestrator.
func Resolve(repoPath, explicitPath string) (*Workspace, error) {
	if explicitPath != "" {
		return resolveExplicit(explicitPath)
	}

	id, err := InstanceID(repoPath)
	if err != nil {
		return nil, errors.NewWorkspaceError("derive instance id", repoPath, err)
	}

	path := DefaultPath(id)
	created := false
	if err := os.Mkdir(path, 0755); err == nil {
		created = true
	} else if !os.IsExist(err) {
		return nil, errors.NewWorkspaceError("create", path, err)
	}

	return finish(path, created)
}

func resolveExplicit(path string) (*Workspace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewWorkspaceError("resolve", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWorkspaceError("resolve", abs, errors.ErrInvalidWorkspace)
		}
		return nil, errors.NewWorkspaceError("resolve", abs, err)
	}
	if !info.IsDir() {
		return nil, errors.NewWorkspaceError("resolve", abs, errors.ErrInvalidWorkspace)
	}

	return finish(abs, false)
}

// finish ensures the logs directory exists and builds the Workspace value.
// The logs directory is the orchestrator's own log area, not town content.
func finish(path string, created bool) (*Workspace, error) {
	logsDir := filepath.Join(path, LogsDirName)
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, errors.NewWorkspaceError("create logs dir", logsDir, err)
	}
	return &Workspace{Path: path, LogsDir: logsDir, Created: created}, nil
}

// LogPath returns the transcript log path for the named agent.
func (w *Workspace) LogPath(agentName string) string {
	return filepath.Join(w.LogsDir, agentName+".log")
}
