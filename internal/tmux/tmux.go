// Package tmux wraps the external tmux server that hosts agent sessions.
//
// Amptown uses a per-instance tmux socket to isolate each repository's agent
// crew. A crash of one instance's tmux server cannot affect another
// instance's agents. Sockets are named "amptown-{instanceID}", and every
// session on an instance socket is named "amptown-{instanceID}-{agentName}".
//
// The sessions themselves are opaque interactive processes; this package
// only creates them, types into them, inspects their liveness, and kills
// them. It holds no state of its own: the tmux server is the source of truth.
package tmux

import (
	"context"
	"os/exec"
)

// SocketPrefix is the prefix used for all amptown tmux sockets.
// Instance sockets are named "{SocketPrefix}-{instanceID}".
const SocketPrefix = "amptown"

// InstanceSocketName returns the socket name for a specific instance.
// Socket names follow the format "amptown-{instanceID}".
func InstanceSocketName(instanceID string) string {
	return SocketPrefix + "-" + instanceID
}

// SessionPrefix returns the session-name prefix for an instance. Listing
// filters on this prefix so unrelated sessions on the host are excluded.
func SessionPrefix(instanceID string) string {
	return SocketPrefix + "-" + instanceID + "-"
}

// commandContext creates a context-aware exec.Cmd for tmux on the given socket.
func commandContext(ctx context.Context, socket string, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-L", socket}, args...)
	return exec.CommandContext(ctx, "tmux", fullArgs...)
}
