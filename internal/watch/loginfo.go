package watch

import (
	"os"
	"strings"
)

// Activity summarizes what an agent's transcript log reveals about it.
type Activity struct {
	// Iterations is how many work loops the agent has started.
	Iterations int
	// LastLine is the most recent meaningful transcript line, truncated
	// for display.
	LastLine string
}

const lastLineLimit = 80

// ReadActivity inspects an agent's transcript log. A missing or unreadable
// log yields a zero Activity; the log belongs to the tmux server and may
// simply not exist yet.
func ReadActivity(logPath string) Activity {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return Activity{}
	}
	content := string(data)

	a := Activity{Iterations: strings.Count(content, "Starting")}

	// Last meaningful line: skip blanks and bracketed status markers.
	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		if len(line) > lastLineLimit {
			line = line[:lastLineLimit]
		}
		a.LastLine = line
		break
	}
	return a
}
