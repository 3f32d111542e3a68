package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "impl-alpha.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadActivity(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantIterations int
		wantLastLine   string
	}{
		{
			name:           "empty log",
			content:        "",
			wantIterations: 0,
			wantLastLine:   "",
		},
		{
			name:           "counts iteration markers",
			content:        "Starting work\nprogress\nStarting again\ndone\n",
			wantIterations: 2,
			wantLastLine:   "done",
		},
		{
			name:           "skips trailing blank lines",
			content:        "Starting\nfixed the parser\n\n\n",
			wantIterations: 1,
			wantLastLine:   "fixed the parser",
		},
		{
			name:           "skips bracketed status markers",
			content:        "Starting\nreviewed PR 42\n[status ok]\n[idle]\n",
			wantIterations: 1,
			wantLastLine:   "reviewed PR 42",
		},
		{
			name:           "only markers yields empty last line",
			content:        "[boot]\n[idle]\n",
			wantIterations: 0,
			wantLastLine:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadActivity(writeLog(t, tt.content))
			if got.Iterations != tt.wantIterations {
				t.Errorf("Iterations = %d, want %d", got.Iterations, tt.wantIterations)
			}
			if got.LastLine != tt.wantLastLine {
				t.Errorf("LastLine = %q, want %q", got.LastLine, tt.wantLastLine)
			}
		})
	}
}

func TestReadActivityTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := ReadActivity(writeLog(t, long+"\n"))
	if len(got.LastLine) != lastLineLimit {
		t.Errorf("LastLine length = %d, want %d", len(got.LastLine), lastLineLimit)
	}
}

func TestReadActivityMissingLog(t *testing.T) {
	got := ReadActivity(filepath.Join(t.TempDir(), "nope.log"))
	if got.Iterations != 0 || got.LastLine != "" {
		t.Errorf("missing log yielded %+v, want zero Activity", got)
	}
}
