package instruction

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ampcode/amptown/internal/errors"
	"github.com/ampcode/amptown/internal/roster"
)

func implAlpha() roster.Identity {
	return roster.Identity{Name: "impl-alpha", Role: roster.Implementer, Ordinal: 1}
}

func TestBuildIsDeterministic(t *testing.T) {
	id := implAlpha()

	first := Build(id, "Build X", "Focus on the parser")
	second := Build(id, "Build X", "Focus on the parser")
	if first != second {
		t.Error("Build() output differs between identical calls")
	}
}

func TestBuildPreambleContent(t *testing.T) {
	tests := []struct {
		name string
		id   roster.Identity
		want []string
	}{
		{
			name: "implementer",
			id:   implAlpha(),
			want: []string{"impl-alpha", "implementer", "avoid duplicate work with peers in your role"},
		},
		{
			name: "reviewer",
			id:   roster.Identity{Name: "reviewer-gamma", Role: roster.Reviewer, Ordinal: 3},
			want: []string{"reviewer-gamma", "reviewer", "avoid duplicate work with peers in your role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Build(tt.id, "", "")
			for _, part := range tt.want {
				if !strings.Contains(out, part) {
					t.Errorf("preamble missing %q:\n%s", part, out)
				}
			}
		})
	}
}

func TestBuildOrderAndTermination(t *testing.T) {
	id := implAlpha()

	out := Build(id, "Build X", "")

	// Preamble comes first, then the global text, and nothing after it.
	if !strings.HasSuffix(out, "Build X") {
		t.Errorf("output should end with the global instructions, got:\n%s", out)
	}
	preambleEnd := strings.Index(out, "Build X")
	if preambleEnd <= 0 {
		t.Fatalf("global instructions not found in output:\n%s", out)
	}
	if !strings.Contains(out[:preambleEnd], "impl-alpha") {
		t.Error("identity preamble should precede global instructions")
	}
}

func TestBuildSectionOrder(t *testing.T) {
	id := implAlpha()

	out := Build(id, "GLOBAL-MARKER", "ROLE-MARKER")

	gi := strings.Index(out, "GLOBAL-MARKER")
	ri := strings.Index(out, "ROLE-MARKER")
	if gi < 0 || ri < 0 {
		t.Fatalf("markers missing from output:\n%s", out)
	}
	if gi > ri {
		t.Error("global instructions must precede per-role instructions")
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	id := implAlpha()

	bare := Build(id, "", "")
	if strings.HasSuffix(bare, "\n\n") {
		t.Error("empty sections should not leave trailing separators")
	}

	withRole := Build(id, "", "ROLE-ONLY")
	if !strings.HasSuffix(withRole, "ROLE-ONLY") {
		t.Errorf("per-role text should be appended even without global text:\n%s", withRole)
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		text, err := Load("")
		if err != nil || text != "" {
			t.Errorf("Load(\"\") = (%q, %v), want empty and nil", text, err)
		}
	})

	t.Run("readable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "instructions.md")
		if err := os.WriteFile(path, []byte("Ship it"), 0644); err != nil {
			t.Fatal(err)
		}
		text, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if text != "Ship it" {
			t.Errorf("Load() = %q, want %q", text, "Ship it")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
		if !errors.Is(err, errors.ErrInstructionUnreadable) {
			t.Errorf("Load() error = %v, want %v", err, errors.ErrInstructionUnreadable)
		}
	})
}
