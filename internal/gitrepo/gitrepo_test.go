package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ampcode/amptown/internal/errors"
)

// mockExecutor fakes git invocations.
type mockExecutor struct {
	output []byte
	err    error
	calls  int
}

func (m *mockExecutor) Run(dir string, name string, args ...string) ([]byte, error) {
	m.calls++
	return m.output, m.err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		executor *mockExecutor
		wantErr  error
	}{
		{
			name:     "valid working tree",
			setup:    func(t *testing.T) string { return t.TempDir() },
			executor: &mockExecutor{output: []byte("true\n")},
		},
		{
			name: "missing path",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			executor: &mockExecutor{},
			wantErr:  errors.ErrPathNotFound,
		},
		{
			name: "path is a file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "file")
				if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
					t.Fatal(err)
				}
				return path
			},
			executor: &mockExecutor{},
			wantErr:  errors.ErrNotGitRepository,
		},
		{
			name:     "git reports not a repository",
			setup:    func(t *testing.T) string { return t.TempDir() },
			executor: &mockExecutor{output: []byte("fatal: not a git repository"), err: fmt.Errorf("exit status 128")},
			wantErr:  errors.ErrNotGitRepository,
		},
		{
			name:     "git reports false",
			setup:    func(t *testing.T) string { return t.TempDir() },
			executor: &mockExecutor{output: []byte("false\n")},
			wantErr:  errors.ErrNotGitRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			v := NewValidatorWithExecutor(tt.executor)

			err := v.Validate(path)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSkipsGitForMissingPath(t *testing.T) {
	exec := &mockExecutor{}
	v := NewValidatorWithExecutor(exec)

	_ = v.Validate(filepath.Join(t.TempDir(), "missing"))
	if exec.calls != 0 {
		t.Errorf("git invoked %d times for a missing path, want 0", exec.calls)
	}
}

func TestCheckTools(t *testing.T) {
	// "sh" is present everywhere these tests run.
	if err := CheckTools("sh"); err != nil {
		t.Errorf("CheckTools(sh) error = %v", err)
	}

	err := CheckTools("amptown-definitely-not-installed-tool")
	if !errors.Is(err, errors.ErrToolUnavailable) {
		t.Errorf("CheckTools() error = %v, want %v", err, errors.ErrToolUnavailable)
	}
}
