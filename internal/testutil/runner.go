package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/roach88/morsezoo/internal/extract"
)

// FakeRunner is an extract.Runner that writes canned files into the
// command's working directory instead of running a process.
//
// Thread-safety: FakeRunner is safe for concurrent use via internal mutex.
type FakeRunner struct {
	// Files maps file names to contents written on every run.
	Files map[string]string
	// Output is returned as the tool output.
	Output string
	// Err, when set, fails every run after the files are written.
	Err error

	mu    sync.Mutex
	calls []extract.Command
}

// Run records cmd and writes Files into cmd.Dir.
func (r *FakeRunner) Run(ctx context.Context, cmd extract.Command) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for name, content := range r.Files {
		if err := os.WriteFile(filepath.Join(cmd.Dir, name), []byte(content), 0o644); err != nil {
			return nil, err
		}
	}
	return []byte(r.Output), r.Err
}

// Calls returns the recorded commands.
func (r *FakeRunner) Calls() []extract.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]extract.Command(nil), r.calls...)
}
