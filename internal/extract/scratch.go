package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Scratch is a temporary working directory owned by one request.
type Scratch struct {
	Dir string

	once sync.Once
	err  error
}

// NewScratch creates a uniquely named directory under parent. An empty
// parent uses the system temporary directory.
func NewScratch(parent, prefix string) (*Scratch, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("create scratch parent: %w", err)
		}
	}
	dir, err := os.MkdirTemp(parent, prefix)
	if err != nil {
		return nil, fmt.Errorf("create scratch: %w", err)
	}
	return &Scratch{Dir: dir}, nil
}

// Path returns name joined to the scratch directory.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Close removes the scratch directory and everything in it.
// It is safe to call more than once.
func (s *Scratch) Close() error {
	s.once.Do(func() {
		s.err = os.RemoveAll(s.Dir)
	})
	return s.err
}
