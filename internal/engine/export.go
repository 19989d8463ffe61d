package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/morsezoo/internal/archive"
	"github.com/roach88/morsezoo/internal/extract"
)

// ExportRequest asks for a packaged extraction of a permutation.
type ExportRequest struct {
	Database    string       `json:"database"`
	Permutation string       `json:"permutation"`
	Kind        extract.Kind `json:"kind"`
	MGCC        int          `json:"mgcc"`
	INCC        int          `json:"incc"`
}

// Artifact is a packaged extraction living in its own scratch directory.
// The caller must Close it once the file has been delivered.
type Artifact struct {
	Token string
	Name  string
	Path  string
	Size  int64

	scratch *extract.Scratch
	logger  *slog.Logger
}

// Open opens the artifact file for reading.
func (a *Artifact) Open() (*os.File, error) {
	return os.Open(a.Path)
}

// Close removes the artifact and its scratch directory.
func (a *Artifact) Close() error {
	if a.scratch == nil {
		return nil
	}
	err := a.scratch.Close()
	if err != nil {
		a.logger.Warn("scratch cleanup failed", "dir", a.scratch.Dir, "error", err)
	}
	return err
}

// Export runs a packaging tool and returns the produced archive.
func (e *Engine) Export(ctx context.Context, req ExportRequest) (*Artifact, error) {
	token := e.token(ctx)
	logger := e.logger.With("request_id", token, "handler", "export",
		"database", req.Database, "permutation", req.Permutation, "kind", string(req.Kind))

	if req.Kind == extract.KindParameterGraphView {
		return nil, newError(ErrCodeInvalidArgument, token, nil,
			"kind %q does not produce an artifact", req.Kind)
	}

	perm, err := archive.ResolvePermutation(e.root, req.Database, req.Permutation)
	if err != nil {
		return nil, archiveError(token, err, "permutation %s/%s", req.Database, req.Permutation)
	}

	job := extract.Job{Kind: req.Kind, Permutation: perm, MGCC: req.MGCC, INCC: req.INCC}
	scratch, err := e.run(ctx, token, logger, job)
	if err != nil {
		return nil, err
	}

	name := job.Artifact()
	path := scratch.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		e.cleanup(logger, scratch)
		return nil, newError(ErrCodeExtractionFailed, token, err, "tool did not produce %s", name)
	}
	if !info.Mode().IsRegular() {
		e.cleanup(logger, scratch)
		return nil, newError(ErrCodeExtractionFailed, token, fmt.Errorf("%s is not a regular file", name), "artifact")
	}

	logger.Info("export ready", "artifact", name, "bytes", info.Size())
	return &Artifact{
		Token:   token,
		Name:    name,
		Path:    path,
		Size:    info.Size(),
		scratch: scratch,
		logger:  logger,
	}, nil
}
