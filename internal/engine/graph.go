package engine

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/roach88/morsezoo/internal/archive"
	"github.com/roach88/morsezoo/internal/extract"
	"github.com/roach88/morsezoo/internal/inequality"
)

// GraphRequest asks for the parameter graph of one MGCC of a permutation.
type GraphRequest struct {
	Database    string `json:"database"`
	Permutation string `json:"permutation"`
	MGCC        int    `json:"mgcc"`
}

// ParameterGraph is the Graphviz source of a parameter graph with the
// rendered inequalities of each node.
type ParameterGraph struct {
	Token   string                  `json:"token"`
	Network string                  `json:"network"`
	Info    map[string]string       `json:"info"`
	Shared  []inequality.Inequality `json:"shared"`
	Dropped []inequality.Diagnostic `json:"dropped,omitempty"`
}

// ParameterGraph runs the view tool in a scratch directory, reads the graph
// and its certificate, and consolidates the node inequalities. The scratch
// directory is removed before returning.
func (e *Engine) ParameterGraph(ctx context.Context, req GraphRequest) (*ParameterGraph, error) {
	token := e.token(ctx)
	logger := e.logger.With("request_id", token, "handler", "parameter-graph",
		"database", req.Database, "permutation", req.Permutation)

	perm, err := archive.ResolvePermutation(e.root, req.Database, req.Permutation)
	if err != nil {
		return nil, archiveError(token, err, "permutation %s/%s", req.Database, req.Permutation)
	}

	job := extract.Job{Kind: extract.KindParameterGraphView, Permutation: perm, MGCC: req.MGCC}
	scratch, err := e.run(ctx, token, logger, job)
	if err != nil {
		return nil, err
	}
	defer e.cleanup(logger, scratch)

	network, err := os.ReadFile(scratch.Path(extract.GraphFile))
	if err != nil {
		return nil, newError(ErrCodeExtractionFailed, token, err, "read %s", extract.GraphFile)
	}

	f, err := os.Open(scratch.Path(extract.InequalitiesFile))
	if err != nil {
		return nil, newError(ErrCodeExtractionFailed, token, err, "read %s", extract.InequalitiesFile)
	}
	defer f.Close()

	nodes, err := inequality.ReadCertificate(f)
	if err != nil {
		return nil, newError(ErrCodeCertificateInvalid, token, err, "decode %s", extract.InequalitiesFile)
	}

	sets, dropped := inequality.FromCertificate(nodes)
	for _, d := range dropped {
		logger.Warn("dropped inequality chain", "node", d.Node, "chain", d.Chain, "reason", d.Reason)
	}
	droppedChains.Add(float64(len(dropped)))

	consolidated := inequality.Consolidate(sets)
	logger.Info("parameter graph complete", "nodes", len(sets), "shared", len(consolidated.Intersection))

	return &ParameterGraph{
		Token:   token,
		Network: string(network),
		Info:    inequality.RenderHTML(consolidated),
		Shared:  consolidated.Intersection,
		Dropped: dropped,
	}, nil
}

// run creates a scratch directory and runs the job's tool in it. On error
// the scratch directory is already removed.
func (e *Engine) run(ctx context.Context, token string, logger *slog.Logger, job extract.Job) (*extract.Scratch, error) {
	if err := job.Validate(); err != nil {
		return nil, newError(ErrCodeInvalidArgument, token, err, "extraction request")
	}

	scratch, err := extract.NewScratch(e.scratchDir, "morsezoo-")
	if err != nil {
		logger.Error("scratch directory creation failed", "parent", e.scratchDir, "error", err)
		return nil, newError(ErrCodeScratchCreateFailed, token, err, "scratch directory")
	}

	cmd, err := e.tools.Command(job, scratch.Dir)
	if err != nil {
		e.cleanup(logger, scratch)
		return nil, newError(ErrCodeInvalidArgument, token, err, "extraction request")
	}

	start := time.Now()
	out, err := e.runner.Run(ctx, cmd)
	status := "success"
	if err != nil {
		status = "error"
	}
	extractionDuration.WithLabelValues(string(job.Kind), status).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error("extraction failed", "tool", cmd.Path, "output", string(out), "error", err)
		e.cleanup(logger, scratch)
		return nil, newError(ErrCodeExtractionFailed, token, err, "%s", job.Kind)
	}
	logger.Debug("extraction complete", "tool", cmd.Path, "scratch", scratch.Dir)
	return scratch, nil
}

func (e *Engine) cleanup(logger *slog.Logger, scratch *extract.Scratch) {
	if err := scratch.Close(); err != nil {
		logger.Warn("scratch cleanup failed", "dir", scratch.Dir, "error", err)
	}
}
