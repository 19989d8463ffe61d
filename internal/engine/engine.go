package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/morsezoo/internal/archive"
	"github.com/roach88/morsezoo/internal/compiler"
	"github.com/roach88/morsezoo/internal/extract"
	"github.com/roach88/morsezoo/internal/ir"
	"github.com/roach88/morsezoo/internal/queryir"
	"github.com/roach88/morsezoo/internal/selection"
	"github.com/roach88/morsezoo/internal/store"
	"github.com/roach88/morsezoo/internal/summary"
)

// Engine serves requests against one archive root.
type Engine struct {
	root       string
	scratchDir string
	tools      extract.Tools
	runner     extract.Runner
	tokens     TokenGenerator
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTools sets the extraction scripts.
func WithTools(t extract.Tools) Option {
	return func(e *Engine) {
		e.tools = t
	}
}

// WithRunner replaces the process runner used for extraction.
func WithRunner(r extract.Runner) Option {
	return func(e *Engine) {
		e.runner = r
	}
}

// WithTokens sets the request token generator.
func WithTokens(g TokenGenerator) Option {
	return func(e *Engine) {
		e.tokens = g
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithScratchDir sets the parent of scratch directories. Empty means the
// system temporary directory.
func WithScratchDir(dir string) Option {
	return func(e *Engine) {
		e.scratchDir = dir
	}
}

// New creates an Engine over the archive at root.
func New(root string, opts ...Option) *Engine {
	e := &Engine{
		root:   root,
		tools:  extract.DefaultTools(""),
		runner: extract.ExecRunner{},
		tokens: UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the archive root.
func (e *Engine) Root() string {
	return e.root
}

// Databases lists the databases of the archive, keyed by name.
func (e *Engine) Databases() (map[string]string, error) {
	dbs, err := archive.List(e.root)
	if err != nil {
		return nil, newError(ErrCodeStoreUnavailable, "", err, "list databases")
	}
	return dbs, nil
}

// Tree returns the dimension/model/permutation tree of the archive.
func (e *Engine) Tree() (archive.Tree, error) {
	tree, err := archive.BuildTree(e.root)
	if err != nil {
		return nil, newError(ErrCodeStoreUnavailable, "", err, "walk archive")
	}
	return tree, nil
}

// QueryRequest selects graphs of one database.
type QueryRequest struct {
	Database string `json:"database"`

	// Radio holds "<status>:<symbol>" tokens.
	Radio []string `json:"radio"`

	// Permutation restricts the query to one permutation when set.
	Permutation string `json:"permutation,omitempty"`
}

// QueryResult is the outcome of Query.
type QueryResult struct {
	Token string  `json:"token"`
	IDs   []int64 `json:"ids"`

	// Skipped lists malformed tokens.
	Skipped []string `json:"skipped,omitempty"`

	// Unknown lists selected symbols the database does not define.
	Unknown []string `json:"unknown_symbols,omitempty"`

	// Notes lists redundant clauses reported by query analysis.
	Notes []string `json:"notes,omitempty"`
}

// SummaryResult is the outcome of Summarize.
type SummaryResult struct {
	Token        string                  `json:"token"`
	Total        int                     `json:"total"`
	Permutations []ir.PermutationSummary `json:"permutations"`
	Skipped      []string                `json:"skipped,omitempty"`
	Unknown      []string                `json:"unknown_symbols,omitempty"`
}

// prepared is a compiled request with its store opened.
type prepared struct {
	token   string
	logger  *slog.Logger
	store   *store.Store
	query   queryir.Query
	parsed  selection.Result
	unknown []string
	notes   []string
}

func (e *Engine) prepare(ctx context.Context, req QueryRequest, handler string) (*prepared, error) {
	token := e.token(ctx)
	logger := e.logger.With("request_id", token, "handler", handler, "database", req.Database)

	db, err := e.resolveDatabase(token, req.Database)
	if err != nil {
		return nil, err
	}
	if req.Permutation != "" {
		if err := archive.ValidateName(req.Permutation); err != nil {
			return nil, newError(ErrCodeInvalidArgument, token, err, "permutation")
		}
	}

	q, parsed := compiler.CompileTokens(req.Radio, compiler.WithPermutation(req.Permutation))
	if len(parsed.Skipped) > 0 {
		logger.Warn("skipped malformed selection tokens", "tokens", parsed.Skipped)
	}
	analysis := queryir.Analyze(q)
	if len(analysis.Warnings) > 0 {
		return nil, newError(ErrCodeInvalidArgument, token, nil, "query: %v", analysis.Warnings)
	}

	st, err := store.OpenReadOnly(db.Store)
	if err != nil {
		queryFailures.WithLabelValues(handler).Inc()
		logger.Error("open store failed", "path", db.Store, "error", err)
		return nil, newError(ErrCodeStoreUnavailable, token, err, "open %s", req.Database)
	}

	sqlc, err := st.Compiler(ctx)
	if err != nil {
		st.Close()
		queryFailures.WithLabelValues(handler).Inc()
		return nil, newError(ErrCodeStoreUnavailable, token, err, "read symbols")
	}
	var unknown []string
	for _, s := range analysis.Symbols {
		if !sqlc.Known(s) {
			unknown = append(unknown, s)
		}
	}
	if len(unknown) > 0 {
		logger.Warn("selection references unknown symbols", "symbols", unknown)
	}

	logger.Debug("compiled query",
		"intersects", analysis.Intersects,
		"excepts", analysis.Excepts,
		"redundant", len(analysis.Redundant))

	return &prepared{
		token:   token,
		logger:  logger,
		store:   st,
		query:   q,
		parsed:  parsed,
		unknown: unknown,
		notes:   analysis.Redundant,
	}, nil
}

func (e *Engine) resolveDatabase(token, name string) (archive.Database, error) {
	db, err := archive.ResolveDatabase(e.root, name)
	if err != nil {
		return archive.Database{}, archiveError(token, err, "database %q", name)
	}
	return db, nil
}

func archiveError(token string, err error, format string, args ...any) *Error {
	switch {
	case errors.Is(err, archive.ErrInvalidName):
		return newError(ErrCodeInvalidArgument, token, err, format, args...)
	case errors.Is(err, archive.ErrNotFound):
		return newError(ErrCodeDatabaseNotFound, token, err, format, args...)
	default:
		return newError(ErrCodeStoreUnavailable, token, err, format, args...)
	}
}

// Query returns the ids of the graphs matching the selection.
func (e *Engine) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	p, err := e.prepare(ctx, req, "query")
	if err != nil {
		return nil, err
	}
	defer p.store.Close()

	ids, err := p.store.MatchingIDs(ctx, p.query)
	if err != nil {
		queryFailures.WithLabelValues("query").Inc()
		p.logger.Error("query failed", "error", err)
		return nil, newError(ErrCodeStoreUnavailable, p.token, err, "query %s", req.Database)
	}
	queryResults.WithLabelValues("query").Observe(float64(len(ids)))
	p.logger.Info("query complete", "matches", len(ids))

	return &QueryResult{
		Token:   p.token,
		IDs:     ids,
		Skipped: p.parsed.Skipped,
		Unknown: p.unknown,
		Notes:   p.notes,
	}, nil
}

// Summarize groups the matching graphs by permutation.
func (e *Engine) Summarize(ctx context.Context, req QueryRequest) (*SummaryResult, error) {
	p, err := e.prepare(ctx, req, "summary")
	if err != nil {
		return nil, err
	}
	defer p.store.Close()

	records, err := p.store.MatchingRecords(ctx, p.query)
	if err != nil {
		queryFailures.WithLabelValues("summary").Inc()
		p.logger.Error("summary query failed", "error", err)
		return nil, newError(ErrCodeStoreUnavailable, p.token, err, "summarize %s", req.Database)
	}
	queryResults.WithLabelValues("summary").Observe(float64(len(records)))

	sums := summary.Aggregate(records)
	p.logger.Info("summary complete", "matches", len(records), "permutations", len(sums))

	return &SummaryResult{
		Token:        p.token,
		Total:        summary.Total(sums),
		Permutations: sums,
		Skipped:      p.parsed.Skipped,
		Unknown:      p.unknown,
	}, nil
}
