// Package config loads morsezoo configuration from CUE, JSON or YAML
// files validated against an embedded CUE schema, then applies
// environment overrides.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/roach88/morsezoo/internal/extract"
)

//go:embed schema.cue
var schemaCUE []byte

// Environment variables overriding file values.
const (
	EnvRoot    = "MORSEZOO_ROOT"
	EnvAddr    = "MORSEZOO_ADDR"
	EnvScratch = "MORSEZOO_SCRATCH"
	EnvTools   = "MORSEZOO_TOOLS"
)

// Error codes of LoadError.
const (
	CodeRead    = "CONFIG_READ"
	CodeSyntax  = "CONFIG_SYNTAX"
	CodeInvalid = "CONFIG_INVALID"
)

// Config is the decoded configuration.
type Config struct {
	Root       string        `json:"root"`
	Addr       string        `json:"addr"`
	ScratchDir string        `json:"scratch_dir"`
	Timeout    time.Duration `json:"-"`
	LogLevel   string        `json:"log_level"`
	LogFormat  string        `json:"log_format"`
	Tools      extract.Tools `json:"tools"`

	RawTimeout string `json:"timeout"`
}

// LoadError reports a configuration problem, with the CUE position of the
// offending value when one is known.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the schema defaults.
func Default() (*Config, error) {
	return Load("")
}

// Load reads the file at path and unifies it with the schema. An empty
// path yields the defaults. Files ending in .yaml or .yml are read as
// YAML; anything else is compiled as CUE (which includes JSON).
func Load(path string) (*Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	v := schema.LookupPath(cue.ParsePath("#Config"))

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Code: CodeRead, Message: err.Error()}
		}
		file, err := compileFile(ctx, path, data)
		if err != nil {
			return nil, err
		}
		v = v.Unify(file)
	}

	if err := v.Validate(); err != nil {
		return nil, cueError(CodeInvalid, err)
	}
	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, cueError(CodeInvalid, err)
	}

	d, err := time.ParseDuration(cfg.RawTimeout)
	if err != nil || d < 0 {
		return nil, &LoadError{
			Code:    CodeInvalid,
			Message: fmt.Sprintf("timeout %q is not a non-negative duration", cfg.RawTimeout),
			Pos:     v.LookupPath(cue.ParsePath("timeout")).Pos(),
		}
	}
	cfg.Timeout = d
	return &cfg, nil
}

func compileFile(ctx *cue.Context, path string, data []byte) (cue.Value, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := cueyaml.Extract(path, data)
		if err != nil {
			return cue.Value{}, cueError(CodeSyntax, err)
		}
		v := ctx.BuildFile(f)
		if err := v.Err(); err != nil {
			return cue.Value{}, cueError(CodeSyntax, err)
		}
		return v, nil
	default:
		v := ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return cue.Value{}, cueError(CodeSyntax, err)
		}
		return v, nil
	}
}

// cueError keeps the first CUE error with its position.
func cueError(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}

// ApplyEnv overrides fields from the environment through lookup
// (os.LookupEnv in production). Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvRoot, &c.Root)
	set(EnvAddr, &c.Addr)
	set(EnvScratch, &c.ScratchDir)
	set(EnvTools, &c.Tools.Dir)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
