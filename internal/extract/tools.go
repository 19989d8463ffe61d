package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/roach88/morsezoo/internal/archive"
)

// Files written by the parameter-graph view tool.
const (
	GraphFile        = "parameterGraphForaGivenMGCC.gv"
	InequalitiesFile = "parameterGraphInequalities.txt"
)

// Kind selects an extraction tool.
type Kind string

const (
	// KindParameterGraphView writes the graph and certificate of one MGCC.
	KindParameterGraphView Kind = "parameter-graph-view"
	// KindMorseGraph packages the Morse graph of one MGCC.
	KindMorseGraph Kind = "morse-graph"
	// KindParameterGraph packages the parameter graph of one MGCC.
	KindParameterGraph Kind = "parameter-graph"
	// KindMorseSet packages one INCC of an MGCC.
	KindMorseSet Kind = "morse-set"
)

var (
	// ErrUnknownKind is returned for a Kind without a tool.
	ErrUnknownKind = errors.New("unknown extraction kind")
	// ErrNegativeIndex is returned for negative MGCC or INCC numbers.
	ErrNegativeIndex = errors.New("component index must be non-negative")
)

// Tools names the extraction scripts and the directory holding them.
type Tools struct {
	Dir                string `json:"dir"`
	ViewParameterGraph string `json:"view_parameter_graph"`
	MorseGraph         string `json:"morse_graph"`
	ParameterGraph     string `json:"parameter_graph"`
	MorseSet           string `json:"morse_set"`
}

// DefaultTools returns the standard script names under dir.
func DefaultTools(dir string) Tools {
	return Tools{
		Dir:                dir,
		ViewParameterGraph: "seeParameterGraphMGCC.sh",
		MorseGraph:         "extractMGCC.sh",
		ParameterGraph:     "extractParameterGraphMGCC.sh",
		MorseSet:           "extractMorseSetMGCC.sh",
	}
}

// Job is one extraction request against a permutation.
type Job struct {
	Kind        Kind
	Permutation archive.Permutation
	MGCC        int
	INCC        int
}

// Validate checks the kind and component indices.
func (j Job) Validate() error {
	switch j.Kind {
	case KindParameterGraphView, KindMorseGraph, KindParameterGraph, KindMorseSet:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, j.Kind)
	}
	if j.MGCC < 0 || j.INCC < 0 {
		return fmt.Errorf("%w: mgcc=%d incc=%d", ErrNegativeIndex, j.MGCC, j.INCC)
	}
	return nil
}

// Artifact returns the archive name a packaging job produces, or "" for
// KindParameterGraphView.
func (j Job) Artifact() string {
	name := j.Permutation.Name
	switch j.Kind {
	case KindMorseGraph:
		return fmt.Sprintf("%s_MGCC_%d.tgz", name, j.MGCC)
	case KindParameterGraph:
		return fmt.Sprintf("%s_ParameterGraph_MGCC_%d.tgz", name, j.MGCC)
	case KindMorseSet:
		return fmt.Sprintf("%s_MGCC_%d_INCC_%d.tgz", name, j.MGCC, j.INCC)
	default:
		return ""
	}
}

// Command is a resolved tool invocation.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// Command builds the invocation of the job's tool writing into scratch.
func (t Tools) Command(j Job, scratch string) (Command, error) {
	if err := j.Validate(); err != nil {
		return Command{}, err
	}

	var script string
	switch j.Kind {
	case KindParameterGraphView:
		script = t.ViewParameterGraph
	case KindMorseGraph:
		script = t.MorseGraph
	case KindParameterGraph:
		script = t.ParameterGraph
	case KindMorseSet:
		script = t.MorseSet
	}
	if script == "" {
		return Command{}, fmt.Errorf("%w: no tool configured for %q", ErrUnknownKind, j.Kind)
	}

	p := j.Permutation
	args := []string{
		scratch,
		p.ToolInput,
		p.Dir + string(filepath.Separator),
		p.Name + ".txt",
		strconv.Itoa(j.MGCC),
	}
	if j.Kind == KindMorseSet {
		args = append(args, strconv.Itoa(j.INCC))
	}

	return Command{
		Path: filepath.Join(t.Dir, script),
		Args: args,
		Dir:  scratch,
	}, nil
}
