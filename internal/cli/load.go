package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/morsezoo/internal/archive"
	"github.com/roach88/morsezoo/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Force bool
}

// LoadOutput summarizes a written database.
type LoadOutput struct {
	Path         string `json:"path"`
	Symbols      int    `json:"symbols"`
	Permutations int    `json:"permutations"`
	Graphs       int    `json:"graphs"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <dataset> <database-dir>",
		Short: "Build a database store from a dataset file",
		Long: `Write the record store of a database directory from a YAML or JSON
dataset listing symbols, permutations, graphs and their Morse sets.

The store is written to <database-dir>/database.db. An existing store is
kept unless --force is given.

Examples:
  morsezoo load dataset.yaml ./archive/2D_Example
  morsezoo load dataset.json ./archive/2D_Example --force`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace an existing store")
	return cmd
}

func runLoad(opts *LoadOptions, datasetPath, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	d, err := readDataset(datasetPath)
	if err != nil {
		return formatter.Fail("read dataset", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return formatter.Fail("create database directory", err)
	}
	path := filepath.Join(dir, archive.StoreFile)
	if _, err := os.Stat(path); err == nil {
		if !opts.Force {
			return formatter.Fail("write store", fmt.Errorf("%s already exists (use --force to replace)", path))
		}
		if err := os.Remove(path); err != nil {
			return formatter.Fail("remove store", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return formatter.Fail("stat store", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return formatter.Fail("open store", err)
	}
	if err := st.Load(cmd.Context(), *d); err != nil {
		st.Close()
		os.Remove(path)
		return formatter.Fail("load dataset", err)
	}
	if err := st.Close(); err != nil {
		return formatter.Fail("close store", err)
	}

	out := LoadOutput{Path: path, Symbols: len(d.Symbols), Permutations: len(d.Permutations)}
	for _, p := range d.Permutations {
		out.Graphs += len(p.Graphs)
	}
	return formatter.Success(out, func(w io.Writer) {
		fmt.Fprintf(w, "wrote %s: %d symbol(s), %d permutation(s), %d graph(s)\n",
			out.Path, out.Symbols, out.Permutations, out.Graphs)
	})
}

// readDataset decodes a YAML or JSON dataset. Unknown fields are errors.
func readDataset(path string) (*store.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var d store.Dataset
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty dataset", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &d, nil
}
