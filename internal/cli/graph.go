package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/morsezoo/internal/engine"
	"github.com/roach88/morsezoo/internal/extract"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	MGCC int
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph <database> <permutation>",
		Short: "Extract the parameter graph of one MGCC",
		Long: `Run the parameter graph view tool for one MGCC of a permutation and
print the Graphviz source with the consolidated node inequalities.

Examples:
  morsezoo graph 2D_Example 2D_Example_perm1 --mgcc 4
  morsezoo graph 2D_Example 2D_Example_perm1 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MGCC, "mgcc", 0, "Morse graph connected component")
	return cmd
}

func runGraph(opts *GraphOptions, db, perm string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, _, err := opts.newEngine(cmd)
	if err != nil {
		return formatter.Fail("load config", err)
	}

	pg, err := eng.ParameterGraph(cmd.Context(), engine.GraphRequest{
		Database:    db,
		Permutation: perm,
		MGCC:        opts.MGCC,
	})
	if err != nil {
		return formatter.Fail("parameter graph", err)
	}

	return formatter.Success(pg, func(w io.Writer) {
		fmt.Fprintln(w, pg.Network)
		fmt.Fprintln(w, "shared:")
		for _, ineq := range pg.Shared {
			fmt.Fprintf(w, "  %s\n", ineq)
		}
		for _, key := range sortedKeys(pg.Info) {
			fmt.Fprintf(w, "node %s: %s\n", key, pg.Info[key])
		}
		for _, d := range pg.Dropped {
			fmt.Fprintf(w, "dropped %s\n", d)
		}
	})
}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Kind   string
	MGCC   int
	INCC   int
	Output string
}

// ExportOutput describes a written artifact.
type ExportOutput struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	Size  int64  `json:"size"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <database> <permutation>",
		Short: "Package a Morse graph, parameter graph, or Morse set",
		Long: `Run a packaging tool for a permutation and copy the produced archive.

Kinds: morse-graph, parameter-graph, morse-set (needs --incc).

Examples:
  morsezoo export 2D_Example 2D_Example_perm1 --kind morse-graph --mgcc 2
  morsezoo export 2D_Example 2D_Example_perm1 --kind morse-set --mgcc 2 --incc 1 -o ./out`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", string(extract.KindMorseGraph), "artifact kind")
	cmd.Flags().IntVar(&opts.MGCC, "mgcc", 0, "Morse graph connected component")
	cmd.Flags().IntVar(&opts.INCC, "incc", 0, "Morse set index (morse-set only)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", ".", "output directory")
	return cmd
}

func runExport(opts *ExportOptions, db, perm string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, _, err := opts.newEngine(cmd)
	if err != nil {
		return formatter.Fail("load config", err)
	}

	art, err := eng.Export(cmd.Context(), engine.ExportRequest{
		Database:    db,
		Permutation: perm,
		Kind:        extract.Kind(opts.Kind),
		MGCC:        opts.MGCC,
		INCC:        opts.INCC,
	})
	if err != nil {
		return formatter.Fail("export", err)
	}
	defer art.Close()

	dest := filepath.Join(opts.Output, art.Name)
	if err := copyArtifact(art, dest); err != nil {
		return formatter.Fail("write artifact", err)
	}

	out := ExportOutput{Token: art.Token, Name: art.Name, Path: dest, Size: art.Size}
	return formatter.Success(out, func(w io.Writer) {
		fmt.Fprintf(w, "wrote %s (%d bytes)\n", out.Path, out.Size)
	})
}

func copyArtifact(art *engine.Artifact, dest string) error {
	src, err := art.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
