package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/morsezoo/internal/engine"
)

// QueryOptions holds flags shared by the query and summary commands.
type QueryOptions struct {
	*RootOptions
	Permutation string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <database> [<status>:<symbol>...]",
		Short: "List the graphs matching a selection",
		Long: `List the Morse graph ids of a database matching a selection.

Each token is "<status>:<symbol>": Y requires the symbol, N forbids it,
anything else ignores it.

Examples:
  morsezoo query 2D_Example Y:FP N:XC
  morsezoo query 2D_Example Y:FP --permutation 2D_Example_perm1 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Permutation, "permutation", "p", "", "restrict to one permutation")
	return cmd
}

func runQuery(opts *QueryOptions, db string, tokens []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, _, err := opts.newEngine(cmd)
	if err != nil {
		return formatter.Fail("load config", err)
	}

	res, err := eng.Query(cmd.Context(), engine.QueryRequest{
		Database:    db,
		Radio:       tokens,
		Permutation: opts.Permutation,
	})
	if err != nil {
		return formatter.Fail("query", err)
	}

	return formatter.Success(res, func(w io.Writer) {
		ids := make([]string, len(res.IDs))
		for i, id := range res.IDs {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(w, "%d matching graph(s)\n", len(res.IDs))
		if len(ids) > 0 {
			fmt.Fprintln(w, strings.Join(ids, " "))
		}
		writeNotes(w, res.Skipped, res.Unknown, res.Notes)
	})
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "summary <database> [<status>:<symbol>...]",
		Short: "Summarize matching graphs per permutation",
		Long: `Group the graphs matching a selection by permutation and report
count and min/max/sum of their parameter percentages.

Examples:
  morsezoo summary 2D_Example Y:FP
  morsezoo summary 2D_Example --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Permutation, "permutation", "p", "", "restrict to one permutation")
	return cmd
}

func runSummary(opts *QueryOptions, db string, tokens []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, _, err := opts.newEngine(cmd)
	if err != nil {
		return formatter.Fail("load config", err)
	}

	res, err := eng.Summarize(cmd.Context(), engine.QueryRequest{
		Database:    db,
		Radio:       tokens,
		Permutation: opts.Permutation,
	})
	if err != nil {
		return formatter.Fail("summary", err)
	}

	return formatter.Success(res, func(w io.Writer) {
		fmt.Fprintf(w, "%-32s %8s %8s %8s %8s\n", "PERMUTATION", "COUNT", "MIN%", "MAX%", "SUM%")
		for _, p := range res.Permutations {
			fmt.Fprintf(w, "%-32s %8d %8.2f %8.2f %8.2f\n",
				p.PermutationID, p.Count, p.MinPercentage, p.MaxPercentage, p.SumPercentage)
		}
		fmt.Fprintf(w, "total: %d\n", res.Total)
		writeNotes(w, res.Skipped, res.Unknown, nil)
	})
}

func writeNotes(w io.Writer, skipped, unknown, notes []string) {
	if len(skipped) > 0 {
		fmt.Fprintf(w, "skipped malformed tokens: %s\n", strings.Join(skipped, ", "))
	}
	if len(unknown) > 0 {
		fmt.Fprintf(w, "unknown symbols: %s\n", strings.Join(unknown, ", "))
	}
	for _, n := range notes {
		fmt.Fprintf(w, "note: %s\n", n)
	}
}
