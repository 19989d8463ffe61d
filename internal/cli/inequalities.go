package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/morsezoo/internal/inequality"
)

// InequalitiesOutput is the consolidated view of a certificate.
type InequalitiesOutput struct {
	Shared  []inequality.Inequality       `json:"shared"`
	Nodes   []inequality.ConsolidatedNode `json:"nodes"`
	Info    map[string]string             `json:"info"`
	Dropped []inequality.Diagnostic       `json:"dropped,omitempty"`
}

// NewInequalitiesCommand creates the inequalities command.
func NewInequalitiesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inequalities <certificate>",
		Short: "Consolidate the inequalities of a certificate file",
		Long: `Read a parameter graph certificate ("-" for stdin), normalize each
node's inequality chains, and mark the inequalities shared by every node.

No archive or extraction tool is needed.

Examples:
  morsezoo inequalities inequalities.json
  cat inequalities.json | morsezoo inequalities - --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInequalities(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInequalities(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return formatter.Fail("open certificate", err)
		}
		defer f.Close()
		r = f
	}

	nodes, err := inequality.ReadCertificate(r)
	if err != nil {
		return formatter.Fail("read certificate", err)
	}
	sets, dropped := inequality.FromCertificate(nodes)
	c := inequality.Consolidate(sets)

	out := InequalitiesOutput{
		Shared:  c.Intersection,
		Nodes:   c.Nodes,
		Info:    inequality.RenderHTML(c),
		Dropped: dropped,
	}

	return formatter.Success(out, func(w io.Writer) {
		fmt.Fprintf(w, "shared by all %d node(s):\n", len(c.Nodes))
		for _, ineq := range c.Intersection {
			fmt.Fprintf(w, "  %s\n", ineq)
		}
		for _, n := range c.Nodes {
			fmt.Fprintf(w, "node %s:\n", n.Key)
			for _, e := range n.Entries {
				mark := " "
				if e.Shared {
					mark = "*"
				}
				fmt.Fprintf(w, "  %s %s\n", mark, e.Inequality)
			}
		}
		for _, d := range dropped {
			fmt.Fprintf(w, "dropped %s\n", d)
		}
	})
}
