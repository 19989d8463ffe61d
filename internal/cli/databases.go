package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
)

// DatabasesOptions holds flags for the databases command.
type DatabasesOptions struct {
	*RootOptions
	Tree bool
}

// NewDatabasesCommand creates the databases command.
func NewDatabasesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DatabasesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "databases",
		Short: "List the databases of the archive",
		Long: `List the database directories under the archive root.

With --tree, list the dimension/model/permutation tree instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatabases(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "show the dimension/model/permutation tree")
	return cmd
}

func runDatabases(opts *DatabasesOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	eng, _, err := opts.newEngine(cmd)
	if err != nil {
		return formatter.Fail("load config", err)
	}

	if opts.Tree {
		tree, err := eng.Tree()
		if err != nil {
			return formatter.Fail("tree", err)
		}
		return formatter.Success(tree, func(w io.Writer) {
			for _, dim := range sortedKeys(tree) {
				fmt.Fprintln(w, dim)
				for _, model := range sortedKeys(tree[dim]) {
					fmt.Fprintf(w, "  %s\n", model)
					for _, perm := range sortedKeys(tree[dim][model]) {
						fmt.Fprintf(w, "    %s\n", perm)
					}
				}
			}
		})
	}

	dbs, err := eng.Databases()
	if err != nil {
		return formatter.Fail("databases", err)
	}
	return formatter.Success(dbs, func(w io.Writer) {
		for _, name := range sortedKeys(dbs) {
			fmt.Fprintln(w, name)
		}
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
