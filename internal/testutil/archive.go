package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/morsezoo/internal/archive"
	"github.com/roach88/morsezoo/internal/store"
)

// NewArchive creates an archive root holding one database built from d.
// Every permutation of d gets a directory with placeholder tool inputs.
// Returns the archive root.
func NewArchive(t *testing.T, database string, d store.Dataset) string {
	t.Helper()
	root := t.TempDir()
	AddDatabase(t, root, database, d)
	return root
}

// AddDatabase writes a database directory into an existing archive root.
func AddDatabase(t *testing.T, root, database string, d store.Dataset) {
	t.Helper()

	dir := filepath.Join(root, database)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	s, err := store.Open(filepath.Join(dir, archive.StoreFile))
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background(), d))
	require.NoError(t, s.Close())

	for _, p := range d.Permutations {
		permDir := filepath.Join(dir, p.Name)
		require.NoError(t, os.MkdirAll(permDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(permDir, archive.ToolInput), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(permDir, p.Name+".txt"), nil, 0o644))
	}
}

// TwoGraphDataset returns the smallest useful dataset: graph 1 has p1 set
// and graph 2 does not, both in permutation 2D_Example_perm1.
func TwoGraphDataset() store.Dataset {
	return store.Dataset{
		Symbols: []string{"p1"},
		Permutations: []store.PermutationDataset{
			{
				Name: "2D_Example_perm1",
				Graphs: []store.GraphDataset{
					{ID: 1, MorseGraphID: 0, Percentage: 0.25, MorseSets: []map[string]bool{{"p1": true}}},
					{ID: 2, MorseGraphID: 1, Percentage: 0.75, MorseSets: []map[string]bool{{"p1": false}}},
				},
			},
		},
	}
}
