package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/morsezoo/internal/ir"
)

// createTestStore creates a new empty store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// testGraph is one graph with its Morse set rows.
type testGraph struct {
	id         int64
	perm       string
	percentage float64
	sets       []map[string]bool
}

// seedStore registers symbols and writes graphs in one transaction.
func seedStore(t *testing.T, s *Store, symbols []string, graphs []testGraph) {
	t.Helper()
	ctx := context.Background()
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.EnsureSymbols(ctx, symbols); err != nil {
			return err
		}
		for _, g := range graphs {
			rec := ir.GraphRecord{ID: g.id, PermutationID: g.perm, Percentage: g.percentage}
			if err := tx.AddMorseGraph(ctx, rec, g.id); err != nil {
				return err
			}
			for i, set := range g.sets {
				if err := tx.AddMorseSet(ctx, g.id, int64(i), set); err != nil {
					return err
				}
			}
		}
		return nil
	})
	require.NoError(t, err)
}
