package store

import (
	"context"
	"fmt"

	"github.com/roach88/morsezoo/internal/ir"
)

// Dataset is a complete database description, as loaded from fixture or
// import files.
type Dataset struct {
	Symbols      []string             `yaml:"symbols" json:"symbols"`
	Permutations []PermutationDataset `yaml:"permutations" json:"permutations"`
}

// PermutationDataset holds the graphs of one permutation directory.
type PermutationDataset struct {
	Name   string         `yaml:"name" json:"name"`
	Graphs []GraphDataset `yaml:"graphs" json:"graphs"`
}

// GraphDataset is one Morse graph with its Morse sets.
type GraphDataset struct {
	ID           int64             `yaml:"id" json:"id"`
	MorseGraphID int64             `yaml:"morsegraph_id" json:"morsegraph_id"`
	Percentage   float64           `yaml:"percentage" json:"percentage"`
	MorseSets    []map[string]bool `yaml:"morse_sets" json:"morse_sets"`
}

// Load writes a dataset in one transaction.
func (s *Store) Load(ctx context.Context, d Dataset) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.EnsureSymbols(ctx, d.Symbols); err != nil {
			return err
		}
		for _, p := range d.Permutations {
			if _, err := tx.AddPermutation(ctx, p.Name); err != nil {
				return err
			}
			for _, g := range p.Graphs {
				rec := ir.GraphRecord{ID: g.ID, PermutationID: p.Name, Percentage: g.Percentage}
				if err := tx.AddMorseGraph(ctx, rec, g.MorseGraphID); err != nil {
					return err
				}
				for i, set := range g.MorseSets {
					if err := tx.AddMorseSet(ctx, g.ID, int64(i), set); err != nil {
						return fmt.Errorf("permutation %s: %w", p.Name, err)
					}
				}
			}
		}
		return nil
	})
}
