package ir

// GraphRecord is one classified Morse graph in the archive.
// Records are immutable and sourced from the record store.
type GraphRecord struct {
	ID            int64   `json:"id"`             // morsegraph file id
	PermutationID string  `json:"permutation_id"` // permutation directory name
	Percentage    float64 `json:"percentage"`     // fraction of parameter space, 0..1
}

// PermutationSummary aggregates the matching records of one permutation.
// Percentages are scaled by 100 and rounded to 2 decimal places.
type PermutationSummary struct {
	PermutationID string  `json:"permutation_id"`
	Count         int     `json:"count"`
	MinPercentage float64 `json:"min_percentage"`
	MaxPercentage float64 `json:"max_percentage"`
	SumPercentage float64 `json:"sum_percentage"`
}
