package harness

import (
	"context"
	"fmt"

	"github.com/roach88/morsezoo/internal/compiler"
	"github.com/roach88/morsezoo/internal/queryir"
	"github.com/roach88/morsezoo/internal/store"
)

// Run executes a scenario against a fresh in-memory store.
//
// Execution flow:
//  1. Open an in-memory store and load the dataset
//  2. Snapshot the Morse set rows for the reference evaluator
//  3. For each case: compile, execute in SQLite, evaluate in memory
//  4. Check the results against each other and the expectation
//
// Errors are returned only when the scenario cannot run at all; failed
// checks are recorded in the Result.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := st.Load(ctx, scenario.Dataset); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	rows, err := st.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	sqlc, err := st.Compiler(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build compiler: %w", err)
	}

	result := NewResult()
	for _, c := range scenario.Cases {
		q, parsed := compiler.CompileTokens(c.Radio, compiler.WithPermutation(c.Permutation))

		sql, params, err := sqlc.Compile(q)
		if err != nil {
			return nil, fmt.Errorf("case %q: compile: %w", c.Name, err)
		}
		ids, err := st.MatchingIDs(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("case %q: execute: %w", c.Name, err)
		}
		evaluated, err := queryir.Evaluate(q, rows)
		if err != nil {
			return nil, fmt.Errorf("case %q: evaluate: %w", c.Name, err)
		}

		cr := CaseResult{
			Name:      c.Name,
			SQL:       sql,
			Params:    params,
			IDs:       ids,
			Evaluated: evaluated,
			Skipped:   parsed.Skipped,
		}
		result.Cases = append(result.Cases, cr)

		for _, msg := range checkCase(c, cr) {
			result.AddError(msg)
		}
	}
	return result, nil
}
