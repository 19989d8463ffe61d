package harness

import (
	"fmt"
	"slices"
)

// checkCase compares a case result with its expectation and with the
// reference evaluator. It returns one message per failed check.
func checkCase(c Case, r CaseResult) []string {
	var errs []string
	if !slices.Equal(r.IDs, r.Evaluated) {
		errs = append(errs, fmt.Sprintf("case %q: sql ids %v differ from evaluated ids %v", c.Name, r.IDs, r.Evaluated))
	}
	if !slices.Equal(r.IDs, c.Expect.IDs) {
		errs = append(errs, fmt.Sprintf("case %q: expected ids %v, got %v", c.Name, c.Expect.IDs, r.IDs))
	}
	if c.Expect.Skipped != nil && !slices.Equal(r.Skipped, c.Expect.Skipped) {
		errs = append(errs, fmt.Sprintf("case %q: expected skipped %q, got %q", c.Name, c.Expect.Skipped, r.Skipped))
	}
	return errs
}
