package compiler

import (
	"github.com/roach88/morsezoo/internal/queryir"
	"github.com/roach88/morsezoo/internal/selection"
)

// Option configures compilation.
type Option func(*options)

type options struct {
	permutation string
}

// WithPermutation restricts every clause to one permutation directory.
// An empty dir leaves the query archive-wide.
func WithPermutation(dir string) Option {
	return func(o *options) {
		o.permutation = dir
	}
}

// Compile builds the query for a selection list.
//
// Ignore selections contribute nothing. The first Yes/No selection becomes
// the base Select, each later one is intersected, and every No selection
// additionally appends an Except removing `symbol = 1`. With no Yes/No
// selection the result is the universe (restricted to the permutation
// when one is set).
//
// Compile is a pure function.
func Compile(sels []selection.Selection, opts ...Option) queryir.Query {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var scope queryir.Predicate
	if o.permutation != "" {
		scope = queryir.PermutationIs{Dir: o.permutation}
	}

	var q queryir.Query
	var excepts []queryir.Query
	for _, c := range Constraints(sels) {
		leaf := queryir.Match(c, scope)
		if q == nil {
			q = leaf
		} else {
			q = queryir.Intersect{Left: q, Right: leaf}
		}

		if !c.Required {
			removed := queryir.Constraint{Symbol: c.Symbol, Required: true}
			excepts = append(excepts, queryir.Match(removed, scope))
		}
	}

	if q == nil {
		if scope == nil {
			return queryir.Universe{}
		}
		return queryir.Select{Filter: scope}
	}

	for _, e := range excepts {
		q = queryir.Except{Left: q, Right: e}
	}
	return q
}

// Constraints returns the Yes/No selections as constraints, in order.
func Constraints(sels []selection.Selection) []queryir.Constraint {
	out := make([]queryir.Constraint, 0, len(sels))
	for _, s := range sels {
		if !s.Active() {
			continue
		}
		out = append(out, queryir.Constraint{
			Symbol:   s.Symbol,
			Required: s.State == selection.Yes,
		})
	}
	return out
}

// CompileTokens parses raw tokens and compiles the result.
// Malformed tokens are reported in the returned selection.Result.
func CompileTokens(tokens []string, opts ...Option) (queryir.Query, selection.Result) {
	parsed := selection.Parse(tokens)
	return Compile(parsed.Selections, opts...), parsed
}
