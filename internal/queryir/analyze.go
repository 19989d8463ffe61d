package queryir

import (
	"fmt"
	"sort"

	"github.com/roach88/morsezoo/internal/ir"
)

// Analysis describes the shape of a query without evaluating it.
type Analysis struct {
	// Symbols lists every symbol referenced by an Equals predicate, sorted.
	Symbols []string

	// Intersects and Excepts count the compound operators.
	Intersects int
	Excepts    int

	// Redundant lists Except clauses that remove `symbol = 1` from a set
	// already restricted to `symbol = 0`. They only change the result for
	// graphs holding Morse sets that disagree on the symbol.
	Redundant []string

	// Warnings lists structural problems (nil nodes, empty field names,
	// unknown node types). A query with warnings may fail to compile.
	Warnings []string
}

// Analyze walks a query and reports its shape.
// Analyze is a pure function with no side effects.
func Analyze(q Query) Analysis {
	a := &analyzer{symbols: map[string]struct{}{}}
	a.query(q)

	res := Analysis{
		Symbols:    make([]string, 0, len(a.symbols)),
		Intersects: a.intersects,
		Excepts:    a.excepts,
		Redundant:  a.redundant,
		Warnings:   a.warnings,
	}
	for s := range a.symbols {
		res.Symbols = append(res.Symbols, s)
	}
	sort.Strings(res.Symbols)
	return res
}

type analyzer struct {
	symbols    map[string]struct{}
	intersects int
	excepts    int
	redundant  []string
	warnings   []string
}

func (a *analyzer) warn(format string, args ...any) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

func (a *analyzer) query(q Query) {
	switch node := q.(type) {
	case nil:
		a.warn("nil query node")
	case Universe:
	case Select:
		a.predicate(node.Filter)
	case Intersect:
		a.intersects++
		a.query(node.Left)
		a.query(node.Right)
	case Except:
		a.excepts++
		a.query(node.Left)
		a.query(node.Right)
		a.checkRedundant(node)
	default:
		a.warn("unknown query type: %T", q)
	}
}

func (a *analyzer) predicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
	case Equals:
		if pred.Field == "" {
			a.warn("equality with empty field name")
			return
		}
		a.symbols[pred.Field] = struct{}{}
	case PermutationIs:
		if pred.Dir == "" {
			a.warn("permutation scope with empty directory")
		}
	case And:
		for _, sub := range pred.Predicates {
			a.predicate(sub)
		}
	default:
		a.warn("unknown predicate type: %T", p)
	}
}

// checkRedundant flags `L EXCEPT (s = 1)` when L is already an
// intersection containing `s = 0`.
func (a *analyzer) checkRedundant(node Except) {
	removed, ok := leafConstraint(node.Right)
	if !ok || !removed.Required {
		return
	}
	for _, kept := range requiredLeaves(node.Left) {
		if kept.Symbol == removed.Symbol && !kept.Required {
			a.redundant = append(a.redundant, fmt.Sprintf(
				"EXCEPT %q = 1 is subsumed by %q = 0 for single-row graphs",
				removed.Symbol, kept.Symbol))
			return
		}
	}
}

// requiredLeaves returns the constraints every id of q must satisfy:
// the Select leaves along the Intersect spine and the left side of Excepts.
func requiredLeaves(q Query) []Constraint {
	switch node := q.(type) {
	case Select:
		if c, ok := leafConstraint(node); ok {
			return []Constraint{c}
		}
	case Intersect:
		return append(requiredLeaves(node.Left), requiredLeaves(node.Right)...)
	case Except:
		return requiredLeaves(node.Left)
	}
	return nil
}

// leafConstraint extracts the symbol constraint of a Select built by Match.
func leafConstraint(q Query) (Constraint, bool) {
	sel, ok := q.(Select)
	if !ok {
		return Constraint{}, false
	}
	eq, ok := firstEquals(sel.Filter)
	if !ok {
		return Constraint{}, false
	}
	n, ok := eq.Value.(ir.IRInt)
	if !ok || (n != 0 && n != 1) {
		return Constraint{}, false
	}
	return Constraint{Symbol: eq.Field, Required: n == 1}, true
}

func firstEquals(p Predicate) (Equals, bool) {
	switch pred := p.(type) {
	case Equals:
		return pred, true
	case And:
		for _, sub := range pred.Predicates {
			if eq, ok := firstEquals(sub); ok {
				return eq, true
			}
		}
	}
	return Equals{}, false
}
