package queryir

import (
	"fmt"
	"slices"

	"github.com/roach88/morsezoo/internal/ir"
)

// Row is one Morse set row as seen by the in-memory evaluator.
type Row struct {
	ID          int64            // morsegraph file id
	Permutation string           // permutation directory
	Values      map[string]int64 // symbol → 0/1; missing symbols never match
}

// Evaluate computes the id set of q over rows without a database.
// It mirrors the SQL backend and serves as its reference: ids are
// distinct and returned in ascending order.
func Evaluate(q Query, rows []Row) ([]int64, error) {
	set, err := evalQuery(q, rows)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

type idSet map[int64]struct{}

func evalQuery(q Query, rows []Row) (idSet, error) {
	switch node := q.(type) {
	case Universe:
		set := idSet{}
		for _, r := range rows {
			set[r.ID] = struct{}{}
		}
		return set, nil
	case Select:
		set := idSet{}
		for _, r := range rows {
			ok, err := evalPredicate(node.Filter, r)
			if err != nil {
				return nil, err
			}
			if ok {
				set[r.ID] = struct{}{}
			}
		}
		return set, nil
	case Intersect:
		left, right, err := evalOperands(node.Left, node.Right, rows)
		if err != nil {
			return nil, err
		}
		out := idSet{}
		for id := range left {
			if _, ok := right[id]; ok {
				out[id] = struct{}{}
			}
		}
		return out, nil
	case Except:
		left, right, err := evalOperands(node.Left, node.Right, rows)
		if err != nil {
			return nil, err
		}
		out := idSet{}
		for id := range left {
			if _, ok := right[id]; !ok {
				out[id] = struct{}{}
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func evalOperands(l, r Query, rows []Row) (idSet, idSet, error) {
	left, err := evalQuery(l, rows)
	if err != nil {
		return nil, nil, err
	}
	right, err := evalQuery(r, rows)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func evalPredicate(p Predicate, r Row) (bool, error) {
	switch pred := p.(type) {
	case nil:
		return true, nil
	case Equals:
		got, ok := lookup(r.Values, pred.Field)
		if !ok {
			return false, nil
		}
		want, ok := pred.Value.(ir.IRInt)
		if !ok {
			return false, fmt.Errorf("symbol %q compared to non-integer %T", pred.Field, pred.Value)
		}
		return got == int64(want), nil
	case PermutationIs:
		return r.Permutation == pred.Dir, nil
	case And:
		for _, sub := range pred.Predicates {
			ok, err := evalPredicate(sub, r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// lookup finds field in values, falling back to a case-folded match.
func lookup(values map[string]int64, field string) (int64, bool) {
	if v, ok := values[field]; ok {
		return v, true
	}
	key := FoldSymbol(field)
	for name, v := range values {
		if FoldSymbol(name) == key {
			return v, true
		}
	}
	return 0, false
}
