package queryir

import "github.com/roach88/morsezoo/internal/ir"

// Query is a set-valued expression over Morse graph file ids.
// This is a sealed interface; only types in this package implement it.
type Query interface {
	queryNode()
}

// Predicate filters Morse set rows inside a Select.
// This is a sealed interface; only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Universe denotes every distinct id in the archive.
type Universe struct{}

func (Universe) queryNode() {}

// Select denotes the ids of graphs having at least one Morse set row that
// satisfies Filter. A nil Filter selects every row.
//
//	SELECT DISTINCT morsegraph_file_id FROM morsesets WHERE <filter>
type Select struct {
	Filter Predicate
}

func (Select) queryNode() {}

// Intersect denotes ids present in both operands.
type Intersect struct {
	Left  Query
	Right Query
}

func (Intersect) queryNode() {}

// Except denotes ids present in Left and absent from Right.
type Except struct {
	Left  Query
	Right Query
}

func (Except) queryNode() {}

// Equals tests a symbol column against a literal.
//
//	"<field>" = ?
type Equals struct {
	Field string
	Value ir.IRValue
}

func (Equals) predicateNode() {}

// PermutationIs restricts rows to graphs of one permutation directory.
type PermutationIs struct {
	Dir string
}

func (PermutationIs) predicateNode() {}

// And is a conjunction. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Constraint is a required boolean value for one symbol.
type Constraint struct {
	Symbol   string `json:"symbol"`
	Required bool   `json:"required"`
}

// Predicate returns the equality test for the constraint.
func (c Constraint) Predicate() Equals {
	return Equals{Field: c.Symbol, Value: ir.SymbolValue(c.Required)}
}

// Match builds the Select for a constraint, conjoined with scope when
// scope is non-nil.
func Match(c Constraint, scope Predicate) Select {
	if scope == nil {
		return Select{Filter: c.Predicate()}
	}
	return Select{Filter: And{Predicates: []Predicate{c.Predicate(), scope}}}
}

// FoldSymbol maps a symbol to its lookup key. Symbols are column names,
// which SQLite compares case-insensitively for ASCII letters only.
func FoldSymbol(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
