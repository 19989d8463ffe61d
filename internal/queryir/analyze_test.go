package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morsezoo/internal/ir"
)

func TestAnalyze_Universe(t *testing.T) {
	a := Analyze(Universe{})

	assert.Empty(t, a.Symbols)
	assert.Zero(t, a.Intersects)
	assert.Zero(t, a.Excepts)
	assert.Empty(t, a.Warnings)
}

func TestAnalyze_CountsOperatorsAndSymbols(t *testing.T) {
	q := Except{
		Left: Intersect{
			Left:  Match(Constraint{Symbol: "p2", Required: true}, nil),
			Right: Match(Constraint{Symbol: "p1", Required: false}, nil),
		},
		Right: Match(Constraint{Symbol: "p1", Required: true}, nil),
	}

	a := Analyze(q)

	assert.Equal(t, []string{"p1", "p2"}, a.Symbols)
	assert.Equal(t, 1, a.Intersects)
	assert.Equal(t, 1, a.Excepts)
	require.Len(t, a.Redundant, 1)
	assert.Contains(t, a.Redundant[0], `"p1"`)
}

func TestAnalyze_ScopedLeavesStillDetectRedundancy(t *testing.T) {
	scope := PermutationIs{Dir: "2D_perm1"}
	q := Except{
		Left:  Match(Constraint{Symbol: "p1", Required: false}, scope),
		Right: Match(Constraint{Symbol: "p1", Required: true}, scope),
	}

	a := Analyze(q)

	assert.Len(t, a.Redundant, 1)
	assert.Empty(t, a.Warnings)
}

func TestAnalyze_ExceptOnOtherSymbolNotRedundant(t *testing.T) {
	q := Except{
		Left:  Match(Constraint{Symbol: "p1", Required: false}, nil),
		Right: Match(Constraint{Symbol: "p2", Required: true}, nil),
	}

	assert.Empty(t, Analyze(q).Redundant)
}

func TestAnalyze_Warnings(t *testing.T) {
	testCases := []struct {
		name  string
		query Query
	}{
		{name: "nil query", query: nil},
		{name: "nil operand", query: Intersect{Left: Universe{}}},
		{name: "empty field", query: Select{Filter: Equals{Field: "", Value: ir.IRInt(1)}}},
		{name: "empty scope", query: Select{Filter: PermutationIs{}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEmpty(t, Analyze(tc.query).Warnings)
		})
	}
}

func TestConstraint_Predicate(t *testing.T) {
	assert.Equal(t, Equals{Field: "p1", Value: ir.IRInt(1)}, Constraint{Symbol: "p1", Required: true}.Predicate())
	assert.Equal(t, Equals{Field: "p1", Value: ir.IRInt(0)}, Constraint{Symbol: "p1"}.Predicate())
}

func TestMatch_WithScope(t *testing.T) {
	sel := Match(Constraint{Symbol: "p1", Required: true}, PermutationIs{Dir: "2D_a"})

	assert.Equal(t, Select{Filter: And{Predicates: []Predicate{
		Equals{Field: "p1", Value: ir.IRInt(1)},
		PermutationIs{Dir: "2D_a"},
	}}}, sel)
}
