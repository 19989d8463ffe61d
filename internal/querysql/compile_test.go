package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morsezoo/internal/ir"
	"github.com/roach88/morsezoo/internal/queryir"
)

func leaf(sym string, required bool) queryir.Select {
	return queryir.Match(queryir.Constraint{Symbol: sym, Required: required}, nil)
}

func TestCompile_Universe(t *testing.T) {
	compiler := NewSQLCompiler(nil)

	sql, params, err := compiler.Compile(queryir.Universe{})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT DISTINCT morsegraph_file_id FROM morsesets ORDER BY morsegraph_file_id ASC", sql)
	assert.Empty(t, params)
}

func TestCompile_SingleSelect(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1"})

	sql, params, err := compiler.Compile(leaf("p1", true))
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT DISTINCT morsegraph_file_id FROM morsesets WHERE "p1" = ? ORDER BY morsegraph_file_id ASC`, sql)
	assert.Equal(t, []any{int64(1)}, params)
}

func TestCompile_IntersectThenExcept(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1", "p2"})

	q := queryir.Except{
		Left:  queryir.Intersect{Left: leaf("p1", true), Right: leaf("p2", false)},
		Right: leaf("p2", true),
	}

	sql, params, err := compiler.Compile(q)
	require.NoError(t, err)

	want := `SELECT DISTINCT morsegraph_file_id FROM morsesets WHERE "p1" = ?` +
		` INTERSECT SELECT DISTINCT morsegraph_file_id FROM morsesets WHERE "p2" = ?` +
		` EXCEPT SELECT DISTINCT morsegraph_file_id FROM morsesets WHERE "p2" = ?` +
		` ORDER BY morsegraph_file_id ASC`
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{int64(1), int64(0), int64(1)}, params)
}

func TestCompile_CompoundRightOperandIsWrapped(t *testing.T) {
	compiler := NewSQLCompiler([]string{"a", "b", "c"})

	q := queryir.Intersect{
		Left:  leaf("a", true),
		Right: queryir.Except{Left: leaf("b", true), Right: leaf("c", true)},
	}

	sql, params, err := compiler.Compile(q)
	require.NoError(t, err)

	assert.Contains(t, sql, " INTERSECT SELECT morsegraph_file_id FROM (SELECT DISTINCT")
	assert.Equal(t, []any{int64(1), int64(1), int64(1)}, params)
}

func TestCompile_UnknownSymbolNeverMatches(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1"})

	sql, params, err := compiler.Compile(leaf(`p9"; DROP TABLE morsesets; --`, true))
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE 0 = 1")
	assert.NotContains(t, sql, "DROP")
	assert.Empty(t, params)
}

func TestCompile_SymbolCaseFollowsRegistry(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1", "Xc"})

	sql, params, err := compiler.Compile(queryir.Intersect{Left: leaf("P1", true), Right: leaf("xC", false)})
	require.NoError(t, err)

	assert.Contains(t, sql, `WHERE "p1" = ?`)
	assert.Contains(t, sql, `WHERE "Xc" = ?`)
	assert.NotContains(t, sql, "0 = 1")
	assert.Equal(t, []any{int64(1), int64(0)}, params)

	column, ok := compiler.Column("XC")
	assert.True(t, ok)
	assert.Equal(t, "Xc", column)

	// Only ASCII letters fold, matching SQLite.
	assert.False(t, NewSQLCompiler([]string{"é"}).Known("É"))
}

func TestCompile_PermutationScope(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1"})

	scope := queryir.PermutationIs{Dir: "2D_perm1"}
	q := queryir.Match(queryir.Constraint{Symbol: "p1", Required: false}, scope)

	sql, params, err := compiler.Compile(q)
	require.NoError(t, err)

	assert.Contains(t, sql, `WHERE "p1" = ? AND morsegraph_file_id IN (`)
	assert.Contains(t, sql, "p.permutation_dir = ?")
	assert.NotContains(t, sql, "2D_perm1")
	assert.Equal(t, []any{int64(0), "2D_perm1"}, params)
}

func TestCompile_NoStringInterpolation(t *testing.T) {
	compiler := NewSQLCompiler(nil)

	dangerous := "'; DROP TABLE morsesets; --"
	sql, params, err := compiler.Compile(queryir.Select{Filter: queryir.PermutationIs{Dir: dangerous}})
	require.NoError(t, err)

	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, []any{dangerous}, params)
}

func TestCompile_Errors(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1"})

	testCases := []struct {
		name  string
		query queryir.Query
	}{
		{name: "nil query", query: nil},
		{name: "nested nil", query: queryir.Intersect{Left: leaf("p1", true)}},
		{name: "empty field", query: queryir.Select{Filter: queryir.Equals{Value: ir.IRInt(1)}}},
		{name: "array literal", query: queryir.Select{Filter: queryir.Equals{Field: "p1", Value: ir.IRArray{}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := compiler.Compile(tc.query)
			assert.Error(t, err)
		})
	}
}

func TestCompileRecords(t *testing.T) {
	compiler := NewSQLCompiler([]string{"p1"})

	sql, params, err := compiler.CompileRecords(leaf("p1", true))
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT g.morsegraph_file_id, p.permutation_dir, g.percentage")
	assert.Contains(t, sql, `IN (SELECT DISTINCT morsegraph_file_id FROM morsesets WHERE "p1" = ?)`)
	assert.Contains(t, sql, "ORDER BY g.morsegraph_file_id ASC")
	assert.Equal(t, []any{int64(1)}, params)
}

func TestCompile_Deterministic(t *testing.T) {
	compiler := NewSQLCompiler([]string{"a", "b"})
	q := queryir.Except{Left: queryir.Intersect{Left: leaf("a", true), Right: leaf("b", false)}, Right: leaf("b", true)}

	first, _, err := compiler.Compile(q)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, _, err := compiler.Compile(q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"p1"`, QuoteIdent("p1"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
}
