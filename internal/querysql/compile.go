package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/morsezoo/internal/ir"
	"github.com/roach88/morsezoo/internal/queryir"
)

const (
	idColumn  = "morsegraph_file_id"
	selectIDs = "SELECT DISTINCT " + idColumn + " FROM morsesets"

	// never is emitted for symbols missing from the registry.
	never = "0 = 1"
)

// SQLCompiler compiles QueryIR to parameterized SQL for SQLite.
//
// Values are always bound as ? parameters. Symbol column names are only
// emitted when they appear in the registry the compiler was built with, and
// are always double-quoted.
type SQLCompiler struct {
	// symbols maps the folded name to the registered spelling.
	symbols map[string]string
}

// NewSQLCompiler creates a compiler that accepts the given symbol columns.
// Lookups ignore ASCII case, as SQLite does for column names; the first
// registered spelling is the one emitted.
func NewSQLCompiler(symbols []string) *SQLCompiler {
	known := make(map[string]string, len(symbols))
	for _, s := range symbols {
		key := queryir.FoldSymbol(s)
		if _, dup := known[key]; !dup {
			known[key] = s
		}
	}
	return &SQLCompiler{symbols: known}
}

// Column returns the registered spelling of symbol.
func (c *SQLCompiler) Column(symbol string) (string, bool) {
	name, ok := c.symbols[queryir.FoldSymbol(symbol)]
	return name, ok
}

// Known reports whether symbol is a registered column.
func (c *SQLCompiler) Known(symbol string) bool {
	_, ok := c.Column(symbol)
	return ok
}

// Compile converts a query to a compound SELECT returning distinct
// morsegraph_file_id values in ascending order.
// Returns (sql, params, error) tuple.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	sql, params, err := c.compileQuery(q)
	if err != nil {
		return "", nil, err
	}
	return sql + " ORDER BY " + idColumn + " ASC", params, nil
}

// CompileRecords wraps q in a join returning the graph records of the
// matching ids, ordered by id. Result columns are
// (morsegraph_file_id, permutation_dir, percentage).
func (c *SQLCompiler) CompileRecords(q queryir.Query) (string, []any, error) {
	ids, params, err := c.compileQuery(q)
	if err != nil {
		return "", nil, err
	}
	sql := "SELECT g.morsegraph_file_id, p.permutation_dir, g.percentage" +
		" FROM morsegraphs g JOIN permutations p ON p.permutation_id = g.permutation_id" +
		" WHERE g.morsegraph_file_id IN (" + ids + ")" +
		" ORDER BY g.morsegraph_file_id ASC"
	return sql, params, nil
}

// compileQuery emits the query without ORDER BY so it can be nested.
//
// SQLite compound operators associate left to right and do not accept
// parenthesized operands, so a compound right operand is wrapped in a
// subquery.
func (c *SQLCompiler) compileQuery(q queryir.Query) (string, []any, error) {
	switch node := q.(type) {
	case nil:
		return "", nil, fmt.Errorf("cannot compile nil query")
	case queryir.Universe:
		return selectIDs, nil, nil
	case queryir.Select:
		if node.Filter == nil {
			return selectIDs, nil, nil
		}
		where, params, err := c.compilePredicate(node.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		return selectIDs + " WHERE " + where, params, nil
	case queryir.Intersect:
		return c.compileCompound("INTERSECT", node.Left, node.Right)
	case queryir.Except:
		return c.compileCompound("EXCEPT", node.Left, node.Right)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileCompound(op string, l, r queryir.Query) (string, []any, error) {
	left, leftParams, err := c.compileQuery(l)
	if err != nil {
		return "", nil, fmt.Errorf("compile %s left: %w", op, err)
	}
	right, rightParams, err := c.compileQuery(r)
	if err != nil {
		return "", nil, fmt.Errorf("compile %s right: %w", op, err)
	}
	if isCompound(r) {
		right = "SELECT " + idColumn + " FROM (" + right + ")"
	}

	params := make([]any, 0, len(leftParams)+len(rightParams))
	params = append(params, leftParams...)
	params = append(params, rightParams...)
	return left + " " + op + " " + right, params, nil
}

func isCompound(q queryir.Query) bool {
	switch q.(type) {
	case queryir.Intersect, queryir.Except:
		return true
	}
	return false
}

// compilePredicate compiles a predicate to a WHERE clause fragment.
// Values are never interpolated.
func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "1 = 1", nil, nil
	case queryir.Equals:
		return c.compileEquals(pred)
	case queryir.PermutationIs:
		return idColumn + " IN (SELECT g.morsegraph_file_id FROM morsegraphs g" +
			" JOIN permutations p ON p.permutation_id = g.permutation_id" +
			" WHERE p.permutation_dir = ?)", []any{pred.Dir}, nil
	case queryir.And:
		return c.compileAnd(pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles an Equals predicate to `"field" = ?`.
// Unregistered fields compile to a predicate that matches nothing.
func (c *SQLCompiler) compileEquals(eq queryir.Equals) (string, []any, error) {
	if eq.Field == "" {
		return "", nil, fmt.Errorf("equality with empty field name")
	}
	param, err := irValueToParam(eq.Value)
	if err != nil {
		return "", nil, fmt.Errorf("convert value for %q: %w", eq.Field, err)
	}
	column, ok := c.Column(eq.Field)
	if !ok {
		return never, nil, nil
	}
	return QuoteIdent(column) + " = ?", []any{param}, nil
}

func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, ps, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, ps...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// QuoteIdent double-quotes a SQLite identifier, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// irValueToParam converts an ir.IRValue to a Go native type for SQL parameter.
func irValueToParam(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRString:
		return string(val), nil
	case ir.IRInt:
		return int64(val), nil
	case ir.IRBool:
		return bool(val), nil
	case ir.IRArray:
		return nil, fmt.Errorf("IRArray cannot be used as SQL parameter directly")
	case ir.IRObject:
		return nil, fmt.Errorf("IRObject cannot be used as SQL parameter directly")
	default:
		return nil, fmt.Errorf("unsupported IRValue type for SQL parameter: %T", v)
	}
}
