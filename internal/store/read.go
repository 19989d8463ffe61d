package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/morsezoo/internal/ir"
	"github.com/roach88/morsezoo/internal/queryir"
	"github.com/roach88/morsezoo/internal/querysql"
)

// Symbols returns the registered symbol columns in alphabet order.
// Returns an empty slice (not nil) for a database without symbols.
func (s *Store) Symbols(ctx context.Context) ([]string, error) {
	return symbols(ctx, s.db)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func symbols(ctx context.Context, q queryer) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM symbols ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return names, nil
}

// Permutations returns the permutation directory names, in binary order.
func (s *Store) Permutations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT permutation_dir FROM permutations
		ORDER BY permutation_dir COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query permutations: %w", err)
	}
	defer rows.Close()

	dirs := []string{}
	for rows.Next() {
		var dir string
		if err := rows.Scan(&dir); err != nil {
			return nil, fmt.Errorf("scan permutation: %w", err)
		}
		dirs = append(dirs, dir)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permutations: %w", err)
	}
	return dirs, nil
}

// Compiler returns a SQL compiler whose whitelist is this database's
// symbol registry.
func (s *Store) Compiler(ctx context.Context) (*querysql.SQLCompiler, error) {
	names, err := s.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	return querysql.NewSQLCompiler(names), nil
}

// MatchingIDs evaluates q and returns the distinct matching
// morsegraph_file_id values in ascending order.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) MatchingIDs(ctx context.Context, q queryir.Query) ([]int64, error) {
	compiler, err := s.Compiler(ctx)
	if err != nil {
		return nil, err
	}
	query, params, err := compiler.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query matching ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}

// MatchingRecords evaluates q and returns the graph records of the
// matching ids, ordered by id.
func (s *Store) MatchingRecords(ctx context.Context, q queryir.Query) ([]ir.GraphRecord, error) {
	compiler, err := s.Compiler(ctx)
	if err != nil {
		return nil, err
	}
	query, params, err := compiler.CompileRecords(q)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query matching records: %w", err)
	}
	defer rows.Close()

	records := []ir.GraphRecord{}
	for rows.Next() {
		var rec ir.GraphRecord
		if err := rows.Scan(&rec.ID, &rec.PermutationID, &rec.Percentage); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Rows returns every Morse set row with its symbol values, ordered by
// (morsegraph_file_id, morseset_id). It feeds the in-memory evaluator
// used to cross-check SQL results.
func (s *Store) Rows(ctx context.Context) ([]queryir.Row, error) {
	names, err := s.Symbols(ctx)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(names)+2)
	cols = append(cols, "m.morsegraph_file_id", "p.permutation_dir")
	for _, name := range names {
		cols = append(cols, "m."+querysql.QuoteIdent(name))
	}
	query := "SELECT " + strings.Join(cols, ", ") +
		" FROM morsesets m" +
		" JOIN morsegraphs g ON g.morsegraph_file_id = m.morsegraph_file_id" +
		" JOIN permutations p ON p.permutation_id = g.permutation_id" +
		" ORDER BY m.morsegraph_file_id ASC, m.morseset_id ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query morse sets: %w", err)
	}
	defer rows.Close()

	out := []queryir.Row{}
	for rows.Next() {
		row := queryir.Row{Values: make(map[string]int64, len(names))}
		values := make([]int64, len(names))
		dest := make([]any, 0, len(cols))
		dest = append(dest, &row.ID, &row.Permutation)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan morse set: %w", err)
		}
		for i, name := range names {
			row.Values[name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate morse sets: %w", err)
	}
	return out, nil
}
