package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/morsezoo/internal/ir"
	"github.com/roach88/morsezoo/internal/queryir"
	"github.com/roach88/morsezoo/internal/querysql"
)

// ErrReadOnly is returned by WithTx on a store opened with OpenReadOnly.
var ErrReadOnly = errors.New("store is read-only")

// reserved column names on morsesets.
var reserved = []string{"morsegraph_file_id", "morseset_id"}

// Tx is a write transaction. It is only valid inside WithTx.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) error {
	if s.readOnly {
		return ErrReadOnly
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// EnsureSymbols registers symbol columns that do not exist yet, appending
// them to the alphabet in the given order. Existing symbols are left alone.
func (t *Tx) EnsureSymbols(ctx context.Context, names []string) error {
	existing, err := symbols(ctx, t.tx)
	if err != nil {
		return fmt.Errorf("ensure symbols: %w", err)
	}

	for _, name := range names {
		if err := validateSymbol(name); err != nil {
			return fmt.Errorf("ensure symbols: %w", err)
		}
		if slices.Contains(existing, name) {
			continue
		}
		if other, ok := foldMatch(existing, name); ok {
			return fmt.Errorf("ensure symbols: %q conflicts with registered symbol %q: %w", name, other, ErrSymbolCase)
		}

		_, err := t.tx.ExecContext(ctx,
			"ALTER TABLE morsesets ADD COLUMN "+querysql.QuoteIdent(name)+" INTEGER NOT NULL DEFAULT 0")
		if err != nil {
			return fmt.Errorf("ensure symbols: add column %q: %w", name, err)
		}
		_, err = t.tx.ExecContext(ctx,
			`INSERT INTO symbols (position, name) VALUES (?, ?)`, len(existing), name)
		if err != nil {
			return fmt.Errorf("ensure symbols: register %q: %w", name, err)
		}
		existing = append(existing, name)
	}
	return nil
}

// ErrSymbolCase reports two symbols that differ only in ASCII case. SQLite
// column names ignore case, so they cannot coexist in one database.
var ErrSymbolCase = errors.New("symbols differ only in case")

// foldMatch returns the registered spelling of name, ignoring ASCII case.
func foldMatch(registered []string, name string) (string, bool) {
	key := queryir.FoldSymbol(name)
	for _, r := range registered {
		if queryir.FoldSymbol(r) == key {
			return r, true
		}
	}
	return "", false
}

func validateSymbol(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty symbol name")
	}
	for _, r := range reserved {
		if strings.EqualFold(name, r) {
			return fmt.Errorf("symbol %q collides with a reserved column", name)
		}
	}
	return nil
}

// AddPermutation registers a permutation directory and returns its id.
// Registering the same directory twice returns the existing id.
func (t *Tx) AddPermutation(ctx context.Context, dir string) (int64, error) {
	if dir == "" {
		return 0, fmt.Errorf("add permutation: empty directory name")
	}

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO permutations (permutation_dir) VALUES (?)
		ON CONFLICT(permutation_dir) DO NOTHING
	`, dir)
	if err != nil {
		return 0, fmt.Errorf("add permutation: %w", err)
	}

	var id int64
	err = t.tx.QueryRowContext(ctx,
		`SELECT permutation_id FROM permutations WHERE permutation_dir = ?`, dir).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add permutation: lookup: %w", err)
	}
	return id, nil
}

// AddMorseGraph inserts one graph record. The record's permutation is
// registered when missing.
func (t *Tx) AddMorseGraph(ctx context.Context, rec ir.GraphRecord, morseGraphID int64) error {
	permID, err := t.AddPermutation(ctx, rec.PermutationID)
	if err != nil {
		return fmt.Errorf("add morse graph %d: %w", rec.ID, err)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO morsegraphs (morsegraph_file_id, permutation_id, morsegraph_id, percentage)
		VALUES (?, ?, ?, ?)
	`, rec.ID, permID, morseGraphID, rec.Percentage)
	if err != nil {
		return fmt.Errorf("add morse graph %d: %w", rec.ID, err)
	}
	return nil
}

// AddMorseSet inserts one Morse set row of a graph. Symbols absent from
// values are stored as 0; unregistered symbols are an error.
func (t *Tx) AddMorseSet(ctx context.Context, fileID, morseSetID int64, values map[string]bool) error {
	registered, err := symbols(ctx, t.tx)
	if err != nil {
		return fmt.Errorf("add morse set: %w", err)
	}

	// column spelling → value
	columns := make(map[string]bool, len(values))
	for name, v := range values {
		column, ok := foldMatch(registered, name)
		if !ok {
			return fmt.Errorf("add morse set: unknown symbol %q", name)
		}
		if _, dup := columns[column]; dup {
			return fmt.Errorf("add morse set: symbol %q given twice: %w", column, ErrSymbolCase)
		}
		columns[column] = v
	}
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	slices.Sort(names)

	cols := []string{"morsegraph_file_id", "morseset_id"}
	args := []any{fileID, morseSetID}
	for _, name := range names {
		cols = append(cols, querysql.QuoteIdent(name))
		args = append(args, int64(ir.SymbolValue(columns[name])))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	query := "INSERT INTO morsesets (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add morse set %d/%d: %w", fileID, morseSetID, err)
	}
	return nil
}
