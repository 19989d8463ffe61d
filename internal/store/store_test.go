package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
	assert.False(t, s.ReadOnly())
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		require.NoError(t, s.Close())
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM morsesets").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.verifyPragma(ctx, "journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma(ctx, "foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma(ctx, "busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma(ctx, "user_version", "2"))
}

func TestOpen_MigrationCreatesIndex(t *testing.T) {
	s := createTestStore(t)

	var name string
	err := s.db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND name = 'idx_morsegraphs_permutation'
	`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "idx_morsegraphs_permutation", name)
}

func TestOpenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")
	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	s, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.ReadOnly())

	err = s.WithTx(context.Background(), func(*Tx) error { return nil })
	assert.ErrorIs(t, err, ErrReadOnly)

	_, err = s.db.Exec(`INSERT INTO permutations (permutation_dir) VALUES ('x')`)
	assert.Error(t, err, "writes must fail on a read-only store")
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}

func TestOpenReadOnly_SchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.db")
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE other (x INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	_, err = OpenReadOnly(path)
	assert.ErrorIs(t, err, ErrSchemaVersion)
}
