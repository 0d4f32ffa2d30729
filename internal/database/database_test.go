package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/assets"
)

func TestOpenAndMigrateEmbedded(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "data", "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db, assets.Migrations()))
	// second run is a no-op
	require.NoError(t, Migrate(db, assets.Migrations()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 3, n)

	for _, table := range []string{"users", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrateStopsOnBrokenScript(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys := fstest.MapFS{
		"001_ok.sql":  {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"002_bad.sql": {Data: []byte(`CREATE TABLE oops (`)},
	}
	err = Migrate(db, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.sql")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateSelfManagedScript(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys := fstest.MapFS{
		"001_tx.sql": {Data: []byte("BEGIN TRANSACTION;\nCREATE TABLE b (id INTEGER);\nCOMMIT;")},
		"sub/x.sql":  {Data: []byte(`CREATE TABLE ignored (`)},
	}
	require.NoError(t, Migrate(db, fsys))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM _migrations`).Scan(&name))
	assert.Equal(t, "001_tx.sql", name)
	assert.True(t, selfManaged.MatchString("pragma foreign_keys = off;"))
	assert.False(t, selfManaged.MatchString("CREATE TABLE t (id INTEGER);"))
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}
