package unitconv

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, SaveCatalogSQLite(ctx, db, DefaultCatalog()))
	// saving twice replaces rather than duplicates
	require.NoError(t, SaveCatalogSQLite(ctx, db, DefaultCatalog()))
	require.NoError(t, db.Close())

	loaded, err := OpenCatalogSQLite(ctx, path)
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultCatalog().Groups(), loaded.Groups()); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	res, err := loaded.Convert(NewRequest(1000, "Millimeters (mm)", "Meters (m)"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Value)
}

func TestSQLiteCatalogRejectsBadRows(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "bad.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, SaveCatalogSQLite(ctx, db, DefaultCatalog()))
	_, err = db.ExecContext(ctx, `UPDATE units SET factor = -1 WHERE name = 'Feet (ft)'`)
	require.NoError(t, err)

	_, err = LoadCatalogSQLite(ctx, db)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestOpenCatalogSQLiteMissingFile(t *testing.T) {
	_, err := OpenCatalogSQLite(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestSQLiteCatalogOddFileName(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "odd?#%name.db")

	db, err := sql.Open("sqlite3", SQLiteDSN(path, "rwc"))
	require.NoError(t, err)
	require.NoError(t, SaveCatalogSQLite(ctx, db, DefaultCatalog()))
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err, "database must be written at the literal path")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "odd", e.Name())
	}

	loaded, err := OpenCatalogSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Categories(), loaded.Categories())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/a%3Fb%23c.db?mode=ro", SQLiteDSN("/tmp/a?b#c.db", "ro"))
	assert.Equal(t, "file:catalog.db?mode=rwc", SQLiteDSN("catalog.db", "rwc"))
}
