// ABOUTME: Tests for database connection management and the Store lifecycle
// ABOUTME: Provides the shared temp-dir store helper used by the db tests
package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/salescrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createTestCustomer(t *testing.T, store *Store, name string) int64 {
	t.Helper()
	id, err := store.Customers.Create(t.Context(), &models.Customer{Name: name})
	require.NoError(t, err)
	return id
}

func TestOpenDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "crm.db")

	db, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := OpenDatabase(filepath.Join(blocker, "crm.db"))
	assert.Error(t, err)
}

func TestOpenDatabaseTwice(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "crm.db")

	db, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDatabase(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, table := range []string{"customers", "contacts", "deals", "activities"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s not found", table)
	}
}
