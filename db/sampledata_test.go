// ABOUTME: Tests for sample data loading, clearing, and export
// ABOUTME: Checks seed counts, idempotence, and export completeness
package db

import (
	"errors"
	"testing"

	"github.com/harperreed/salescrm/models"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSampleData(t *testing.T) {
	store := setupTestDB(t)
	ctx := t.Context()

	counts, loaded, err := store.LoadSampleData(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, DataCounts{Customers: 5, Contacts: 7, Deals: 6, Activities: 7}, counts)
	assert.Equal(t, "5 customers, 7 contacts, 6 deals, 7 activities", counts.String())

	counts, loaded, err = store.LoadSampleData(ctx)
	require.NoError(t, err)
	assert.False(t, loaded, "second load must be a no-op")
	assert.Equal(t, DataCounts{}, counts)

	n, err := store.Customers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSampleDataSkippedWhenCustomersExist(t *testing.T) {
	store := setupTestDB(t)
	createTestCustomer(t, store, "Mine")

	_, loaded, err := store.LoadSampleData(t.Context())
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestClearAllAndExport(t *testing.T) {
	store := setupTestDB(t)
	ctx := t.Context()

	_, _, err := store.LoadSampleData(ctx)
	require.NoError(t, err)

	export, err := store.ExportData(ctx)
	require.NoError(t, err)
	assert.Equal(t, DataCounts{Customers: 5, Contacts: 7, Deals: 6, Activities: 7}, export.Counts())
	_, err = ulid.Parse(export.ExportID)
	assert.NoError(t, err)
	assert.False(t, export.ExportedAt.IsZero())

	cleared, err := store.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, export.Counts(), cleared)

	export, err = store.ExportData(ctx)
	require.NoError(t, err)
	assert.Equal(t, DataCounts{}, export.Counts())
	assert.NotNil(t, export.Customers)
}

func TestLoadSampleDataRollsBackOnFailure(t *testing.T) {
	store := setupTestDB(t)
	ctx := t.Context()

	// Customers insert fine, then the first contact insert fails.
	_, err := store.DB.ExecContext(ctx, "DROP TABLE contacts")
	require.NoError(t, err)

	_, loaded, err := store.LoadSampleData(ctx)
	require.Error(t, err)
	assert.False(t, loaded)

	n, err := store.Customers.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a failed seed must not leave customers behind")

	require.NoError(t, InitSchema(store.DB))
	counts, loaded, err := store.LoadSampleData(ctx)
	require.NoError(t, err)
	assert.True(t, loaded, "seeding is retried on the next start")
	assert.Equal(t, 5, counts.Customers)
}

func TestInTxCommitsAndRollsBack(t *testing.T) {
	store := setupTestDB(t)
	ctx := t.Context()

	err := store.InTx(ctx, func(tx *Store) error {
		_, err := tx.Customers.Create(ctx, &models.Customer{Name: "Kept"})
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.InTx(ctx, func(tx *Store) error {
		if _, err := tx.Customers.Create(ctx, &models.Customer{Name: "Dropped"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	customers, err := store.Customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Kept", customers[0].Name)
}
