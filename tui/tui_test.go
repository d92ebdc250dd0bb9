// ABOUTME: Tests for the TUI model
// ABOUTME: Drives Update with key messages against a seeded store and checks rendered views
package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/salescrm/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupModel(t *testing.T) (Model, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, _, err = store.LoadSampleData(t.Context())
	require.NoError(t, err)

	m := NewModel(t.Context(), store)
	return drain(t, m, m.Init()), store
}

// drain runs cmd and feeds each resulting message back into the model until
// no command is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 10, "command chain did not settle")
		msg := cmd()
		if msg == nil {
			break
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(key(k))
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func selectCustomer(t *testing.T, m Model, name string) Model {
	t.Helper()
	for i, c := range m.customers {
		if c.Name == name {
			m.table.SetCursor(i)
			return m
		}
	}
	t.Fatalf("customer %q not listed", name)
	return m
}

func TestListView(t *testing.T) {
	m, _ := setupModel(t)

	assert.Equal(t, ViewList, m.viewMode)
	assert.Len(t, m.customers, 5)

	view := m.View()
	assert.Contains(t, view, "SALES CRM")
	assert.Contains(t, view, "Customers")
	assert.Contains(t, view, "Acme Corporation")
	assert.Contains(t, view, "TechStart")
}

func TestTabSwitchesToDeals(t *testing.T) {
	m, _ := setupModel(t)

	m = press(t, m, "tab")
	assert.Equal(t, EntityDeals, m.entityType)
	assert.Len(t, m.deals, 6)
	assert.Contains(t, m.View(), "Cloud Migration Project")

	m = press(t, m, "tab")
	assert.Equal(t, EntityCustomers, m.entityType)
	assert.Len(t, m.customers, 5)
}

func TestCursorMovesWithArrowKeys(t *testing.T) {
	m, _ := setupModel(t)
	require.Equal(t, 0, m.table.Cursor())

	m = press(t, m, "down", "down")
	assert.Equal(t, 2, m.table.Cursor())
}

func TestTabResetsCursorToFirstRow(t *testing.T) {
	m, _ := setupModel(t)
	m = press(t, m, "down", "down", "tab")

	require.Len(t, m.deals, 6)
	assert.Equal(t, 0, m.table.Cursor())
	id, ok := m.selectedCustomerID()
	require.True(t, ok)
	assert.Equal(t, m.deals[0].CustomerID, id)

	m = press(t, m, "down", "tab")
	assert.Equal(t, 0, m.table.Cursor())
	_, ok = m.selectedTarget()
	assert.True(t, ok)
}

func TestCursorRecoversAfterEmptyTable(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := NewModel(t.Context(), store)
	m = drain(t, m, m.Init())
	require.Empty(t, m.customers)

	// Switching tabs on an empty table pushes the cursor below zero.
	m = press(t, m, "tab", "tab")
	require.Equal(t, EntityCustomers, m.entityType)
	assert.Equal(t, -1, m.table.Cursor())

	_, _, err = store.LoadSampleData(t.Context())
	require.NoError(t, err)
	m = press(t, m, "r")
	require.Len(t, m.customers, 5)
	assert.Equal(t, 0, m.table.Cursor())

	m = press(t, m, "enter")
	assert.Equal(t, ViewDetail, m.viewMode)
}

func TestEnterOpensCustomerDetail(t *testing.T) {
	m, _ := setupModel(t)
	m = selectCustomer(t, m, "Acme Corporation")

	m = press(t, m, "enter")
	require.Equal(t, ViewDetail, m.viewMode)
	require.NotNil(t, m.detail)
	require.NotNil(t, m.health)

	view := m.View()
	assert.Contains(t, view, "ACME CORPORATION")
	assert.Contains(t, view, "Contacts (2)")
	assert.Contains(t, view, "Activities (3)")
	assert.Contains(t, view, "Health:")

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Nil(t, m.detail)
}

func TestEnterOnDealOpensItsCustomer(t *testing.T) {
	m, _ := setupModel(t)
	m = press(t, m, "tab", "enter")

	require.Equal(t, ViewDetail, m.viewMode)
	assert.Equal(t, m.deals[0].CustomerID, m.detail.ID)
}

func TestDeleteCustomerFromDetail(t *testing.T) {
	m, store := setupModel(t)
	ctx := t.Context()
	m = selectCustomer(t, m, "Acme Corporation")
	m = press(t, m, "enter")
	acmeID := m.detail.ID

	m = press(t, m, "d")
	require.Equal(t, ViewConfirmDelete, m.viewMode)
	assert.Contains(t, m.View(), "DELETE CONFIRMATION")
	assert.Contains(t, m.View(), "Acme Corporation")

	m = press(t, m, "n")
	assert.Equal(t, ViewDetail, m.viewMode)

	m = press(t, m, "d", "y")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "Deleted Acme Corporation", m.statusMessage)
	assert.Len(t, m.customers, 4)

	_, err := store.Customers.Get(ctx, acmeID)
	assert.ErrorIs(t, err, db.ErrNotFound)
	contacts, err := store.Contacts.ListByCustomer(ctx, acmeID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestDeleteDealFromList(t *testing.T) {
	m, store := setupModel(t)
	m = press(t, m, "tab")
	title := m.deals[0].Title

	m = press(t, m, "d")
	require.Equal(t, ViewConfirmDelete, m.viewMode)

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Len(t, m.deals, 6)

	m = press(t, m, "d", "y")
	assert.Equal(t, "Deleted "+title, m.statusMessage)
	assert.Len(t, m.deals, 5)

	deals, err := store.Deals.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, deals, 5)
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// q is ignored while a delete is being confirmed.
	m = press(t, m, "d")
	_, cmd = m.Update(key("q"))
	assert.Nil(t, cmd)
}

func TestWindowResize(t *testing.T) {
	m, _ := setupModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestLoadErrorIsShown(t *testing.T) {
	m, store := setupModel(t)
	require.NoError(t, store.Close())

	m = press(t, m, "r")
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}
