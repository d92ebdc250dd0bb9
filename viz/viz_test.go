// ABOUTME: Tests for pipeline graphs and the terminal dashboard
// ABOUTME: Renders against sample data and checks labels and layout markers
package viz

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, seed bool) *db.Store {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "viz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	if seed {
		_, _, err := store.LoadSampleData(t.Context())
		require.NoError(t, err)
	}
	return store
}

func TestGeneratePipelineGraph(t *testing.T) {
	store := setupStore(t, true)

	dot, err := NewGraphGenerator(store).GeneratePipelineGraph(t.Context())
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "stage_prospecting")
	assert.Contains(t, dot, "stage_closed-lost")
	assert.Contains(t, dot, "Infrastructure")
	assert.Contains(t, dot, "deal_6")
}

func TestGeneratePipelineGraphEmpty(t *testing.T) {
	store := setupStore(t, false)

	dot, err := NewGraphGenerator(store).GeneratePipelineGraph(t.Context())
	require.NoError(t, err)
	assert.Contains(t, dot, "stage_negotiation")
	assert.NotContains(t, dot, "deal_")
}

func TestGenerateCustomerGraph(t *testing.T) {
	store := setupStore(t, true)
	gen := NewGraphGenerator(store)

	dot, err := gen.GenerateCustomerGraph(t.Context(), 1)
	require.NoError(t, err)
	// Long labels may be wrapped between words in the DOT output.
	for _, word := range []string{"Acme", "Smith", "Migration", "presentation"} {
		assert.Contains(t, dot, word)
	}

	_, err = gen.GenerateCustomerGraph(t.Context(), 99)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestRenderDashboard(t *testing.T) {
	store := setupStore(t, true)
	d, err := analytics.NewService(store).Dashboard(t.Context())
	require.NoError(t, err)

	out := RenderDashboard(d)
	assert.Contains(t, out, "SALES CRM DASHBOARD")
	assert.Contains(t, out, "5 customers (4 active)")
	assert.Contains(t, out, "$625,000 total")
	assert.Contains(t, out, "Enterprise Focus")
	assert.Contains(t, out, "Acme Corporation")
	assert.Contains(t, out, "██████████")
}

func TestRenderDashboardEmpty(t *testing.T) {
	out := RenderDashboard(&analytics.Dashboard{})
	assert.Contains(t, out, "no deals yet")
	assert.NotContains(t, out, "INSIGHTS")
	assert.NotContains(t, out, "TOP CUSTOMERS")
}
