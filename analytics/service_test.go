// ABOUTME: Tests for the analytics service against a temp-dir store
// ABOUTME: Covers dashboard math, insight rules, recommendations, reports, and health scores
package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store), store
}

func insightTitles(insights []Insight) []string {
	titles := make([]string, 0, len(insights))
	for _, i := range insights {
		titles = append(titles, i.Title)
	}
	return titles
}

func TestWinRateSixOfTen(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()

	customerID, err := store.Customers.Create(ctx, &models.Customer{Name: "Acme"})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		stage := models.StageProspecting
		if i < 6 {
			stage = models.StageClosedWon
		}
		_, err := store.Deals.Create(ctx, &models.Deal{CustomerID: customerID, Title: "deal", Value: 1000, Stage: stage})
		require.NoError(t, err)
	}

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Sales.TotalDeals)
	assert.Equal(t, 6, d.Sales.ClosedWon)
	assert.Equal(t, 60, d.Sales.WinRate)
	assert.Equal(t, int64(1000), d.Sales.AverageDealSize)
	assert.Contains(t, insightTitles(d.Insights), "Strong Sales Performance")
	assert.NotNil(t, d.Recommendations)
	assert.Empty(t, d.Recommendations)
}

func TestDashboardEmptyStore(t *testing.T) {
	svc, _ := setupService(t)

	d, err := svc.Dashboard(t.Context())
	require.NoError(t, err)
	assert.Zero(t, d.Sales.WinRate)
	assert.Zero(t, d.Activities.CompletionRate)
	assert.NotNil(t, d.Sales.Pipeline)
	assert.NotNil(t, d.Activities.ByType)
	assert.NotNil(t, d.Customers.TopByValue)
	assert.Empty(t, d.Insights)
}

func TestDashboardSampleData(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()
	_, _, err := store.LoadSampleData(ctx)
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, Overview{TotalCustomers: 5, ActiveCustomers: 4, InactiveCustomers: 1}, d.Overview)
	assert.Equal(t, 6, d.Sales.TotalDeals)
	assert.Equal(t, 625000.0, d.Sales.TotalValue)
	assert.Equal(t, int64(104167), d.Sales.AverageDealSize)
	assert.Equal(t, 17, d.Sales.WinRate)
	assert.Equal(t, 3, d.Sales.InProgress)
	assert.Equal(t, 43, d.Activities.CompletionRate)
	assert.Equal(t, "Acme Corporation", d.Customers.TopByValue[0].Name)
	assert.Equal(t, 225000.0, d.Customers.TopByValue[0].TotalValue)
	assert.Equal(t, 2, d.Customers.TopByValue[0].ContactCount)

	assert.Equal(t, []string{
		"Sales Opportunities",
		"Pipeline Growth Potential",
		"Activity Backlog Alert",
		"Enterprise Focus",
	}, insightTitles(d.Insights))
}

func TestCustomerHealthMaximum(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()

	customerID, err := store.Customers.Create(ctx, &models.Customer{Name: "Acme", Status: models.CustomerActive})
	require.NoError(t, err)
	_, err = store.Deals.Create(ctx, &models.Deal{CustomerID: customerID, Title: "won", Stage: models.StageClosedWon})
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, err := store.Activities.Create(ctx, &models.Activity{
			CustomerID: customerID,
			Subject:    "check-in",
			Status:     models.ActivityCompleted,
		})
		require.NoError(t, err)
	}

	health, err := svc.CustomerHealth(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, customerID, health.CustomerID)
	assert.Equal(t, 100, health.HealthScore)
	assert.Len(t, health.Factors, 6)
}

func TestCustomerHealthIgnoresOldActivity(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()

	customerID, err := store.Customers.Create(ctx, &models.Customer{Name: "Acme", Status: models.CustomerProspect})
	require.NoError(t, err)
	_, err = store.Activities.Create(ctx, &models.Activity{CustomerID: customerID, Subject: "old", Status: models.ActivityCompleted})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }

	health, err := svc.CustomerHealth(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 50, health.HealthScore)

	_, err = svc.CustomerHealth(ctx, customerID+1)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDealRecommendations(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()
	_, _, err := store.LoadSampleData(ctx)
	require.NoError(t, err)

	recs, err := svc.DealRecommendations(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, RecommendFocus, recs[0].Type)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	require.Len(t, recs[0].Deals, 1)
	assert.Equal(t, "IT Infrastructure Upgrade", recs[0].Deals[0].Title)
	assert.Equal(t, "Enterprise Systems Inc", recs[0].Deals[0].CustomerName)
}

func TestPerformanceReport(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()
	_, _, err := store.LoadSampleData(ctx)
	require.NoError(t, err)

	today := time.Now().UTC().Format(models.DateLayout)
	report, err := svc.PerformanceReport(ctx, "2000-01-01", today)
	require.NoError(t, err)
	assert.Equal(t, Period{StartDate: "2000-01-01", EndDate: today}, report.Period)
	assert.Equal(t, DealSummary{Total: 6, Won: 1, Lost: 0, TotalValue: 625000, WonValue: 120000}, report.Deals)
	require.Len(t, report.TopDeals, 5)
	assert.Equal(t, 200000.0, report.TopDeals[0].Value)

	report, err = svc.PerformanceReport(ctx, "2000-01-01", "2000-12-31")
	require.NoError(t, err)
	assert.Zero(t, report.Deals.Total)
	assert.NotNil(t, report.TopDeals)

	var verr *models.ValidationError
	_, err = svc.PerformanceReport(ctx, "", today)
	assert.ErrorAs(t, err, &verr)
	_, err = svc.PerformanceReport(ctx, "yesterday", today)
	assert.ErrorAs(t, err, &verr)
}

func TestSentimentForCustomer(t *testing.T) {
	svc, store := setupService(t)
	ctx := t.Context()

	customerID, err := store.Customers.Create(ctx, &models.Customer{Name: "Acme"})
	require.NoError(t, err)

	report, err := svc.Sentiment(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, report.OverallSentiment)
	assert.Zero(t, report.TotalAnalyzed)
	assert.Zero(t, report.AverageScore)
	assert.NotNil(t, report.Sentiments)

	for _, desc := range []string{"Great call, they are happy", "", "Pricing is a problem"} {
		_, err := store.Activities.Create(ctx, &models.Activity{CustomerID: customerID, Subject: "note", Description: desc})
		require.NoError(t, err)
	}

	report, err = svc.Sentiment(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalAnalyzed)
	assert.Equal(t, models.SentimentPositive, report.OverallSentiment)
	assert.InDelta(t, 2.0, report.AverageScore, 0.001)

	_, err = svc.Sentiment(ctx, customerID+1)
	assert.ErrorIs(t, err, db.ErrNotFound)
}
