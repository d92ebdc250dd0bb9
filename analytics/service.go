// ABOUTME: Analytics service computing CRM aggregates on demand
// ABOUTME: Builds the dashboard payload from store aggregates and threshold insights
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/harperreed/salescrm/db"
)

// Service computes analytics from the store on every call.
type Service struct {
	store *db.Store
	now   func() time.Time
}

func NewService(store *db.Store) *Service {
	return &Service{store: store, now: time.Now}
}

type Overview struct {
	TotalCustomers    int `json:"totalCustomers"`
	ActiveCustomers   int `json:"activeCustomers"`
	InactiveCustomers int `json:"inactiveCustomers"`
}

type Sales struct {
	TotalDeals      int             `json:"totalDeals"`
	TotalValue      float64         `json:"totalValue"`
	AverageDealSize int64           `json:"averageDealSize"`
	ClosedWon       int             `json:"closedWon"`
	ClosedLost      int             `json:"closedLost"`
	InProgress      int             `json:"inProgress"`
	WinRate         int             `json:"winRate"`
	Pipeline        []db.StageTotal `json:"pipeline"`
}

type Activities struct {
	TotalActivities     int            `json:"totalActivities"`
	CompletedActivities int            `json:"completedActivities"`
	PendingActivities   int            `json:"pendingActivities"`
	CompletionRate      int            `json:"completionRate"`
	ByType              []db.TypeCount `json:"byType"`
}

type Customers struct {
	TopByValue []db.CustomerValue `json:"topByValue"`
}

// Dashboard is the aggregate analytics payload.
type Dashboard struct {
	Overview        Overview         `json:"overview"`
	Sales           Sales            `json:"sales"`
	Customers       Customers        `json:"customers"`
	Activities      Activities       `json:"activities"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// percent returns round(part/total*100), or 0 when total is 0.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func summarizeOverview(c db.CustomerCounts) Overview {
	return Overview{
		TotalCustomers:    c.Total,
		ActiveCustomers:   c.Active,
		InactiveCustomers: c.Total - c.Active,
	}
}

func summarizeSales(d db.DealTotals, pipeline []db.StageTotal) Sales {
	if pipeline == nil {
		pipeline = []db.StageTotal{}
	}
	return Sales{
		TotalDeals:      d.Total,
		TotalValue:      d.TotalValue,
		AverageDealSize: int64(math.Round(d.AverageValue)),
		ClosedWon:       d.ClosedWon,
		ClosedLost:      d.ClosedLost,
		InProgress:      d.InProgress,
		WinRate:         percent(d.ClosedWon, d.Total),
		Pipeline:        pipeline,
	}
}

func summarizeActivities(a db.ActivityCounts, byType []db.TypeCount) Activities {
	if byType == nil {
		byType = []db.TypeCount{}
	}
	return Activities{
		TotalActivities:     a.Total,
		CompletedActivities: a.Completed,
		PendingActivities:   a.Pending,
		CompletionRate:      percent(a.Completed, a.Total),
		ByType:              byType,
	}
}

// Dashboard runs the aggregate queries and evaluates the insight rules.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	customers, err := s.store.Stats.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	deals, err := s.store.Stats.Deals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total deals: %w", err)
	}
	pipeline, err := s.store.Stats.Pipeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	activities, err := s.store.Stats.Activities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	byType, err := s.store.Stats.ActivityTypes(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to group activities: %w", err)
	}
	top, err := s.store.Stats.TopCustomersByValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank customers: %w", err)
	}

	d := &Dashboard{
		Overview:        summarizeOverview(customers),
		Sales:           summarizeSales(deals, pipeline),
		Customers:       Customers{TopByValue: top},
		Activities:      summarizeActivities(activities, byType),
		Recommendations: []Recommendation{},
	}
	d.Insights = GenerateInsights(d)
	return d, nil
}
