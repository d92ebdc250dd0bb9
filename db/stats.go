// ABOUTME: Aggregate queries over customers, deals, and activities
// ABOUTME: Feeds the analytics dashboard, health score, and AI prompt context
package db

import (
	"context"
	"database/sql"
	"slices"

	"github.com/harperreed/salescrm/models"
)

type CustomerCounts struct {
	Total  int
	Active int
}

type DealTotals struct {
	Total        int
	TotalValue   float64
	AverageValue float64
	ClosedWon    int
	ClosedLost   int
	InProgress   int
}

type ActivityCounts struct {
	Total     int
	Completed int
	Pending   int
}

// StageTotal is one row of the pipeline breakdown.
type StageTotal struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CustomerValue summarizes a customer's deals and contacts.
type CustomerValue struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	DealCount    int     `json:"dealCount"`
	ContactCount int     `json:"contactCount"`
	TotalValue   float64 `json:"totalValue"`
}

type CustomerDealCounts struct {
	Deals int
	Won   int
}

type StatsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Customers(ctx context.Context) (CustomerCounts, error) {
	var c CustomerCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM customers
	`, models.CustomerActive).Scan(&c.Total, &c.Active)
	return c, err
}

func (r *StatsRepository) Deals(ctx context.Context) (DealTotals, error) {
	var d DealTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(value), 0),
		       COALESCE(AVG(value), 0),
		       COALESCE(SUM(CASE WHEN stage = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN stage = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN stage IN (?, ?) THEN 1 ELSE 0 END), 0)
		FROM deals
	`, models.StageClosedWon, models.StageClosedLost, models.StageProposal, models.StageNegotiation).
		Scan(&d.Total, &d.TotalValue, &d.AverageValue, &d.ClosedWon, &d.ClosedLost, &d.InProgress)
	return d, err
}

// Pipeline groups deals by stage, in pipeline order.
func (r *StatsRepository) Pipeline(ctx context.Context) ([]StageTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(stage, ''), COUNT(*), COALESCE(SUM(value), 0)
		FROM deals
		GROUP BY stage
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byStage := make(map[string]StageTotal)
	var unknown []StageTotal
	for rows.Next() {
		var s StageTotal
		if err := rows.Scan(&s.Stage, &s.Count, &s.Value); err != nil {
			return nil, err
		}
		byStage[s.Stage] = s
		if !slices.Contains(models.Stages, s.Stage) {
			unknown = append(unknown, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pipeline := make([]StageTotal, 0, len(byStage))
	for _, stage := range models.Stages {
		if s, ok := byStage[stage]; ok {
			pipeline = append(pipeline, s)
		}
	}
	return append(pipeline, unknown...), nil
}

func (r *StatsRepository) Activities(ctx context.Context) (ActivityCounts, error) {
	var a ActivityCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM activities
	`, models.ActivityCompleted, models.ActivityPending).Scan(&a.Total, &a.Completed, &a.Pending)
	return a, err
}

// ActivityTypes counts activities per type, optionally for one customer
// (customerID 0 means all customers).
func (r *StatsRepository) ActivityTypes(ctx context.Context, customerID int64) ([]TypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(type, ''), COUNT(*)
		FROM activities
		WHERE ? = 0 OR customer_id = ?
		GROUP BY type
		ORDER BY COUNT(*) DESC, type ASC
	`, customerID, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make([]TypeCount, 0)
	for rows.Next() {
		var t TypeCount
		if err := rows.Scan(&t.Type, &t.Count); err != nil {
			return nil, err
		}
		counts = append(counts, t)
	}
	return counts, rows.Err()
}

const customerValueQuery = `
	SELECT c.id, c.name,
	       (SELECT COUNT(*) FROM deals d WHERE d.customer_id = c.id),
	       (SELECT COUNT(*) FROM contacts co WHERE co.customer_id = c.id),
	       (SELECT COALESCE(SUM(d.value), 0) FROM deals d WHERE d.customer_id = c.id) AS total_value
	FROM customers c
`

// TopCustomersByValue lists every customer with its deal and contact counts,
// highest total deal value first.
func (r *StatsRepository) TopCustomersByValue(ctx context.Context) ([]CustomerValue, error) {
	rows, err := r.db.QueryContext(ctx, customerValueQuery+`
		ORDER BY total_value DESC, c.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make([]CustomerValue, 0)
	for rows.Next() {
		var v CustomerValue
		if err := rows.Scan(&v.ID, &v.Name, &v.DealCount, &v.ContactCount, &v.TotalValue); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// CustomerValue returns the deal and contact summary for one customer.
func (r *StatsRepository) CustomerValue(ctx context.Context, customerID int64) (*CustomerValue, error) {
	v := &CustomerValue{}
	err := r.db.QueryRowContext(ctx, customerValueQuery+`
		WHERE c.id = ?
	`, customerID).Scan(&v.ID, &v.Name, &v.DealCount, &v.ContactCount, &v.TotalValue)
	if err == sql.ErrNoRows {
		return nil, notFound("Customer")
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *StatsRepository) CustomerDeals(ctx context.Context, customerID int64) (CustomerDealCounts, error) {
	var c CustomerDealCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN stage = ? THEN 1 ELSE 0 END), 0)
		FROM deals WHERE customer_id = ?
	`, models.StageClosedWon, customerID).Scan(&c.Deals, &c.Won)
	return c, err
}

// CountActivities counts all activities belonging to the customer.
func (r *StatsRepository) CountActivities(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE customer_id = ?`, customerID).Scan(&n)
	return n, err
}
