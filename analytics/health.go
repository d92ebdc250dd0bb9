// ABOUTME: Customer health scoring
// ABOUTME: Adds points for status, deals, wins, and recent completed activity, capped at 100
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/salescrm/models"
)

const (
	healthBase         = 50
	healthMax          = 100
	healthRecentWindow = 30 * 24 * time.Hour
)

type HealthFactor struct {
	Factor string `json:"factor"`
	Points int    `json:"points"`
}

type CustomerHealth struct {
	CustomerID  int64          `json:"customerId"`
	HealthScore int            `json:"healthScore"`
	Factors     []HealthFactor `json:"factors"`
}

// HealthInputs are the facts the health score is computed from.
type HealthInputs struct {
	Status          string
	Deals           int
	WonDeals        int
	RecentCompleted int
}

// ScoreHealth applies the health rules to the inputs.
func ScoreHealth(in HealthInputs) (int, []HealthFactor) {
	factors := []HealthFactor{{Factor: "base", Points: healthBase}}
	add := func(cond bool, name string, points int) {
		if cond {
			factors = append(factors, HealthFactor{Factor: name, Points: points})
		}
	}

	add(in.Status == models.CustomerActive, "active status", 20)
	add(in.Deals > 0, "has deals", 15)
	add(in.WonDeals > 0, "has won deals", 15)
	add(in.RecentCompleted > 0, "recent completed activity", 10)
	add(in.RecentCompleted > 5, "frequent recent activity", 10)

	score := 0
	for _, f := range factors {
		score += f.Points
	}
	return min(score, healthMax), factors
}

// CustomerHealth scores one customer.
func (s *Service) CustomerHealth(ctx context.Context, customerID int64) (*CustomerHealth, error) {
	customer, err := s.store.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	deals, err := s.store.Stats.CustomerDeals(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}

	recent, err := s.store.Activities.CountCompletedSince(ctx, customerID, s.now().Add(-healthRecentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent activities: %w", err)
	}

	score, factors := ScoreHealth(HealthInputs{
		Status:          customer.Status,
		Deals:           deals.Deals,
		WonDeals:        deals.Won,
		RecentCompleted: recent,
	})

	return &CustomerHealth{CustomerID: customerID, HealthScore: score, Factors: factors}, nil
}
