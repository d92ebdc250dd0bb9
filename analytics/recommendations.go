// ABOUTME: Rule-based deal recommendations
// ABOUTME: Flags high-value long shots, deals ready to close, and stalled proposals
package analytics

import (
	"context"
	"fmt"

	"github.com/harperreed/salescrm/models"
)

// Recommendation types.
const (
	RecommendFocus   = "focus"
	RecommendAction  = "action"
	RecommendWarning = "warning"
)

const highValueThreshold = 100000

type Recommendation struct {
	Type     string                    `json:"type"`
	Title    string                    `json:"title"`
	Message  string                    `json:"message"`
	Priority string                    `json:"priority"`
	Deals    []models.DealWithCustomer `json:"deals"`
}

// DealRecommendations loads every deal and applies the recommendation rules.
func (s *Service) DealRecommendations(ctx context.Context) ([]Recommendation, error) {
	deals, err := s.store.Deals.ListWithCustomer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}
	return Recommend(deals), nil
}

func filterDeals(deals []models.DealWithCustomer, keep func(models.DealWithCustomer) bool) []models.DealWithCustomer {
	var out []models.DealWithCustomer
	for _, d := range deals {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// Recommend groups deals by rule. A group is emitted only when it is not empty,
// and a deal may appear in more than one group.
func Recommend(deals []models.DealWithCustomer) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	highValue := filterDeals(deals, func(d models.DealWithCustomer) bool {
		return d.Value > highValueThreshold && d.Probability < 50
	})
	if len(highValue) > 0 {
		recs = append(recs, Recommendation{
			Type:  RecommendFocus,
			Title: "High-Value Deals Need Attention",
			Message: fmt.Sprintf("Focus on %d high-value deals (>%d) with low probability. These could significantly impact revenue.",
				len(highValue), highValueThreshold),
			Priority: models.PriorityHigh,
			Deals:    highValue,
		})
	}

	readyToClose := filterDeals(deals, func(d models.DealWithCustomer) bool {
		return d.Probability > 80 && d.Stage != models.StageClosedWon
	})
	if len(readyToClose) > 0 {
		recs = append(recs, Recommendation{
			Type:     RecommendAction,
			Title:    "Ready to Close",
			Message:  fmt.Sprintf("%d deals are 80%%+ probable. Push for closing!", len(readyToClose)),
			Priority: models.PriorityHigh,
			Deals:    readyToClose,
		})
	}

	atRisk := filterDeals(deals, func(d models.DealWithCustomer) bool {
		return d.Stage == models.StageProposal && d.Probability < 30
	})
	if len(atRisk) > 0 {
		recs = append(recs, Recommendation{
			Type:  RecommendWarning,
			Title: "Deals at Risk",
			Message: fmt.Sprintf("%d deals in proposal stage with low probability may be stalled. Follow up required.",
				len(atRisk)),
			Priority: models.PriorityMedium,
			Deals:    atRisk,
		})
	}

	return recs
}
