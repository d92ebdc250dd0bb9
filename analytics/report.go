// ABOUTME: Performance report over deals updated in a date range
// ABOUTME: Totals won/lost counts and values and lists the top deals by value
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/salescrm/models"
)

const topDealsLimit = 5

type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type DealSummary struct {
	Total      int     `json:"total"`
	Won        int     `json:"won"`
	Lost       int     `json:"lost"`
	TotalValue float64 `json:"totalValue"`
	WonValue   float64 `json:"wonValue"`
}

type PerformanceReport struct {
	Period   Period                    `json:"period"`
	Deals    DealSummary               `json:"deals"`
	TopDeals []models.DealWithCustomer `json:"topDeals"`
}

// ParsePeriod validates a report range. A date-only end covers the whole day.
func ParsePeriod(startDate, endDate string) (time.Time, time.Time, error) {
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, models.NewValidationError("startDate and endDate are required")
	}

	start, err := models.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, models.NewValidationError("invalid startDate: %s (use YYYY-MM-DD)", startDate)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, models.NewValidationError("invalid endDate: %s (use YYYY-MM-DD)", endDate)
	}
	if len(endDate) == len(models.DateLayout) {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, models.NewValidationError("endDate must not be before startDate")
	}
	return start, end, nil
}

// PerformanceReport summarizes deals whose last update falls in the range.
func (s *Service) PerformanceReport(ctx context.Context, startDate, endDate string) (*PerformanceReport, error) {
	start, end, err := ParsePeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}

	deals, err := s.store.Deals.ListUpdatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	report := &PerformanceReport{
		Period: Period{StartDate: strings.TrimSpace(startDate), EndDate: strings.TrimSpace(endDate)},
	}
	report.Deals, report.TopDeals = summarizeDeals(deals)
	return report, nil
}

func summarizeDeals(deals []models.DealWithCustomer) (DealSummary, []models.DealWithCustomer) {
	summary := DealSummary{Total: len(deals)}
	for _, d := range deals {
		summary.TotalValue += d.Value
		switch d.Stage {
		case models.StageClosedWon:
			summary.Won++
			summary.WonValue += d.Value
		case models.StageClosedLost:
			summary.Lost++
		}
	}

	top := make([]models.DealWithCustomer, len(deals))
	copy(top, deals)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Value > top[j].Value })
	if len(top) > topDealsLimit {
		top = top[:topDealsLimit]
	}
	return summary, top
}
