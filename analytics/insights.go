// ABOUTME: Threshold rules that turn dashboard aggregates into insights
// ABOUTME: Every rule is evaluated independently; any subset may fire
package analytics

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Insight types.
const (
	InsightPositive = "positive"
	InsightWarning  = "warning"
	InsightInfo     = "info"
)

type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

func formatMoney(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// GenerateInsights evaluates the insight rules in order against d.
func GenerateInsights(d *Dashboard) []Insight {
	insights := make([]Insight, 0, 5)
	sales := d.Sales
	acts := d.Activities
	overview := d.Overview

	switch {
	case sales.WinRate > 50:
		insights = append(insights, Insight{
			Type:    InsightPositive,
			Title:   "Strong Sales Performance",
			Message: fmt.Sprintf("Your team has a %d%% deal win rate. Keep up the momentum!", sales.WinRate),
			Icon:    "📈",
		})
	case sales.WinRate > 0:
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "Sales Opportunities",
			Message: fmt.Sprintf("Current win rate is %d%%. Consider reviewing lost deals to improve strategy.", sales.WinRate),
			Icon:    "⚠️",
		})
	}

	if sales.InProgress > sales.ClosedWon {
		deals := sales.TotalDeals
		if deals < 1 {
			deals = 1
		}
		potential := sales.TotalValue / float64(deals) * float64(sales.InProgress)
		insights = append(insights, Insight{
			Type:  InsightInfo,
			Title: "Pipeline Growth Potential",
			Message: fmt.Sprintf("You have %d deals in active negotiation with potential value of %s",
				sales.InProgress, formatMoney(potential)),
			Icon: "💰",
		})
	}

	switch {
	case acts.CompletionRate > 80:
		insights = append(insights, Insight{
			Type:    InsightPositive,
			Title:   "High Activity Completion",
			Message: fmt.Sprintf("Excellent! %d%% of activities are completed. Your team is on track!", acts.CompletionRate),
			Icon:    "✅",
		})
	case acts.CompletionRate < 50 && acts.TotalActivities > 0:
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "Activity Backlog Alert",
			Message: fmt.Sprintf("Only %d%% of activities are completed. Review and prioritize pending tasks.", acts.CompletionRate),
			Icon:    "⏰",
		})
	}

	if overview.TotalCustomers > 0 && float64(overview.ActiveCustomers)/float64(overview.TotalCustomers) > 0.8 {
		insights = append(insights, Insight{
			Type:    InsightPositive,
			Title:   "Healthy Customer Base",
			Message: fmt.Sprintf("%d%% of your customers are active.", percent(overview.ActiveCustomers, overview.TotalCustomers)),
			Icon:    "👥",
		})
	}

	if sales.AverageDealSize > 50000 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Enterprise Focus",
			Message: fmt.Sprintf("Average deal size is $%s. Strong enterprise focus!", humanize.Comma(sales.AverageDealSize)),
			Icon:    "🏢",
		})
	}

	return insights
}
