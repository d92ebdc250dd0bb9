// ABOUTME: Terminal rendering of the analytics dashboard
// ABOUTME: Pipeline bars, headline stats, insights, and top customers styled with lipgloss
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/harperreed/salescrm/analytics"
)

const barWidth = 10

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	insightStyles = map[string]lipgloss.Style{
		analytics.InsightPositive: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		analytics.InsightWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		analytics.InsightInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
)

func formatMoney(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 0)
}

// RenderDashboard formats the dashboard for a terminal.
func RenderDashboard(d *analytics.Dashboard) string {
	var out strings.Builder

	out.WriteString(headerStyle.Render("SALES CRM DASHBOARD"))
	out.WriteString("\n")

	out.WriteString(sectionStyle.Render("PIPELINE OVERVIEW"))
	out.WriteString("\n")
	renderPipeline(&out, d.Sales)

	out.WriteString(sectionStyle.Render("STATS"))
	out.WriteString("\n")
	fmt.Fprintf(&out, "  %d customers (%d active)  %d deals  %s total  %d%% win rate\n",
		d.Overview.TotalCustomers, d.Overview.ActiveCustomers, d.Sales.TotalDeals,
		formatMoney(d.Sales.TotalValue), d.Sales.WinRate)
	fmt.Fprintf(&out, "  %d activities  %d pending  %d%% complete\n",
		d.Activities.TotalActivities, d.Activities.PendingActivities, d.Activities.CompletionRate)

	if len(d.Insights) > 0 {
		out.WriteString(sectionStyle.Render("INSIGHTS"))
		out.WriteString("\n")
		for _, in := range d.Insights {
			style, ok := insightStyles[in.Type]
			if !ok {
				style = lipgloss.NewStyle()
			}
			fmt.Fprintf(&out, "  %s %s\n", in.Icon, style.Render(in.Title))
			fmt.Fprintf(&out, "     %s\n", mutedStyle.Render(in.Message))
		}
	}

	if len(d.Customers.TopByValue) > 0 {
		out.WriteString(sectionStyle.Render("TOP CUSTOMERS"))
		out.WriteString("\n")
		for i, c := range d.Customers.TopByValue {
			if i == 5 {
				break
			}
			fmt.Fprintf(&out, "  %-28s %12s  %d deals  %d contacts\n",
				c.Name, formatMoney(c.TotalValue), c.DealCount, c.ContactCount)
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, sales analytics.Sales) {
	maxCount := 0
	for _, st := range sales.Pipeline {
		maxCount = max(maxCount, st.Count)
	}
	if maxCount == 0 {
		out.WriteString(mutedStyle.Render("  no deals yet"))
		out.WriteString("\n")
		return
	}

	for _, st := range sales.Pipeline {
		filled := (st.Count * barWidth) / maxCount
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(out, "  %-13s %s  %2d (%s)\n", st.Stage, bar, st.Count, formatMoney(st.Value))
	}
}
