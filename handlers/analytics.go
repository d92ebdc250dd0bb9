// ABOUTME: Analytics MCP tool handlers
// ABOUTME: Exposes the dashboard, health score, sentiment, and deal recommendations
package handlers

import (
	"context"

	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type AnalyticsHandlers struct {
	svc *analytics.Service
}

func NewAnalyticsHandlers(svc *analytics.Service) *AnalyticsHandlers {
	return &AnalyticsHandlers{svc: svc}
}

type DashboardInput struct{}

type DashboardOutput struct {
	Overview     analytics.Overview   `json:"overview"`
	Sales        analytics.Sales      `json:"sales"`
	Activities   analytics.Activities `json:"activities"`
	TopCustomers []db.CustomerValue   `json:"top_customers"`
	Insights     []analytics.Insight  `json:"insights"`
}

func (h *AnalyticsHandlers) GetDashboard(ctx context.Context, _ *mcp.CallToolRequest, _ DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	d, err := h.svc.Dashboard(ctx)
	if err != nil {
		return nil, DashboardOutput{}, err
	}
	return nil, DashboardOutput{
		Overview:     d.Overview,
		Sales:        d.Sales,
		Activities:   d.Activities,
		TopCustomers: d.Customers.TopByValue,
		Insights:     d.Insights,
	}, nil
}

type CustomerInput struct {
	CustomerID int64 `json:"customer_id" jsonschema:"Customer ID (required)"`
}

func (h *AnalyticsHandlers) CustomerHealth(ctx context.Context, _ *mcp.CallToolRequest, input CustomerInput) (*mcp.CallToolResult, analytics.CustomerHealth, error) {
	health, err := h.svc.CustomerHealth(ctx, input.CustomerID)
	if err != nil {
		return nil, analytics.CustomerHealth{}, err
	}
	return nil, *health, nil
}

type SentimentOutput struct {
	CustomerID       int64                     `json:"customer_id"`
	Sentiments       []analytics.TextSentiment `json:"sentiments"`
	AverageScore     float64                   `json:"average_score"`
	OverallSentiment string                    `json:"overall_sentiment"`
	TotalAnalyzed    int                       `json:"total_analyzed"`
}

func (h *AnalyticsHandlers) CustomerSentiment(ctx context.Context, _ *mcp.CallToolRequest, input CustomerInput) (*mcp.CallToolResult, SentimentOutput, error) {
	report, err := h.svc.Sentiment(ctx, input.CustomerID)
	if err != nil {
		return nil, SentimentOutput{}, err
	}
	return nil, SentimentOutput{
		CustomerID:       report.CustomerID,
		Sentiments:       report.Sentiments,
		AverageScore:     report.AverageScore,
		OverallSentiment: report.OverallSentiment,
		TotalAnalyzed:    report.TotalAnalyzed,
	}, nil
}

type RecommendationsInput struct{}

type RecommendationOutput struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Priority string       `json:"priority"`
	Deals    []DealOutput `json:"deals"`
}

type RecommendationsOutput struct {
	Recommendations []RecommendationOutput `json:"recommendations"`
}

func (h *AnalyticsHandlers) DealRecommendations(ctx context.Context, _ *mcp.CallToolRequest, _ RecommendationsInput) (*mcp.CallToolResult, RecommendationsOutput, error) {
	recs, err := h.svc.DealRecommendations(ctx)
	if err != nil {
		return nil, RecommendationsOutput{}, err
	}

	out := RecommendationsOutput{Recommendations: make([]RecommendationOutput, 0, len(recs))}
	for _, rec := range recs {
		ro := RecommendationOutput{
			Type:     rec.Type,
			Title:    rec.Title,
			Message:  rec.Message,
			Priority: rec.Priority,
			Deals:    make([]DealOutput, 0, len(rec.Deals)),
		}
		for i := range rec.Deals {
			ro.Deals = append(ro.Deals, dealToOutput(&rec.Deals[i].Deal))
		}
		out.Recommendations = append(out.Recommendations, ro)
	}
	return nil, out, nil
}
