// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal and update_deal tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	store *db.Store
}

func NewDealHandlers(store *db.Store) *DealHandlers {
	return &DealHandlers{store: store}
}

type CreateDealInput struct {
	CustomerID        int64   `json:"customer_id" jsonschema:"Customer ID (required)"`
	Title             string  `json:"title" jsonschema:"Deal title (required)"`
	Description       string  `json:"description,omitempty" jsonschema:"Deal description"`
	Value             float64 `json:"value,omitempty" jsonschema:"Deal value in dollars"`
	Stage             string  `json:"stage,omitempty" jsonschema:"Deal stage: prospecting, qualification, proposal, negotiation, closed-won, closed-lost (default prospecting)"`
	Probability       int     `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty" jsonschema:"Expected close date (YYYY-MM-DD)"`
	Owner             string  `json:"owner,omitempty" jsonschema:"Deal owner"`
}

func (h *DealHandlers) CreateDeal(ctx context.Context, _ *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	deal := &models.Deal{
		CustomerID:        input.CustomerID,
		Title:             input.Title,
		Description:       input.Description,
		Value:             input.Value,
		Stage:             input.Stage,
		Probability:       input.Probability,
		ExpectedCloseDate: input.ExpectedCloseDate,
		Owner:             input.Owner,
	}

	if _, err := h.store.Deals.Create(ctx, deal); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

type UpdateDealInput struct {
	ID                int64    `json:"id" jsonschema:"Deal ID (required)"`
	Title             string   `json:"title,omitempty" jsonschema:"New title"`
	Value             *float64 `json:"value,omitempty" jsonschema:"New value in dollars"`
	Stage             string   `json:"stage,omitempty" jsonschema:"New stage"`
	Probability       *int     `json:"probability,omitempty" jsonschema:"New win probability 0-100"`
	ExpectedCloseDate string   `json:"expected_close_date,omitempty" jsonschema:"New expected close date (YYYY-MM-DD)"`
}

// UpdateDeal changes only the fields present in the input.
func (h *DealHandlers) UpdateDeal(ctx context.Context, _ *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	deal, err := h.store.Deals.Get(ctx, input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	if input.Title != "" {
		deal.Title = input.Title
	}
	if input.Value != nil {
		deal.Value = *input.Value
	}
	if input.Stage != "" {
		deal.Stage = input.Stage
	}
	if input.Probability != nil {
		deal.Probability = *input.Probability
	}
	if input.ExpectedCloseDate != "" {
		deal.ExpectedCloseDate = input.ExpectedCloseDate
	}

	if err := h.store.Deals.Update(ctx, deal.ID, deal); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}

	updated, err := h.store.Deals.Get(ctx, deal.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to reload deal: %w", err)
	}
	return nil, dealToOutput(updated), nil
}
