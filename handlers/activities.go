// ABOUTME: Activity MCP tool handlers
// ABOUTME: Implements the log_activity tool
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ActivityHandlers struct {
	store *db.Store
}

func NewActivityHandlers(store *db.Store) *ActivityHandlers {
	return &ActivityHandlers{store: store}
}

type LogActivityInput struct {
	CustomerID  int64  `json:"customer_id" jsonschema:"Customer ID (required)"`
	Type        string `json:"type,omitempty" jsonschema:"Activity type such as call, email, meeting, task, note"`
	Subject     string `json:"subject" jsonschema:"Short subject line (required)"`
	Description string `json:"description,omitempty" jsonschema:"What happened or needs to happen"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"Due date (YYYY-MM-DD)"`
	Status      string `json:"status,omitempty" jsonschema:"Status: pending, in-progress, completed, cancelled (default pending)"`
	Priority    string `json:"priority,omitempty" jsonschema:"Priority: low, medium, high (default medium)"`
	AssignedTo  string `json:"assigned_to,omitempty" jsonschema:"Person responsible"`
}

func (h *ActivityHandlers) LogActivity(ctx context.Context, _ *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	activity := &models.Activity{
		CustomerID:  input.CustomerID,
		Type:        input.Type,
		Subject:     input.Subject,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
	}

	if _, err := h.store.Activities.Create(ctx, activity); err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}

	return nil, activityToOutput(activity), nil
}
