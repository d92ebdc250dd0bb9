// ABOUTME: Customer MCP tool handlers
// ABOUTME: Implements list_customers, get_customer, and create_customer tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CustomerHandlers struct {
	store *db.Store
}

func NewCustomerHandlers(store *db.Store) *CustomerHandlers {
	return &CustomerHandlers{store: store}
}

type ListCustomersInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive match on name, company, or email"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status: active, inactive, prospect"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 20)"`
}

type ListCustomersOutput struct {
	Customers []CustomerOutput `json:"customers"`
	Count     int              `json:"count"`
}

func (h *CustomerHandlers) ListCustomers(ctx context.Context, _ *mcp.CallToolRequest, input ListCustomersInput) (*mcp.CallToolResult, ListCustomersOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	customers, err := h.store.Customers.List(ctx)
	if err != nil {
		return nil, ListCustomersOutput{}, fmt.Errorf("failed to list customers: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(input.Query))
	out := ListCustomersOutput{Customers: []CustomerOutput{}}
	for i := range customers {
		c := &customers[i]
		if input.Status != "" && c.Status != input.Status {
			continue
		}
		if query != "" && !matchesCustomer(c, query) {
			continue
		}
		out.Customers = append(out.Customers, customerToOutput(c))
		if len(out.Customers) == input.Limit {
			break
		}
	}
	out.Count = len(out.Customers)

	return nil, out, nil
}

func matchesCustomer(c *models.Customer, query string) bool {
	for _, field := range []string{c.Name, c.Company, c.Email} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

type GetCustomerInput struct {
	ID int64 `json:"id" jsonschema:"Customer ID (required)"`
}

type CustomerDetailOutput struct {
	Customer   CustomerOutput   `json:"customer"`
	Contacts   []ContactOutput  `json:"contacts"`
	Deals      []DealOutput     `json:"deals"`
	Activities []ActivityOutput `json:"activities"`
}

func (h *CustomerHandlers) GetCustomer(ctx context.Context, _ *mcp.CallToolRequest, input GetCustomerInput) (*mcp.CallToolResult, CustomerDetailOutput, error) {
	detail, err := h.store.Customers.GetDetail(ctx, input.ID)
	if err != nil {
		return nil, CustomerDetailOutput{}, err
	}

	out := CustomerDetailOutput{
		Customer:   customerToOutput(&detail.Customer),
		Contacts:   make([]ContactOutput, 0, len(detail.Contacts)),
		Deals:      make([]DealOutput, 0, len(detail.Deals)),
		Activities: make([]ActivityOutput, 0, len(detail.Activities)),
	}
	for i := range detail.Contacts {
		out.Contacts = append(out.Contacts, contactToOutput(&detail.Contacts[i]))
	}
	for i := range detail.Deals {
		out.Deals = append(out.Deals, dealToOutput(&detail.Deals[i]))
	}
	for i := range detail.Activities {
		out.Activities = append(out.Activities, activityToOutput(&detail.Activities[i]))
	}

	return nil, out, nil
}

type CreateCustomerInput struct {
	Name     string `json:"name" jsonschema:"Customer name (required)"`
	Email    string `json:"email,omitempty" jsonschema:"Email address, unique across customers"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Company  string `json:"company,omitempty" jsonschema:"Company name"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry"`
	City     string `json:"city,omitempty" jsonschema:"City"`
	State    string `json:"state,omitempty" jsonschema:"State or region"`
	Country  string `json:"country,omitempty" jsonschema:"Country"`
	Status   string `json:"status,omitempty" jsonschema:"Status: active, inactive, prospect (default active)"`
}

func (h *CustomerHandlers) CreateCustomer(ctx context.Context, _ *mcp.CallToolRequest, input CreateCustomerInput) (*mcp.CallToolResult, CustomerOutput, error) {
	customer := &models.Customer{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Industry: input.Industry,
		City:     input.City,
		State:    input.State,
		Country:  input.Country,
		Status:   input.Status,
	}

	if _, err := h.store.Customers.Create(ctx, customer); err != nil {
		return nil, CustomerOutput{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return nil, customerToOutput(customer), nil
}
