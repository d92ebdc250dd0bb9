// ABOUTME: MCP server construction with every CRM tool registered
// ABOUTME: Shared by the stdio command and in-memory tests
package handlers

import (
	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the store and analytics as tools
// and the main record lists as crm:// resources.
func NewServer(store *db.Store, version string) *mcp.Server {
	customerHandlers := NewCustomerHandlers(store)
	dealHandlers := NewDealHandlers(store)
	activityHandlers := NewActivityHandlers(store)
	analyticsHandlers := NewAnalyticsHandlers(analytics.NewService(store))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "salescrm",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_customers",
		Description: "List customers, newest first, optionally filtered by text or status",
	}, customerHandlers.ListCustomers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_customer",
		Description: "Get a customer with all contacts, deals, and activities",
	}, customerHandlers.GetCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_customer",
		Description: "Add a new customer to the CRM",
	}, customerHandlers.CreateCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal for an existing customer",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Update a deal's title, value, stage, probability, or expected close date",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a call, email, meeting, task, or note against a customer",
	}, activityHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get CRM aggregates: customers, sales pipeline, activities, and insights",
	}, analyticsHandlers.GetDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "customer_health",
		Description: "Score a customer's health from status, deals, and recent completed activities",
	}, analyticsHandlers.CustomerHealth)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "customer_sentiment",
		Description: "Score the sentiment of a customer's activity descriptions",
	}, analyticsHandlers.CustomerSentiment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "deal_recommendations",
		Description: "Get grouped recommendations for high-value, closing, and stalled deals",
	}, analyticsHandlers.DealRecommendations)

	registerResources(server, NewResourceHandlers(store))

	return server
}
