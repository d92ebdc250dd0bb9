// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Provides read-only JSON views of customers, deals, and the pipeline via crm:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/salescrm/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "crm://"

type ResourceHandlers struct {
	store *db.Store
}

func NewResourceHandlers(store *db.Store) *ResourceHandlers {
	return &ResourceHandlers{store: store}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}
	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")

	switch parts[0] {
	case "customers":
		if len(parts) == 1 {
			return h.readCustomers(ctx, uri)
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid customer id: %s", parts[1])
		}
		return h.readCustomer(ctx, uri, id)

	case "deals":
		deals, err := h.store.Deals.ListWithCustomer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch deals: %w", err)
		}
		return jsonResource(uri, deals)

	case "pipeline":
		pipeline, err := h.store.Stats.Pipeline(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pipeline: %w", err)
		}
		return jsonResource(uri, pipeline)

	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func (h *ResourceHandlers) readCustomers(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	customers, err := h.store.Customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	out := make([]CustomerOutput, len(customers))
	for i := range customers {
		out[i] = customerToOutput(&customers[i])
	}
	return jsonResource(uri, out)
}

func (h *ResourceHandlers) readCustomer(ctx context.Context, uri string, id int64) (*mcp.ReadResourceResult, error) {
	detail, err := h.store.Customers.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, detail)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func registerResources(server *mcp.Server, h *ResourceHandlers) {
	server.AddResource(&mcp.Resource{
		URI:         "crm://customers",
		Name:        "customers",
		Description: "All customers, newest first",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "crm://deals",
		Name:        "deals",
		Description: "All deals with their customer names",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "crm://pipeline",
		Name:        "pipeline",
		Description: "Deal count and value per pipeline stage",
		MIMEType:    "application/json",
	}, h.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "crm://customers/{id}",
		Name:        "customer",
		Description: "One customer with contacts, deals, and activities",
		MIMEType:    "application/json",
	}, h.ReadResource)
}
