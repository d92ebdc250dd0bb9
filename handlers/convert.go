// ABOUTME: MCP output shapes for CRM entities
// ABOUTME: Converts models to tool outputs with RFC3339 timestamp strings
package handlers

import (
	"time"

	"github.com/harperreed/salescrm/models"
)

type CustomerOutput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zipcode   string `json:"zipcode,omitempty"`
	Country   string `json:"country,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ContactOutput struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

type DealOutput struct {
	ID                int64   `json:"id"`
	CustomerID        int64   `json:"customer_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	Value             float64 `json:"value"`
	Stage             string  `json:"stage"`
	Probability       int     `json:"probability"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty"`
	Owner             string  `json:"owner,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type ActivityOutput struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customer_id"`
	Type        string `json:"type,omitempty"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func customerToOutput(c *models.Customer) CustomerOutput {
	return CustomerOutput{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Industry:  c.Industry,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		Zipcode:   c.Zipcode,
		Country:   c.Country,
		Status:    c.Status,
		CreatedAt: timestamp(c.CreatedAt),
		UpdatedAt: timestamp(c.UpdatedAt),
	}
}

func contactToOutput(c *models.Contact) ContactOutput {
	return ContactOutput{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Name:       c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
		Department: c.Department,
	}
}

func dealToOutput(d *models.Deal) DealOutput {
	return DealOutput{
		ID:                d.ID,
		CustomerID:        d.CustomerID,
		Title:             d.Title,
		Description:       d.Description,
		Value:             d.Value,
		Stage:             d.Stage,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		Owner:             d.Owner,
		CreatedAt:         timestamp(d.CreatedAt),
		UpdatedAt:         timestamp(d.UpdatedAt),
	}
}

func activityToOutput(a *models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		Type:        a.Type,
		Subject:     a.Subject,
		Description: a.Description,
		DueDate:     a.DueDate,
		Status:      a.Status,
		Priority:    a.Priority,
		AssignedTo:  a.AssignedTo,
		CreatedAt:   timestamp(a.CreatedAt),
	}
}
