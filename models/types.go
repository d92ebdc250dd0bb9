// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Customer, Contact, Deal, and Activity structs plus their enumerations
package models

import (
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zipcode   string    `json:"zipcode,omitempty"`
	Country   string    `json:"country,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Contact struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Position   string    `json:"position,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Deal struct {
	ID                int64     `json:"id"`
	CustomerID        int64     `json:"customerId"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Value             float64   `json:"value"`
	Stage             string    `json:"stage,omitempty"`
	Probability       int       `json:"probability"`
	ExpectedCloseDate string    `json:"expectedCloseDate,omitempty"` // YYYY-MM-DD
	Owner             string    `json:"owner,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DealWithCustomer is a deal joined with its customer's name, used by
// recommendation and reporting views.
type DealWithCustomer struct {
	Deal
	CustomerName string `json:"customerName"`
}

type Activity struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	Type        string    `json:"type,omitempty"`
	Subject     string    `json:"subject"`
	Description string    `json:"description,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"` // YYYY-MM-DD
	Status      string    `json:"status,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomerDetail is a customer with all of its child records attached.
type CustomerDetail struct {
	Customer
	Contacts   []Contact  `json:"contacts"`
	Deals      []Deal     `json:"deals"`
	Activities []Activity `json:"activities"`
}

// Customer status constants.
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
	CustomerProspect = "prospect"
)

const (
	StageProspecting   = "prospecting"
	StageQualification = "qualification"
	StageProposal      = "proposal"
	StageNegotiation   = "negotiation"
	StageClosedWon     = "closed-won"
	StageClosedLost    = "closed-lost"
)

// Stages lists deal stages in pipeline order.
var Stages = []string{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Activity type constants. Type is free text; these are the values the
// sample data and the UI use.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityTask    = "task"
	ActivityNote    = "note"
)

// Activity status constants.
const (
	ActivityPending    = "pending"
	ActivityInProgress = "in-progress"
	ActivityCompleted  = "completed"
	ActivityCancelled  = "cancelled"
)

// Activity priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Sentiment constants.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)
