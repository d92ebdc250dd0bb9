// ABOUTME: Sample data loading, clearing, and export
// ABOUTME: Seeds a demo CRM dataset and dumps all tables as one JSON document
package db

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/harperreed/salescrm/models"
	"github.com/oklog/ulid/v2"
)

// DataCounts reports how many rows of each entity a data operation touched.
type DataCounts struct {
	Customers  int `json:"customers"`
	Contacts   int `json:"contacts"`
	Deals      int `json:"deals"`
	Activities int `json:"activities"`
}

func (c DataCounts) String() string {
	return fmt.Sprintf("%d customers, %d contacts, %d deals, %d activities",
		c.Customers, c.Contacts, c.Deals, c.Activities)
}

// Children of the sample data refer to customers by their index in sampleCustomers.
var sampleCustomers = []models.Customer{
	{Name: "Acme Corporation", Email: "contact@acme.com", Phone: "+1-555-0101", Company: "Acme Corporation",
		Industry: "Technology", Address: "123 Tech Avenue", City: "San Francisco", State: "CA", Zipcode: "94102",
		Country: "USA", Status: models.CustomerActive},
	{Name: "Global Solutions Ltd", Email: "info@globalsolutions.com", Phone: "+1-555-0102", Company: "Global Solutions Ltd",
		Industry: "Consulting", Address: "456 Business Blvd", City: "New York", State: "NY", Zipcode: "10001",
		Country: "USA", Status: models.CustomerActive},
	{Name: "TechStart Industries", Email: "hello@techstart.com", Phone: "+1-555-0103", Company: "TechStart Industries",
		Industry: "Software", Address: "789 Innovation Drive", City: "Austin", State: "TX", Zipcode: "78701",
		Country: "USA", Status: models.CustomerActive},
	{Name: "Enterprise Systems Inc", Email: "sales@enterprisesys.com", Phone: "+1-555-0104", Company: "Enterprise Systems Inc",
		Industry: "IT Services", Address: "321 Corporate Park", City: "Seattle", State: "WA", Zipcode: "98101",
		Country: "USA", Status: models.CustomerActive},
	{Name: "Digital Innovations", Email: "contact@digitalinnovations.com", Phone: "+1-555-0105", Company: "Digital Innovations",
		Industry: "Digital Marketing", Address: "654 Media Lane", City: "Los Angeles", State: "CA", Zipcode: "90001",
		Country: "USA", Status: models.CustomerProspect},
}

var sampleContacts = []struct {
	customer int
	contact  models.Contact
}{
	{0, models.Contact{FirstName: "John", LastName: "Smith", Email: "john.smith@acme.com", Phone: "+1-555-0201", Position: "CEO", Department: "Executive"}},
	{0, models.Contact{FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@acme.com", Phone: "+1-555-0202", Position: "CTO", Department: "Technology"}},
	{1, models.Contact{FirstName: "Michael", LastName: "Brown", Email: "michael.brown@globalsolutions.com", Phone: "+1-555-0203", Position: "VP Sales", Department: "Sales"}},
	{1, models.Contact{FirstName: "Emily", LastName: "Davis", Email: "emily.davis@globalsolutions.com", Phone: "+1-555-0204", Position: "Account Manager", Department: "Accounts"}},
	{2, models.Contact{FirstName: "Robert", LastName: "Wilson", Email: "robert.wilson@techstart.com", Phone: "+1-555-0205", Position: "Founder", Department: "Executive"}},
	{3, models.Contact{FirstName: "Jennifer", LastName: "Martinez", Email: "jennifer.martinez@enterprisesys.com", Phone: "+1-555-0206", Position: "Director", Department: "Operations"}},
	{4, models.Contact{FirstName: "David", LastName: "Anderson", Email: "david.anderson@digitalinnovations.com", Phone: "+1-555-0207", Position: "Marketing Manager", Department: "Marketing"}},
}

var sampleDeals = []struct {
	customer int
	deal     models.Deal
}{
	{0, models.Deal{Title: "Enterprise Software License", Description: "Annual software license renewal with premium support",
		Value: 75000, Stage: models.StageProposal, Probability: 75, ExpectedCloseDate: "2025-12-31", Owner: "Alice Thompson"}},
	{0, models.Deal{Title: "Cloud Migration Project", Description: "Migrate existing infrastructure to cloud",
		Value: 150000, Stage: models.StageNegotiation, Probability: 60, ExpectedCloseDate: "2026-01-31", Owner: "Bob Stevens"}},
	{1, models.Deal{Title: "Consulting Services Contract", Description: "6-month consulting engagement",
		Value: 120000, Stage: models.StageClosedWon, Probability: 100, ExpectedCloseDate: "2025-11-15", Owner: "Alice Thompson"}},
	{2, models.Deal{Title: "API Integration Deal", Description: "Custom API development and integration",
		Value: 45000, Stage: models.StageQualification, Probability: 50, ExpectedCloseDate: "2026-02-28", Owner: "Charlie Davis"}},
	{3, models.Deal{Title: "IT Infrastructure Upgrade", Description: "Hardware and network infrastructure upgrade",
		Value: 200000, Stage: models.StageProspecting, Probability: 30, ExpectedCloseDate: "2026-03-31", Owner: "Bob Stevens"}},
	{4, models.Deal{Title: "Social Media Campaign", Description: "3-month social media marketing campaign",
		Value: 35000, Stage: models.StageProposal, Probability: 70, ExpectedCloseDate: "2025-12-15", Owner: "Alice Thompson"}},
}

var sampleActivities = []struct {
	customer int
	activity models.Activity
}{
	{0, models.Activity{Type: models.ActivityCall, Subject: "Initial discovery call", Description: "Discussed company needs and pain points",
		DueDate: "2025-11-25", Status: models.ActivityCompleted, Priority: models.PriorityHigh, AssignedTo: "Alice Thompson"}},
	{0, models.Activity{Type: models.ActivityEmail, Subject: "Follow-up with proposal", Description: "Sent proposal document for review",
		DueDate: "2025-11-28", Status: models.ActivityCompleted, Priority: models.PriorityHigh, AssignedTo: "Alice Thompson"}},
	{0, models.Activity{Type: models.ActivityMeeting, Subject: "Executive presentation", Description: "Present solution to executive team",
		DueDate: "2025-12-05", Status: models.ActivityPending, Priority: models.PriorityHigh, AssignedTo: "Bob Stevens"}},
	{1, models.Activity{Type: models.ActivityCall, Subject: "Contract negotiation", Description: "Discuss terms and conditions",
		DueDate: "2025-11-20", Status: models.ActivityCompleted, Priority: models.PriorityHigh, AssignedTo: "Alice Thompson"}},
	{2, models.Activity{Type: models.ActivityEmail, Subject: "Technical specifications needed", Description: "Request detailed tech requirements",
		DueDate: "2025-11-30", Status: models.ActivityPending, Priority: models.PriorityMedium, AssignedTo: "Charlie Davis"}},
	{3, models.Activity{Type: models.ActivityMeeting, Subject: "Budget approval meeting", Description: "Get budget approval from finance",
		DueDate: "2025-12-10", Status: models.ActivityPending, Priority: models.PriorityHigh, AssignedTo: "Bob Stevens"}},
	{4, models.Activity{Type: models.ActivityCall, Subject: "Campaign kickoff call", Description: "Discuss campaign strategy and timeline",
		DueDate: "2025-11-26", Status: models.ActivityPending, Priority: models.PriorityMedium, AssignedTo: "Alice Thompson"}},
}

// LoadSampleData seeds the demo dataset in one transaction. It does nothing
// and returns loaded=false when any customer already exists.
func (s *Store) LoadSampleData(ctx context.Context) (counts DataCounts, loaded bool, err error) {
	err = s.InTx(ctx, func(tx *Store) error {
		existing, err := tx.Customers.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count customers: %w", err)
		}
		if existing > 0 {
			return nil
		}

		ids := make([]int64, len(sampleCustomers))
		for i := range sampleCustomers {
			c := sampleCustomers[i]
			if ids[i], err = tx.Customers.Create(ctx, &c); err != nil {
				return fmt.Errorf("failed to create customer %q: %w", c.Name, err)
			}
			counts.Customers++
		}

		for _, sc := range sampleContacts {
			c := sc.contact
			c.CustomerID = ids[sc.customer]
			if _, err := tx.Contacts.Create(ctx, &c); err != nil {
				return fmt.Errorf("failed to create contact %q: %w", c.FullName(), err)
			}
			counts.Contacts++
		}

		for _, sd := range sampleDeals {
			d := sd.deal
			d.CustomerID = ids[sd.customer]
			if _, err := tx.Deals.Create(ctx, &d); err != nil {
				return fmt.Errorf("failed to create deal %q: %w", d.Title, err)
			}
			counts.Deals++
		}

		for _, sa := range sampleActivities {
			a := sa.activity
			a.CustomerID = ids[sa.customer]
			if _, err := tx.Activities.Create(ctx, &a); err != nil {
				return fmt.Errorf("failed to create activity %q: %w", a.Subject, err)
			}
			counts.Activities++
		}

		loaded = true
		return nil
	})
	if err != nil {
		return DataCounts{}, false, err
	}
	return counts, loaded, nil
}

// ClearAll deletes every row from every table, children first.
func (s *Store) ClearAll(ctx context.Context) (DataCounts, error) {
	var counts DataCounts
	tables := []struct {
		name string
		n    *int
	}{
		{"activities", &counts.Activities},
		{"deals", &counts.Deals},
		{"contacts", &counts.Contacts},
		{"customers", &counts.Customers},
	}

	for _, t := range tables {
		result, err := s.DB.ExecContext(ctx, "DELETE FROM "+t.name)
		if err != nil {
			return counts, fmt.Errorf("failed to clear %s: %w", t.name, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return counts, err
		}
		*t.n = int(affected)
	}

	return counts, nil
}

// Export is a full dump of the CRM tables.
type Export struct {
	ExportID   string            `json:"exportId"`
	ExportedAt time.Time         `json:"exportedAt"`
	Customers  []models.Customer `json:"customers"`
	Contacts   []models.Contact  `json:"contacts"`
	Deals      []models.Deal     `json:"deals"`
	Activities []models.Activity `json:"activities"`
}

// Counts summarizes the export's row counts.
func (e *Export) Counts() DataCounts {
	return DataCounts{
		Customers:  len(e.Customers),
		Contacts:   len(e.Contacts),
		Deals:      len(e.Deals),
		Activities: len(e.Activities),
	}
}

func (s *Store) ExportData(ctx context.Context) (*Export, error) {
	now := time.Now().UTC()
	export := &Export{
		ExportID:   ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		ExportedAt: now,
	}

	var err error
	if export.Customers, err = s.Customers.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export customers: %w", err)
	}
	if export.Contacts, err = s.Contacts.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export contacts: %w", err)
	}
	if export.Deals, err = s.Deals.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export deals: %w", err)
	}
	if export.Activities, err = s.Activities.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export activities: %w", err)
	}

	return export, nil
}
