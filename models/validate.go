// ABOUTME: Validation and defaults for CRM entities
// ABOUTME: Checks mandatory fields, enumerations, and date formats before writes
package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the storage format for due and expected-close dates.
const DateLayout = "2006-01-02"

// ValidationError reports a rejected entity. Fields names the offending
// JSON fields in the order they were checked.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func requiredError(fields ...string) *ValidationError {
	var msg string
	switch len(fields) {
	case 1:
		msg = fmt.Sprintf("%s is required", fields[0])
	case 2:
		msg = fmt.Sprintf("%s and %s are required", fields[0], fields[1])
	default:
		msg = fmt.Sprintf("%s, and %s are required", strings.Join(fields[:len(fields)-1], ", "), fields[len(fields)-1])
	}
	return &ValidationError{Message: msg, Fields: fields}
}

func enumError(field, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf("invalid %s: %s (valid: %s)", field, value, strings.Join(allowed, ", ")),
		Fields:  []string{field},
	}
}

func checkEnum(field, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return enumError(field, value, allowed)
}

func checkDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := ParseDate(value); err != nil {
		return &ValidationError{
			Message: fmt.Sprintf("invalid %s: %s (use YYYY-MM-DD)", field, value),
			Fields:  []string{field},
		}
	}
	return nil
}

// ParseDate accepts a bare date or a full RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

var customerStatuses = []string{CustomerActive, CustomerInactive, CustomerProspect}
var activityStatuses = []string{ActivityPending, ActivityInProgress, ActivityCompleted, ActivityCancelled}
var priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Validate checks the customer's mandatory fields and status.
func (c *Customer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return requiredError("name")
	}
	return checkEnum("status", c.Status, customerStatuses)
}

// ApplyDefaults fills in create-time defaults.
func (c *Customer) ApplyDefaults() {
	if c.Status == "" {
		c.Status = CustomerActive
	}
}

func (c *Contact) Validate() error {
	var missing []string
	if c.CustomerID <= 0 {
		missing = append(missing, "customerId")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(c.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if len(missing) > 0 {
		return requiredError(missing...)
	}
	return nil
}

func (d *Deal) Validate() error {
	var missing []string
	if d.CustomerID <= 0 {
		missing = append(missing, "customerId")
	}
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return requiredError(missing...)
	}
	if err := checkEnum("stage", d.Stage, Stages); err != nil {
		return err
	}
	if d.Probability < 0 || d.Probability > 100 {
		return &ValidationError{
			Message: fmt.Sprintf("probability must be between 0 and 100, got %d", d.Probability),
			Fields:  []string{"probability"},
		}
	}
	if d.Value < 0 {
		return &ValidationError{Message: "value must not be negative", Fields: []string{"value"}}
	}
	return checkDate("expectedCloseDate", d.ExpectedCloseDate)
}

func (d *Deal) ApplyDefaults() {
	if d.Stage == "" {
		d.Stage = StageProspecting
	}
}

// IsWon reports whether the deal closed successfully.
func (d Deal) IsWon() bool {
	return d.Stage == StageClosedWon
}

func (a *Activity) Validate() error {
	var missing []string
	if a.CustomerID <= 0 {
		missing = append(missing, "customerId")
	}
	if strings.TrimSpace(a.Subject) == "" {
		missing = append(missing, "subject")
	}
	if len(missing) > 0 {
		return requiredError(missing...)
	}
	if err := checkEnum("status", a.Status, activityStatuses); err != nil {
		return err
	}
	if err := checkEnum("priority", a.Priority, priorities); err != nil {
		return err
	}
	return checkDate("dueDate", a.DueDate)
}

func (a *Activity) ApplyDefaults() {
	if a.Status == "" {
		a.Status = ActivityPending
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
}
