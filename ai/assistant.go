// ABOUTME: AI assist operations over CRM records
// ABOUTME: Gathers context from the store, renders a prompt, and parses the model's JSON reply
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
	"go.uber.org/zap"
)

// ErrModel marks a failed model call or an unparseable reply.
var ErrModel = errors.New("model request failed")

// Email template types.
const (
	EmailFollowup     = "followup"
	EmailCloseout     = "closeout"
	EmailNegotiation  = "negotiation"
	EmailAppreciation = "appreciation"
	EmailProposal     = "proposal"
)

var EmailTypes = []string{EmailFollowup, EmailCloseout, EmailNegotiation, EmailAppreciation, EmailProposal}

const recentDealLimit = 5

// Assistant runs AI assist operations. A nil Generator makes every
// operation fail with ErrModel.
type Assistant struct {
	store  *db.Store
	gen    Generator
	logger *zap.Logger
	now    func() time.Time
}

func NewAssistant(store *db.Store, gen Generator, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{store: store, gen: gen, logger: logger, now: time.Now}
}

// Enabled reports whether a model is configured.
func (a *Assistant) Enabled() bool {
	return a.gen != nil
}

// ParseReply extracts the JSON document from a model reply, dropping any
// markdown code fence around it.
func ParseReply(reply string) (json.RawMessage, error) {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if s == "" || !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w: reply is not valid JSON", ErrModel)
	}
	return json.RawMessage(s), nil
}

func (a *Assistant) complete(ctx context.Context, name string, data interface{}) (json.RawMessage, error) {
	prompt, err := renderPrompt(name, data)
	if err != nil {
		return nil, err
	}
	if a.gen == nil {
		return nil, fmt.Errorf("%w: no model configured", ErrModel)
	}

	start := time.Now()
	reply, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}
	a.logger.Debug("Model reply received",
		zap.String("prompt", name),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("reply_bytes", len(reply)),
		zap.Duration("latency", time.Since(start)))

	return ParseReply(reply)
}

// Insights asks for 3-5 business insights about the dashboard aggregates.
func (a *Assistant) Insights(ctx context.Context, dashboard *analytics.Dashboard) (json.RawMessage, error) {
	if dashboard == nil {
		return nil, errors.New("dashboard is required")
	}
	return a.complete(ctx, promptInsights, dashboard)
}

type coachingData struct {
	Customer     *models.Customer
	DealCount    int
	ContactCount int
	Deals        []models.Deal
}

// Coaching asks for sales coaching about one customer.
func (a *Assistant) Coaching(ctx context.Context, customerID int64) (json.RawMessage, error) {
	customer, err := a.store.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	summary, err := a.store.Stats.CustomerValue(ctx, customerID)
	if err != nil {
		return nil, err
	}
	deals, err := a.store.Deals.ListRecentByCustomer(ctx, customerID, recentDealLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	return a.complete(ctx, promptCoaching, coachingData{
		Customer:     customer,
		DealCount:    summary.DealCount,
		ContactCount: summary.ContactCount,
		Deals:        deals,
	})
}

type emailData struct {
	Type         string
	CustomerName string
	Company      string
	DealTitle    string
	Value        string
}

// EmailTemplate drafts a sales email. dealID 0 means no deal; an empty
// templateType means followup.
func (a *Assistant) EmailTemplate(ctx context.Context, customerID, dealID int64, templateType string) (json.RawMessage, error) {
	if customerID <= 0 {
		return nil, models.NewValidationError("customerId is required")
	}
	if templateType == "" {
		templateType = EmailFollowup
	}
	if !slices.Contains(EmailTypes, templateType) {
		return nil, models.NewValidationError("invalid templateType: %s (valid: %s)", templateType, strings.Join(EmailTypes, ", "))
	}

	customer, err := a.store.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	data := emailData{
		Type:         templateType,
		CustomerName: customer.Name,
		Company:      customer.Company,
		DealTitle:    "none",
		Value:        "TBD",
	}
	if data.Company == "" {
		data.Company = customer.Name
	}
	if dealID > 0 {
		deal, err := a.store.Deals.Get(ctx, dealID)
		if err != nil {
			return nil, err
		}
		data.DealTitle = deal.Title
		if deal.Value > 0 {
			data.Value = money(deal.Value)
		}
	}

	return a.complete(ctx, promptEmail, data)
}

type dealRiskData struct {
	Title           string
	CustomerName    string
	CustomerStatus  string
	Value           string
	Stage           string
	Probability     int
	ExpectedClose   string
	DaysSinceUpdate int
}

// DealRisk asks for a risk assessment of one deal.
func (a *Assistant) DealRisk(ctx context.Context, dealID int64) (json.RawMessage, error) {
	deal, err := a.store.Deals.GetWithCustomer(ctx, dealID)
	if err != nil {
		return nil, err
	}
	customer, err := a.store.Customers.Get(ctx, deal.CustomerID)
	if err != nil {
		return nil, err
	}

	data := dealRiskData{
		Title:           deal.Title,
		CustomerName:    deal.CustomerName,
		CustomerStatus:  customer.Status,
		Value:           money(deal.Value),
		Stage:           deal.Stage,
		Probability:     deal.Probability,
		ExpectedClose:   deal.ExpectedCloseDate,
		DaysSinceUpdate: int(a.now().Sub(deal.UpdatedAt).Hours() / 24),
	}
	if data.ExpectedClose == "" {
		data.ExpectedClose = "not set"
	}

	return a.complete(ctx, promptDealRisk, data)
}

type intelligenceData struct {
	Customer      *models.Customer
	Location      string
	TotalValue    float64
	ContactCount  int
	DealCount     int
	ActivityCount int
	ActivityTypes []db.TypeCount
}

// CustomerIntelligence asks for a customer intelligence report.
func (a *Assistant) CustomerIntelligence(ctx context.Context, customerID int64) (json.RawMessage, error) {
	customer, err := a.store.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	summary, err := a.store.Stats.CustomerValue(ctx, customerID)
	if err != nil {
		return nil, err
	}
	activityCount, err := a.store.Stats.CountActivities(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	types, err := a.store.Stats.ActivityTypes(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to group activities: %w", err)
	}

	return a.complete(ctx, promptIntelligence, intelligenceData{
		Customer:      customer,
		Location:      location(customer),
		TotalValue:    summary.TotalValue,
		ContactCount:  summary.ContactCount,
		DealCount:     summary.DealCount,
		ActivityCount: activityCount,
		ActivityTypes: types,
	})
}

func location(c *models.Customer) string {
	var parts []string
	for _, p := range []string{c.City, c.State, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ", ")
}
