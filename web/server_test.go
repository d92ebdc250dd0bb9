// ABOUTME: HTTP tests for the REST API, error mapping, middleware, and pages
// ABOUTME: Drives the gin engine with httptest against a temp SQLite store
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/salescrm/ai"
	"github.com/harperreed/salescrm/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

func setupServer(t *testing.T, gen ai.Generator, seed bool) (*Server, *db.Store) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	if seed {
		_, _, err := store.LoadSampleData(t.Context())
		require.NoError(t, err)
	}

	srv, err := NewServer(store, ai.NewAssistant(store, gen, nil), nil, Options{})
	require.NoError(t, err)
	return srv, store
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := setupServer(t, nil, false)

	rec := do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"API is running"}`, rec.Body.String())
}

func TestCreateAndGetCustomer(t *testing.T) {
	srv, _ := setupServer(t, nil, false)

	rec := do(t, srv, http.MethodPost, "/api/customers", `{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["id"]
	assert.Equal(t, float64(1), id)

	rec = do(t, srv, http.MethodGet, "/api/customers/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Acme", body["name"])
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, []interface{}{}, body["contacts"])
	assert.Equal(t, []interface{}{}, body["deals"])
	assert.Equal(t, []interface{}{}, body["activities"])
}

func TestErrorMapping(t *testing.T) {
	srv, _ := setupServer(t, nil, false)

	rec := do(t, srv, http.MethodPost, "/api/customers", `{"name":"Acme","email":"a@acme.test"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		errMsg string
	}{
		{"duplicate email", http.MethodPost, "/api/customers", `{"name":"Acme 2","email":"a@acme.test"}`, http.StatusConflict, ""},
		{"missing name", http.MethodPost, "/api/customers", `{"email":"b@acme.test"}`, http.StatusBadRequest, "name is required"},
		{"malformed body", http.MethodPost, "/api/customers", `{"name":`, http.StatusBadRequest, ""},
		{"contact for unknown customer", http.MethodPost, "/api/contacts", `{"customerId":99,"firstName":"Jo","lastName":"Lee"}`, http.StatusBadRequest, ""},
		{"contact missing names", http.MethodPost, "/api/contacts", `{"customerId":1}`, http.StatusBadRequest, "firstName and lastName are required"},
		{"contact missing fields", http.MethodPost, "/api/contacts", `{}`, http.StatusBadRequest, "customerId, firstName, and lastName are required"},
		{"invalid deal stage", http.MethodPost, "/api/deals", `{"customerId":1,"title":"X","stage":"won"}`, http.StatusBadRequest, ""},
		{"bad id", http.MethodGet, "/api/customers/abc", "", http.StatusBadRequest, "invalid id"},
		{"zero id", http.MethodGet, "/api/deals/0", "", http.StatusBadRequest, "invalid id"},
		{"missing customer", http.MethodGet, "/api/customers/42", "", http.StatusNotFound, "Customer not found"},
		{"missing deal update", http.MethodPut, "/api/deals/42", `{"customerId":1,"title":"X"}`, http.StatusNotFound, "Deal not found"},
		{"missing activity delete", http.MethodDelete, "/api/activities/42", "", http.StatusNotFound, "Activity not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			body := decode(t, rec)
			assert.Contains(t, body, "error")
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, body["error"])
			}
		})
	}
}

func TestChildResources(t *testing.T) {
	srv, _ := setupServer(t, nil, false)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/customers", `{"name":"Acme"}`).Code)

	rec := do(t, srv, http.MethodPost, "/api/deals", `{"customerId":1,"title":"Renewal","value":5000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/deals/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deal := decode(t, rec)
	assert.Equal(t, "prospecting", deal["stage"])
	assert.Equal(t, float64(0), deal["probability"])

	rec = do(t, srv, http.MethodPut, "/api/deals/1", `{"customerId":1,"title":"Renewal","value":7000,"stage":"negotiation","probability":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Deal updated"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/deals/customer/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deals []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deals))
	require.Len(t, deals, 1)
	assert.Equal(t, float64(7000), deals[0]["value"])

	rec = do(t, srv, http.MethodGet, "/api/contacts/customer/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, "/api/customers/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Customer deleted"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/deals/1", "").Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv, _ := setupServer(t, nil, true)

	rec := do(t, srv, http.MethodGet, "/api/analytics/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	overview := body["overview"].(map[string]interface{})
	assert.Equal(t, float64(5), overview["totalCustomers"])
	assert.Equal(t, []interface{}{}, body["recommendations"])

	rec = do(t, srv, http.MethodPost, "/api/analytics/extract-insights", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/analytics/extract-insights", `{"text":"John Smith from Acme Corp called."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Corp")

	rec = do(t, srv, http.MethodGet, "/api/analytics/performance-report", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/analytics/performance-report?startDate=2000-01-01&endDate=2100-12-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deals := decode(t, rec)["deals"].(map[string]interface{})
	assert.Equal(t, float64(6), deals["total"])

	rec = do(t, srv, http.MethodGet, "/api/analytics/customer-health/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["customerId"])

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/analytics/customer-health/99", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/analytics/sentiment/99", "").Code)

	rec = do(t, srv, http.MethodGet, "/api/analytics/sentiment/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decode(t, rec)["totalAnalyzed"])

	rec = do(t, srv, http.MethodGet, "/api/analytics/deal-recommendations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "IT Infrastructure Upgrade")
}

func TestAIWithoutModel(t *testing.T) {
	srv, _ := setupServer(t, nil, true)

	rec := do(t, srv, http.MethodGet, "/api/ai/coaching/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/ai/insights", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []interface{}{}, body["insights"])
	assert.Contains(t, body, "analytics")

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/ai/coaching/99", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/ai/deal-risk/99", "").Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, srv, http.MethodPost, "/api/ai/email-template", `{"customerId":1,"templateType":"spam"}`).Code)
}

func TestAIWithModel(t *testing.T) {
	srv, _ := setupServer(t, stubGenerator{reply: "```json\n{\"subject\":\"Hello\"}\n```"}, true)

	rec := do(t, srv, http.MethodPost, "/api/ai/email-template", `{"customerId":1,"dealId":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subject":"Hello"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/ai/customer-intelligence/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subject":"Hello"}`, rec.Body.String())

	failing, _ := setupServer(t, stubGenerator{err: errors.New("boom")}, true)
	rec = do(t, failing, http.MethodGet, "/api/ai/deal-risk/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestRequestIDAndCORS(t *testing.T) {
	srv, _ := setupServer(t, nil, false)

	rec := do(t, srv, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRestrictedCORSOrigins(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "cors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = NewServer(store, nil, nil, Options{CORSOrigins: []string{"localhost:3000"}})
	assert.ErrorContains(t, err, "invalid CORS origin")

	srv, err := NewServer(store, nil, nil, Options{CORSOrigins: []string{"http://app.test"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecovery(t *testing.T) {
	srv, _ := setupServer(t, nil, false)
	srv.engine.GET("/boom", func(*gin.Context) { panic("kaboom") })

	rec := do(t, srv, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestPages(t *testing.T) {
	srv, _ := setupServer(t, nil, true)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "Enterprise Focus"},
		{"/customers", http.StatusOK, "Acme Corporation"},
		{"/customers/1", http.StatusOK, "Health score"},
		{"/customers/99", http.StatusNotFound, "Customer not found"},
		{"/customers/abc", http.StatusBadRequest, "invalid customer id"},
		{"/deals", http.StatusOK, "Social Media Campaign"},
		{"/deals?stage=closed-won", http.StatusOK, "Consulting Services Contract"},
		{"/deals?stage=bogus", http.StatusBadRequest, "invalid stage"},
		{"/recommendations", http.StatusOK, "IT Infrastructure Upgrade"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}

	rec := do(t, srv, http.MethodGet, "/deals?stage=closed-won", "")
	assert.NotContains(t, rec.Body.String(), "Social Media Campaign")
}
