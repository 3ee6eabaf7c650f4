package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

func scrape(t *testing.T, m *Metrics) string {
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetrics_Observer(t *testing.T) {
	m := NewMetrics()

	m.CaseOpened(models.CaseRetaliation, models.SeverityHigh)
	m.FollowUp(triage.IntentCost)
	m.ComplaintFiled(models.CaseWorkplaceHarassment, models.PriorityHigh)

	body := scrape(t, m)
	assert.Contains(t, body, `safedesk_chat_cases_opened_total{case_type="retaliation",severity="high"} 1`)
	assert.Contains(t, body, `safedesk_chat_follow_ups_total{intent="cost"} 1`)
	assert.Contains(t, body, `safedesk_complaints_filed_total{case_type="workplace-harassment",priority="high"} 1`)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := NewMetrics()
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/complaints/{anonymous_id}", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestID(r.Context()))
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/complaints/ANON-2025-ABCDEFGH", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	body := scrape(t, m)
	assert.Contains(t, body, `safedesk_http_requests_total{method="GET",path="/api/v1/complaints/{anonymous_id}",status_code="404"} 1`)
	assert.NotContains(t, body, "ANON-2025-ABCDEFGH")
}

func TestMetricsMiddleware_KeepsIncomingRequestID(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(nil))
	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc-123", RequestID(r.Context()))
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}
