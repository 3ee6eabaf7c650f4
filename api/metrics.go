package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

const metricsNamespace = "safedesk"

// Metrics wraps the Prometheus collectors for the API. It has its own registry so tests can
// build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CasesOpened         *prometheus.CounterVec
	FollowUps           *prometheus.CounterVec
	ComplaintsFiled     *prometheus.CounterVec
}

// NewMetrics creates and registers the API collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		CasesOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chat_cases_opened_total",
			Help:      "Chat sessions classified, by case type and severity",
		}, []string{"case_type", "severity"}),
		FollowUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chat_follow_ups_total",
			Help:      "Follow-up messages answered, by detected intent",
		}, []string{"intent"}),
		ComplaintsFiled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "complaints_filed_total",
			Help:      "Complaints filed, by classified case type and priority",
		}, []string{"case_type", "priority"}),
	}

	reg.MustRegister(m.HTTPRequestsTotal)
	reg.MustRegister(m.HTTPRequestDuration)
	reg.MustRegister(m.CasesOpened)
	reg.MustRegister(m.FollowUps)
	reg.MustRegister(m.ComplaintsFiled)
	return m
}

// Handler returns the /metrics handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// CaseOpened implements triage.Observer
func (m *Metrics) CaseOpened(caseType models.CaseType, severity models.Severity) {
	m.CasesOpened.WithLabelValues(string(caseType), string(severity)).Inc()
}

// FollowUp implements triage.Observer
func (m *Metrics) FollowUp(intent triage.Intent) {
	m.FollowUps.WithLabelValues(intent.String()).Inc()
}

// ComplaintFiled counts a stored complaint. Labels come from the classifier and the validated
// priority, never from free text.
func (m *Metrics) ComplaintFiled(caseType models.CaseType, priority string) {
	m.ComplaintsFiled.WithLabelValues(string(caseType), priority).Inc()
}

var _ triage.Observer = (*Metrics)(nil)
