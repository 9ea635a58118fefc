package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes, one per terminal pipeline stage
const (
	OutcomeSent            = "sent"
	OutcomeSkipped         = "skipped"
	OutcomeValidationError = "validation_failed"
	OutcomeSpam            = "spam_rejected"
	OutcomeRateLimited     = "rate_limited"
	OutcomeSendError       = "send_error"
	OutcomeError           = "error"
)

// Registry holds every collector exposed on /metrics
var Registry = prometheus.NewRegistry()

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total form submissions by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	emailSendDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_send_duration_seconds",
			Help:    "Duration of email provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "result"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		submissionsTotal,
		emailSendDurationSeconds,
		httpRequestsTotal,
		httpRequestDurationSeconds,
	)
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordSubmission counts a submission that ended with outcome
func RecordSubmission(flow, outcome string) {
	submissionsTotal.WithLabelValues(flow, outcome).Inc()
}

// ObserveEmailSend records the duration of a provider call
func ObserveEmailSend(provider, result string, seconds float64) {
	emailSendDurationSeconds.WithLabelValues(provider, result).Observe(seconds)
}

// ObserveHTTPRequest records a completed HTTP request
func ObserveHTTPRequest(endpoint, method, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(endpoint, method).Observe(seconds)
}

// SubmissionCounter returns the counter for flow and outcome
func SubmissionCounter(flow, outcome string) prometheus.Counter {
	return submissionsTotal.WithLabelValues(flow, outcome)
}
