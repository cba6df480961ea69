package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// SubmissionCounter counts pipeline outcomes.
	// outcome: "accepted", "duplicate", "quota_exceeded", "rejected", "error"
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_submissions_total",
			Help: "Total number of brief submissions by outcome",
		},
		[]string{"outcome"},
	)

	// GenerationCounter counts report generations by mode.
	// mode: "ai" or "fallback"
	GenerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_report_generations_total",
			Help: "Total number of report generations by mode",
		},
		[]string{"mode"},
	)

	// EmailDeliveryCounter counts delivery attempts per channel and outcome.
	EmailDeliveryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_email_deliveries_total",
			Help: "Total number of email delivery attempts by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	// TokenClaimCounter counts submission token claims.
	// result: "first_use" or "replay"
	TokenClaimCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_submit_token_claims_total",
			Help: "Total number of submission token claims by result",
		},
		[]string{"result"},
	)

	// AuthErrorCounter counts authentication errors by type.
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	// BillingEventCounter counts processed billing webhook events.
	BillingEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_billing_events_total",
			Help: "Total number of billing webhook events by type",
		},
		[]string{"type"},
	)

	// HTTPRequestCounter counts HTTP requests by endpoint and status.
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brief_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// RequestDuration records HTTP request duration.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brief_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// GenerationDuration records generative backend call duration.
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brief_generation_duration_seconds",
			Help:    "Duration of generative backend calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	// DBOperationDuration records database operation duration.
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brief_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(SubmissionCounter)
	prometheus.MustRegister(GenerationCounter)
	prometheus.MustRegister(EmailDeliveryCounter)
	prometheus.MustRegister(TokenClaimCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(BillingEventCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(DBOperationDuration)
}

// RecordSubmission increments the submission counter for the given outcome.
func RecordSubmission(outcome string) {
	SubmissionCounter.WithLabelValues(outcome).Inc()
}

// RecordGeneration increments the generation counter for the given mode.
func RecordGeneration(mode string) {
	GenerationCounter.WithLabelValues(mode).Inc()
}

// RecordDelivery increments the delivery counter for a channel attempt.
func RecordDelivery(channel, outcome string) {
	EmailDeliveryCounter.WithLabelValues(channel, outcome).Inc()
}

// RecordAuthError increments the auth error counter for the given type.
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			HTTPRequestCounter.WithLabelValues(endpoint, method, status).Inc()
			RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)

			return err
		}
	}
}
