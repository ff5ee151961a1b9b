package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Business metrics
	CardAuthorizations *prometheus.CounterVec
	NameGenerations    *prometheus.CounterVec
	ReportsRendered    *prometheus.CounterVec

	// Upstream metrics
	LLMRequestDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"method", "path"},
		),

		// Business metrics
		CardAuthorizations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "card_authorizations_total",
				Help: "Total number of card key authorization attempts",
			},
			[]string{"policy", "result"}, // granted, missing, invalid, exhausted, error
		),
		NameGenerations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "name_generations_total",
				Help: "Total number of name generation requests",
			},
			[]string{"endpoint", "outcome"}, // chat, names / success, denied, upstream_error, malformed, error
		),
		ReportsRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_rendered_total",
				Help: "Total number of rendered report downloads",
			},
			[]string{"format"},
		),

		// Upstream metrics
		LLMRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Chat completion latency in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 90},
			},
			[]string{"provider", "outcome"}, // success, error
		),
	}

	return m
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, e.g. /api/v1/cards/:code

			if req.ContentLength > 0 {
				m.HTTPRequestSize.WithLabelValues(req.Method, path).Observe(float64(req.ContentLength))
			}

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start).Seconds()

			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(duration)
			m.HTTPResponseSize.WithLabelValues(req.Method, path).Observe(float64(c.Response().Size))

			return err
		}
	}
}

// RecordAuthorization increments card authorizations counter
func (m *Metrics) RecordAuthorization(policy, result string) {
	if m == nil {
		return
	}
	m.CardAuthorizations.WithLabelValues(policy, result).Inc()
}

// RecordGeneration increments name generations counter
func (m *Metrics) RecordGeneration(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.NameGenerations.WithLabelValues(endpoint, outcome).Inc()
}

// RecordReport increments rendered reports counter
func (m *Metrics) RecordReport(format string) {
	if m == nil {
		return
	}
	m.ReportsRendered.WithLabelValues(format).Inc()
}

// RecordLLMRequest records chat completion latency
func (m *Metrics) RecordLLMRequest(provider string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "error"
	if success {
		outcome = "success"
	}
	m.LLMRequestDuration.WithLabelValues(provider, outcome).Observe(duration.Seconds())
}
