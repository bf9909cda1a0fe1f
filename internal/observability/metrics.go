package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service's prometheus collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	graderNotes prometheus.Counter
	events      *prometheus.CounterVec
	inFlight    prometheus.Gauge
}

// NewMetrics registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recruitment",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recruitment",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recruitment",
			Name:      "http_errors_total",
			Help:      "HTTP error responses by route and error code.",
		}, []string{"route", "method", "code"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recruitment",
			Name:      "application_transitions_total",
			Help:      "Application status transitions by source and target status.",
		}, []string{"from", "to"}),
		graderNotes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "recruitment",
			Name:      "grader_reviews_total",
			Help:      "Grader reviews appended to applications.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recruitment",
			Name:      "domain_events_total",
			Help:      "Domain events published by type.",
		}, []string{"type"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "recruitment",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.errors, m.transitions, m.graderNotes, m.events, m.inFlight)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordTransition counts a persisted status change.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// RecordGraderReview counts an appended grader review.
func (m *Metrics) RecordGraderReview() {
	if m == nil {
		return
	}
	m.graderNotes.Inc()
}

// RecordEvent counts a published domain event.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType).Inc()
}

func (m *Metrics) trackInFlight(delta float64) {
	if m == nil {
		return
	}
	m.inFlight.Add(delta)
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
