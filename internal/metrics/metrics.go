// Package metrics provides Prometheus metrics for the training planner
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the metric registry and the service's instruments.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	workoutsGenerated    prometheus.Counter
	generationFailures   prometheus.Counter
	substitutionsServed  prometheus.Counter
	substitutionFailures prometheus.Counter
}

// New creates a manager with its own registry so that tests never clash on
// the default one.
func New(namespace string) *Manager {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	auto := promauto.With(registry)
	return &Manager{
		registry: registry,
		httpRequests: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, pattern and status code",
			},
			[]string{"method", "pattern", "status_code"},
		),
		httpRequestDuration: auto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "pattern"},
		),
		workoutsGenerated: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workouts_generated_total",
			Help:      "Total number of successfully generated workout plans",
		}),
		generationFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workout_generation_failures_total",
			Help:      "Total number of workout generations that failed constraints",
		}),
		substitutionsServed: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "substitutions_served_total",
			Help:      "Total number of exercise substitutions served",
		}),
		substitutionFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "substitution_failures_total",
			Help:      "Total number of substitution requests with no viable candidate",
		}),
	}
}

// ObserveHTTPRequest records one served request.
func (m *Manager) ObserveHTTPRequest(method, pattern string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, pattern, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, pattern).Observe(duration.Seconds())
}

// WorkoutGenerated counts a successful plan generation.
func (m *Manager) WorkoutGenerated() {
	m.workoutsGenerated.Inc()
}

// GenerationFailed counts a generation that could not satisfy its constraints.
func (m *Manager) GenerationFailed() {
	m.generationFailures.Inc()
}

// SubstitutionServed counts a served substitution.
func (m *Manager) SubstitutionServed() {
	m.substitutionsServed.Inc()
}

// SubstitutionFailed counts a substitution request with no viable candidate.
func (m *Manager) SubstitutionFailed() {
	m.substitutionFailures.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
