package metrics

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// Metrics holds the prometheus collectors for the planner API
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mutationsTotal  *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		mutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_mutations_total",
				Help: "Planner document mutations by operation and outcome",
			},
			[]string{"operation", "result"},
		),
		persistDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planner_persist_duration_seconds",
				Help:    "Time spent writing the planner document",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.mutationsTotal, m.persistDuration)

	return m
}

// RecordMutation counts one store operation
func (m *Metrics) RecordMutation(operation string, err error) {
	m.mutationsTotal.WithLabelValues(operation, result(err)).Inc()
}

// RecordPersist observes one document write
func (m *Metrics) RecordPersist(duration time.Duration, err error) {
	m.persistDuration.WithLabelValues(result(err)).Observe(duration.Seconds())
}

// Middleware records request counts and latency by route. Errors are
// handed to the error handler first so the recorded status is the one
// the client receives.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil && !c.Response().Committed {
				c.Error(err)
			}

			duration := time.Since(start)
			status := c.Response().Status

			m.requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			m.requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	}
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func result(err error) string {
	if entities.IsValidation(err) {
		return "invalid"
	}
	if err != nil {
		return "error"
	}
	return "ok"
}

// Noop discards all store activity
type Noop struct{}

func (Noop) RecordMutation(string, error) {}
func (Noop) RecordPersist(time.Duration, error) {}
