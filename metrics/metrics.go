// Package metrics collects the figures of an import run. The process is
// short-lived, so metrics are pushed to a Prometheus Pushgateway when the run
// ends instead of being scraped.
package metrics

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "stratech_booking_adapter"

// Metrics of a single run.
type Metrics struct {
	registry *prometheus.Registry

	// Requests counts exchanges with the backend.
	Requests *prometheus.CounterVec

	// RequestDuration measures exchanges with the backend.
	RequestDuration *prometheus.HistogramVec

	// Runs counts finished runs by outcome.
	Runs *prometheus.CounterVec

	// Skipped counts guests skipped by reason.
	Skipped *prometheus.CounterVec

	// LastSuccess is the time of the last run that completed.
	LastSuccess prometheus.Gauge
}

// New returns Metrics registered in a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "The total number of requests sent to the Stratech backend.",
		}, []string{"document", "operation", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests sent to the Stratech backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"document"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The total number of import runs by outcome.",
		}, []string{"outcome"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_guests_total",
			Help:      "The total number of guests skipped by reason.",
		}, []string{"reason"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last import run that completed.",
		}),
	}
	m.registry.MustRegister(m.Requests, m.RequestDuration, m.Runs, m.Skipped, m.LastSuccess)
	return m
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveRequest records an exchange with the backend.
func (m *Metrics) ObserveRequest(document int, operation, status string, elapsed time.Duration) {
	doc := strconv.Itoa(document)
	m.Requests.WithLabelValues(doc, operation, status).Inc()
	m.RequestDuration.WithLabelValues(doc).Observe(elapsed.Seconds())
}

// ObserveRun records the end of a run.
func (m *Metrics) ObserveRun(outcome string, skippedEmpty, skippedProcessed int, at time.Time) {
	m.Runs.WithLabelValues(outcome).Inc()
	m.Skipped.WithLabelValues("empty").Add(float64(skippedEmpty))
	m.Skipped.WithLabelValues("processed").Add(float64(skippedProcessed))
	m.LastSuccess.Set(float64(at.Unix()))
}

// ObserveFailure records a run that was aborted.
func (m *Metrics) ObserveFailure(token string) {
	m.Runs.WithLabelValues(token).Inc()
}

// Push sends the metrics to the Pushgateway at url under job.
func (m *Metrics) Push(url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).Push(); err != nil {
		return errors.Wrap(err, "error pushing metrics")
	}
	return nil
}
