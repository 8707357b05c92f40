// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for analyze observations.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridsight",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests handled, partitioned by method and status.",
		},
		[]string{"method", "status"},
	)

	requestDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gridsight",
			Name:      "http_request_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	analyzesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridsight",
			Name:      "analyzes_total",
			Help:      "Total detection-model analyze calls, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analyzeDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gridsight",
			Name:      "analyze_seconds",
			Help:      "Detection-model analyze latency in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34},
		},
	)
)

// Register attaches the service collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		requestsTotal,
		requestDurationSeconds,
		analyzesTotal,
		analyzeDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestDurationSeconds.Observe(duration.Seconds())
}

// ObserveAnalyze records one detection-model analyze call.
func ObserveAnalyze(duration time.Duration, outcome string) {
	if outcome != OutcomeError {
		outcome = OutcomeSuccess
	}
	analyzesTotal.WithLabelValues(outcome).Inc()
	analyzeDurationSeconds.Observe(duration.Seconds())
}
