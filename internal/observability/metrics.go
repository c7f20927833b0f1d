// Package observability holds the Prometheus collectors shared by the activity binaries.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_service",
		Subsystem: "service",
		Name:      "operations_total",
		Help:      "Number of activity operations, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})

	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activity_service",
		Subsystem: "service",
		Name:      "operation_duration_seconds",
		Help:      "Time spent in activity operations including store calls.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"operation"})

	httpRequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"})

	activityPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_service",
		Subsystem: "persistence",
		Name:      "last_activity_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent activity write committed to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(operationCounter, operationDuration, httpRequestCounter, activityPersistGauge)
}

// ServiceObserver reports domain.Service outcomes to Prometheus.
type ServiceObserver struct{}

// ObserveOperation implements domain.Observer.
func (ServiceObserver) ObserveOperation(operation, outcome string, elapsed time.Duration) {
	operationCounter.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordHTTPRequest counts a completed HTTP request.
func RecordHTTPRequest(method, route string, status int) {
	httpRequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordActivityPersisted updates the persistence watermark gauge.
func RecordActivityPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	activityPersistGauge.Set(float64(ts.Unix()))
}
