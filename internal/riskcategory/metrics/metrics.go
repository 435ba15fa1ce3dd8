// Package metrics provides observability for the risk category module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks operation counts and durations. Construct exactly once per
// process; the collectors register themselves with the default registry.
type Metrics struct {
	Created           prometheus.Counter
	SoftDeleted       prometheus.Counter
	OperationDuration *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec
}

// New creates a Metrics instance with all risk category metrics registered.
func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounter(prometheus.CounterOpts{
			Name: "risk_categories_created_total",
			Help: "Total number of risk categories created",
		}),
		SoftDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "risk_categories_soft_deleted_total",
			Help: "Total number of risk categories soft-deleted",
		}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "risk_categories_operation_duration_seconds",
			Help:    "Duration of risk category store operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_categories_operation_errors_total",
			Help: "Total number of failed risk category operations",
		}, []string{"operation"}),
	}
}

// IncrementCreated records a successful creation.
func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.Created.Inc()
}

// IncrementSoftDeleted records a successful soft delete.
func (m *Metrics) IncrementSoftDeleted() {
	if m == nil {
		return
	}
	m.SoftDeleted.Inc()
}

// ObserveOperation records the duration of one operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncrementError records a failed operation.
func (m *Metrics) IncrementError(operation string) {
	if m == nil {
		return
	}
	m.OperationErrors.WithLabelValues(operation).Inc()
}
