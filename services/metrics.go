package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes recorded by FeedbackMetrics.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeNotFound        = "not_found"
	OutcomeError           = "error"
)

// FeedbackMetrics counts feedback lifecycle operations by outcome.
type FeedbackMetrics struct {
	operations *prometheus.CounterVec
}

func NewFeedbackMetrics(reg prometheus.Registerer) *FeedbackMetrics {
	m := &FeedbackMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_operations_total",
			Help: "Feedback lifecycle operations by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.operations)
	return m
}

func (m *FeedbackMetrics) observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}
