package aggregates

import (
	"time"

	"github.com/yungbote/personnel-backend/internal/observability"
)

// Hooks receives one ObserveOperation per aggregate write, plus a rollback
// signal for every failure and a conflict signal for uniqueness rejections.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRollback(name string)
}

// metricsHooks forwards to Metrics, whose methods are no-ops on a nil receiver.
type metricsHooks struct {
	metrics *observability.Metrics
}

func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	return metricsHooks{metrics: metrics}
}

func (h metricsHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(name, status, dur)
}

func (h metricsHooks) IncConflict(name string) { h.metrics.IncAggregateConflict(name) }

func (h metricsHooks) IncRollback(name string) { h.metrics.IncAggregateRollback(name) }
