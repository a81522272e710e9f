// Package metrics exposes Prometheus instrumentation for the queue.
// Registered against the default registry and scraped via GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements storage.Recorder, translating queue mutations into
// gauge/counter updates.
type Metrics struct {
	queueDepth      prometheus.Gauge
	processingDepth prometheus.Gauge
	operationsTotal *prometheus.CounterVec
	retriedTotal    prometheus.Counter
}

// New registers TLQ's metrics against reg and returns the recorder.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tlq_queue_depth",
			Help: "Number of messages currently in the ready queue.",
		}),
		processingDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tlq_processing_depth",
			Help: "Number of messages currently leased out for processing.",
		}),
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tlq_operations_total",
			Help: "Count of storage operations, by kind.",
		}, []string{"op"}),
		retriedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tlq_messages_retried_total",
			Help: "Count of individual messages reinstated via retry.",
		}),
	}
}

// ObserveDepths implements storage.Recorder.
func (m *Metrics) ObserveDepths(queueDepth, processingDepth int) {
	m.queueDepth.Set(float64(queueDepth))
	m.processingDepth.Set(float64(processingDepth))
}

// CountOp implements storage.Recorder.
func (m *Metrics) CountOp(op string) {
	m.operationsTotal.WithLabelValues(op).Inc()
}

// CountRetry implements storage.Recorder.
func (m *Metrics) CountRetry(n int) {
	if n > 0 {
		m.retriedTotal.Add(float64(n))
	}
}
