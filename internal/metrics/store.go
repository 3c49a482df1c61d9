package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of cell store operations.",
	}, []string{"engine", "operation", "status"})
	storeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of cell store operations.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"engine", "operation", "status"})
)

// Store tracks metrics for a cell store engine.
type Store struct {
	engine string
}

// NewStore creates a Store metrics collector for the named engine.
func NewStore(engine string) *Store {
	if engine == "" {
		engine = "unknown"
	}
	return &Store{engine: engine}
}

// Observe records duration and status of a store operation.
func (m Store) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	storeRequestsTotal.WithLabelValues(m.engine, operation, status).Inc()
	storeRequestDuration.WithLabelValues(m.engine, operation, status).Observe(time.Since(started).Seconds())
}
