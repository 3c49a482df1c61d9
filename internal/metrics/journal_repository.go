package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	journalRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "journal_repository",
		Name:      "operations_total",
		Help:      "Count of journal repository operations.",
	}, []string{"operation", "status"})
	journalRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "journal_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of journal repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})
	journalDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "journal_repository",
		Name:      "dropped_entries_total",
		Help:      "Count of journal entries dropped because the queue was full.",
	})
)

// JournalRepository tracks metrics for ClickHouse journal operations.
type JournalRepository struct{}

// NewJournalRepository creates a JournalRepository metrics collector.
func NewJournalRepository() *JournalRepository {
	return &JournalRepository{}
}

// Observe records duration and status of a repository operation.
func (m JournalRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	journalRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	journalRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// ObserveDropped records journal entries lost to a full queue.
func (m JournalRepository) ObserveDropped(n int) {
	journalDroppedTotal.Add(float64(n))
}
