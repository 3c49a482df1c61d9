package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectorCollectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "collector",
		Name:      "collect_total",
		Help:      "Count of collect queries.",
	}, []string{"status"})

	collectorCollectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "collector",
		Name:      "collect_duration_seconds",
		Help:      "Duration of capturing a collect snapshot.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	collectorSnapshotSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "collector",
		Name:      "snapshot_size",
		Help:      "Number of record IDs captured per collect snapshot.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	collectorSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "collector",
		Name:      "skipped_total",
		Help:      "Count of snapshot records not yielded.",
	}, []string{"reason"})
)

// Collector tracks metrics for collector queries.
type Collector struct{}

// NewCollector creates a Collector metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// ObserveCollect records a snapshot capture.
func (m Collector) ObserveCollect(err error, ids int, started time.Time) {
	status := statusOf(err)
	collectorCollectTotal.WithLabelValues(status).Inc()
	collectorCollectDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		collectorSnapshotSize.Observe(float64(ids))
	}
}

// ObserveSkipped records a record left out of the sequence.
func (m Collector) ObserveSkipped(reason string) {
	collectorSkippedTotal.WithLabelValues(reason).Inc()
}
