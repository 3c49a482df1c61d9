// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ckb_cell_indexer"

var (
	indexerFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "fetch_total",
		Help:      "Count of block fetch attempts.",
	}, []string{"network", "status"})

	indexerFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of fetching the next block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerApplyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "apply_total",
		Help:      "Count of block applications.",
	}, []string{"network", "status"})

	indexerApplyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "apply_duration_seconds",
		Help:      "Duration of applying a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerApplyCells = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "apply_cells",
		Help:      "Number of cells created per applied block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"network"})

	indexerRollbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "rollback_total",
		Help:      "Count of blocks rolled back on reorg.",
	}, []string{"network", "status"})

	indexerPurgeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "purge_total",
		Help:      "Count of purge runs.",
	}, []string{"network", "status"})

	indexerPurgedCells = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "purged_cells_total",
		Help:      "Count of spent cells deleted by purge.",
	}, []string{"network"})

	indexerProcessedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "processed_height",
		Help:      "Highest fully applied block height.",
	}, []string{"network"})
)

// Indexer tracks metrics for the indexing loop.
type Indexer struct {
	network model.Network
}

// NewIndexer constructs an Indexer metrics collector.
func NewIndexer(network model.Network) *Indexer {
	if network == "" {
		network = "unknown"
	}
	return &Indexer{network: network}
}

// ObserveFetch records a block fetch outcome and duration.
func (m Indexer) ObserveFetch(err error, started time.Time) {
	status := statusOf(err)
	indexerFetchTotal.WithLabelValues(string(m.network), status).Inc()
	indexerFetchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveApply records a block application.
func (m Indexer) ObserveApply(err error, height uint64, cells int, started time.Time) {
	status := statusOf(err)
	indexerApplyTotal.WithLabelValues(string(m.network), status).Inc()
	indexerApplyDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	indexerApplyCells.WithLabelValues(string(m.network)).Observe(float64(cells))
	indexerProcessedHeight.WithLabelValues(string(m.network)).Set(float64(height))
}

// ObserveRollback records a reorg rollback of one block.
func (m Indexer) ObserveRollback(err error, height uint64) {
	indexerRollbackTotal.WithLabelValues(string(m.network), statusOf(err)).Inc()
	if err == nil && height > 0 {
		indexerProcessedHeight.WithLabelValues(string(m.network)).Set(float64(height - 1))
	}
}

// ObservePurge records a purge run and how many cells it deleted.
func (m Indexer) ObservePurge(err error, removed int) {
	indexerPurgeTotal.WithLabelValues(string(m.network), statusOf(err)).Inc()
	if err == nil {
		indexerPurgedCells.WithLabelValues(string(m.network)).Add(float64(removed))
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
