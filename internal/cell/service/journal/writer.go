// Package journal ships indexer block events to the ClickHouse journal in batches.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/pkg/batcher"
	"go.uber.org/zap"
)

const (
	entryBatcherCapacity      = 500
	entryBatcherFlushInterval = 5 * time.Second
	entryBatcherRPS           = 10
)

// Writer queues journal entries without blocking the indexer.
type Writer struct {
	repo    Repository
	metrics Metrics
	logger  *zap.Logger
	batcher *batcher.Batcher[model.JournalEntry]
}

// NewWriter builds a Writer flushing into repo.
func NewWriter(repo Repository, metrics Metrics, logger *zap.Logger) (*Writer, error) {
	if repo == nil {
		return nil, errors.New("journal repository is required")
	}
	if metrics == nil {
		return nil, errors.New("journal metrics is required")
	}
	w := &Writer{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
	w.batcher = batcher.New[model.JournalEntry](
		logger.Named("entryBatcher"),
		w.flush,
		entryBatcherCapacity,
		entryBatcherFlushInterval,
		entryBatcherRPS,
	)
	return w, nil
}

func (w *Writer) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

// Stop flushes queued entries.
func (w *Writer) Stop() {
	w.batcher.Stop()
}

// Record queues entry. A full queue drops it.
func (w *Writer) Record(entry model.JournalEntry) {
	if err := w.batcher.TryAdd(entry); err != nil {
		w.metrics.ObserveDropped(1)
		w.logger.Debug("journal entry dropped", zap.Error(err), zap.Uint64("height", entry.Height))
	}
}

func (w *Writer) flush(ctx context.Context, entries []model.JournalEntry) error {
	if err := w.repo.InsertJournalEntries(ctx, entries); err != nil {
		return err
	}
	w.logger.Debug("InsertJournalEntries", zap.Int("count", len(entries)))
	return nil
}
