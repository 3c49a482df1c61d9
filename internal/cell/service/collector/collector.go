// Package collector serves filtered snapshots of unspent cells.
package collector

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 100
	defaultWorkers   = 4
)

// Skip reasons reported to metrics.
const (
	skipDeleted = "deleted"
	skipSpent   = "spent"
	skipContent = "content"
	skipNotLive = "not_live"
)

// Options controls how matched cells are resolved. The zero value yields content cells
// too; use DefaultOptions for plain capacity cells only.
type Options struct {
	// SkipCellWithContent leaves out cells carrying data.
	SkipCellWithContent bool
	// LoadData resolves the data of every yielded cell.
	LoadData bool
	// BatchSize is how many records Next loads per store round trip.
	BatchSize int
	// Workers bounds concurrent chain lookups while a batch is resolved.
	Workers int
}

// DefaultOptions selects plain capacity cells without data.
func DefaultOptions() Options {
	return Options{SkipCellWithContent: true}
}

// Collector is the read-only query side of the index. It may run next to the indexer.
type Collector struct {
	store   Store
	source  model.LiveCellFetcher
	metrics Metrics
	logger  *zap.Logger
}

// New builds a Collector. A nil source makes truncated fields fail with MissingSourceError.
func New(store Store, source model.LiveCellFetcher, metrics Metrics, logger *zap.Logger) (*Collector, error) {
	if store == nil {
		return nil, errors.New("collector store is required")
	}
	if metrics == nil {
		return nil, errors.New("collector metrics is required")
	}
	return &Collector{
		store:   store,
		source:  source,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Collect captures the IDs of unspent cells matching filter and returns an iterator over them.
// Records changed after the capture are re-checked as they are loaded.
// opts is taken as given: Options{} does not skip cells carrying data, DefaultOptions does.
func (c *Collector) Collect(ctx context.Context, filter model.Filter, opts Options) (it *Iterator, err error) {
	started := time.Now()
	var ids []string
	defer func() {
		c.metrics.ObserveCollect(err, len(ids), started)
	}()

	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	unspent := false
	filter.Spent = &unspent
	if opts.SkipCellWithContent {
		if filter.DataLength != nil && !filter.DataLength.Contains(0) {
			return &Iterator{collector: c, opts: opts}, nil
		}
		filter.DataLength = model.Exactly(0)
	}

	ids, err = c.store.FindCellIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("collect snapshot captured", zap.Int("ids", len(ids)))
	return &Iterator{collector: c, opts: opts, ids: ids}, nil
}

// Iterator walks a snapshot of record IDs and resolves each into a public cell view.
// It is not safe for concurrent use.
type Iterator struct {
	collector *Collector
	opts      Options
	ids       []string
	pos       int
	ready     []*model.Cell
}

// Next returns the next cell. ok is false once the snapshot is exhausted.
func (it *Iterator) Next(ctx context.Context) (cell *model.Cell, ok bool, err error) {
	for len(it.ready) == 0 {
		if it.pos >= len(it.ids) {
			return nil, false, nil
		}
		if err := it.load(ctx); err != nil {
			return nil, false, err
		}
	}
	cell, it.ready = it.ready[0], it.ready[1:]
	return cell, true, nil
}

// All drains the iterator.
func (it *Iterator) All(ctx context.Context) ([]*model.Cell, error) {
	var out []*model.Cell
	for {
		cell, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, cell)
	}
}

// Len is the number of IDs captured by the snapshot.
func (it *Iterator) Len() int {
	return len(it.ids)
}

func (it *Iterator) load(ctx context.Context) error {
	end := min(it.pos+it.opts.BatchSize, len(it.ids))
	batch := it.ids[it.pos:end]

	records, err := it.collector.store.LoadCells(ctx, batch)
	if err != nil {
		return err
	}
	it.pos = end

	views, err := workerpool.Map(ctx, it.opts.Workers, records, func(ctx context.Context, rec *model.LiveCell) (resolved, error) {
		cell, reason, err := it.collector.view(ctx, rec, it.opts)
		return resolved{cell: cell, reason: reason}, err
	})
	if err != nil {
		return err
	}
	for _, v := range views {
		if v.reason != "" {
			it.collector.metrics.ObserveSkipped(v.reason)
			continue
		}
		it.ready = append(it.ready, v.cell)
	}
	return nil
}

type resolved struct {
	cell   *model.Cell
	reason string
}
