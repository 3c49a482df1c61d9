package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

// InsertJournalEntries stores journal rows in ClickHouse.
func (r *Repository) InsertJournalEntries(ctx context.Context, entries []model.JournalEntry) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_journal_entries", err, start)
	}()

	if len(entries) == 0 {
		return nil
	}

	const query = `
INSERT INTO ckb_block_journal (
	network,
	action,
	height,
	hash,
	parent_hash,
	created,
	spent,
	removed,
	time
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare journal batch: %w", err)
	}

	for _, entry := range entries {
		if err = batch.Append(
			string(entry.Network),
			string(entry.Action),
			entry.Height,
			entry.Hash.String(),
			entry.ParentHash.String(),
			entry.Created,
			entry.Spent,
			entry.Removed,
			entry.Time,
		); err != nil {
			return fmt.Errorf("append journal entry: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert journal entries: %w", err)
	}
	return nil
}
