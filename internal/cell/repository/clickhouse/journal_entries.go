package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

// LatestJournalEntries returns the newest journal rows of a network, newest first.
func (r *Repository) LatestJournalEntries(ctx context.Context, network model.Network, limit uint64) (entries []model.JournalEntry, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_journal_entries", err, start)
	}()

	const query = `
SELECT action, height, hash, parent_hash, created, spent, removed, time
FROM ckb_block_journal
WHERE network = ?
ORDER BY time DESC, height DESC
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, string(network), limit)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			action     string
			hash       string
			parentHash string
			entry      = model.JournalEntry{Network: network}
		)
		if err = rows.Scan(&action, &entry.Height, &hash, &parentHash, &entry.Created, &entry.Spent, &entry.Removed, &entry.Time); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Action = model.JournalAction(action)
		if entry.Hash, err = model.ParseHash(hash); err != nil {
			return nil, fmt.Errorf("parse journal hash: %w", err)
		}
		if entry.ParentHash, err = model.ParseHash(parentHash); err != nil {
			return nil, fmt.Errorf("parse journal parent hash: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}
