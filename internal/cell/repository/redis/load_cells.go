package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	goredis "github.com/redis/go-redis/v9"
)

// FindCell returns the record with id, or nil when there is none.
func (r *Repository) FindCell(ctx context.Context, id string) (cell *model.LiveCell, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("find_cell", err, started)
	}()

	cells, err := r.loadCells(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return cells[0], nil
}

// LoadCells returns the records for ids in order. Missing records are nil.
func (r *Repository) LoadCells(ctx context.Context, ids []string) (cells []*model.LiveCell, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("load_cells", err, started)
	}()

	return r.loadCells(ctx, ids)
}

func (r *Repository) loadCells(ctx context.Context, ids []string) ([]*model.LiveCell, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]*goredis.MapStringStringCmd, len(ids))
	_, err := r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.cellKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %d cells: %w", len(ids), err)
	}

	cells := make([]*model.LiveCell, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		cell, err := model.LiveCellFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("decode cell %s: %w", ids[i], err)
		}
		cells[i] = cell
	}
	return cells, nil
}
