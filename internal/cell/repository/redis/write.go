package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	goredis "github.com/redis/go-redis/v9"
)

// Write commits ws in a single MULTI/EXEC transaction.
// Previous versions of touched records are read first so stale index entries can be removed.
func (r *Repository) Write(ctx context.Context, ws *model.WriteSet) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("write", err, started)
	}()

	if ws.Empty() {
		return nil
	}

	cells := ws.Cells()
	deleted := ws.DeletedIDs()
	touched := make([]string, 0, len(cells)+len(deleted))
	for _, c := range cells {
		touched = append(touched, c.ID)
	}
	touched = append(touched, deleted...)

	previous, err := r.loadCells(ctx, touched)
	if err != nil {
		return fmt.Errorf("load previous records: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, c := range cells {
			r.unindex(ctx, pipe, previous[i])
			key := r.cellKey(c.ID)
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, flatten(c.Fields())...)
			r.index(ctx, pipe, c)
		}
		for i, id := range deleted {
			r.unindex(ctx, pipe, previous[len(cells)+i])
			pipe.Del(ctx, r.cellKey(id))
		}
		for key, value := range ws.Scalars() {
			pipe.Set(ctx, r.scalarKey(key), value, 0)
		}
		for _, key := range ws.DeletedScalars() {
			pipe.Del(ctx, r.scalarKey(key))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit write set: %w", err)
	}
	return nil
}

func (r *Repository) index(ctx context.Context, pipe goredis.Pipeliner, c *model.LiveCell) {
	pipe.SAdd(ctx, r.allKey(), c.ID)
	for field, value := range c.EqualityValues() {
		pipe.SAdd(ctx, r.equalityKey(field, value), c.ID)
	}
	for field, value := range c.OrderedValues() {
		pipe.ZAdd(ctx, r.orderedKey(field), goredis.Z{Score: float64(value), Member: c.ID})
	}
}

func (r *Repository) unindex(ctx context.Context, pipe goredis.Pipeliner, c *model.LiveCell) {
	if c == nil {
		return
	}
	pipe.SRem(ctx, r.allKey(), c.ID)
	for field, value := range c.EqualityValues() {
		pipe.SRem(ctx, r.equalityKey(field, value), c.ID)
	}
	for field := range c.OrderedValues() {
		pipe.ZRem(ctx, r.orderedKey(field), c.ID)
	}
}

func flatten(fields map[string]string) []interface{} {
	out := make([]interface{}, 0, 2*len(fields))
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
