package redis

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	goredis "github.com/redis/go-redis/v9"
)

// FindCellIDs returns the sorted IDs of records matching filter.
func (r *Repository) FindCellIDs(ctx context.Context, filter model.Filter) (ids []string, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("find_cell_ids", err, started)
	}()

	return r.findCellIDs(ctx, filter)
}

// FindCells returns the records matching filter, ordered by ID.
func (r *Repository) FindCells(ctx context.Context, filter model.Filter) (cells []*model.LiveCell, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("find_cells", err, started)
	}()

	ids, err := r.findCellIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	loaded, err := r.loadCells(ctx, ids)
	if err != nil {
		return nil, err
	}
	cells = make([]*model.LiveCell, 0, len(loaded))
	for _, cell := range loaded {
		// Records can change between the index scan and the load.
		if cell != nil && filter.Match(cell) {
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

func (r *Repository) findCellIDs(ctx context.Context, filter model.Filter) ([]string, error) {
	var (
		ids []string
		err error
	)
	equalities := filter.Equalities()
	if len(equalities) > 0 {
		keys := make([]string, 0, len(equalities))
		for _, field := range slices.Sorted(maps.Keys(equalities)) {
			keys = append(keys, r.equalityKey(field, equalities[field]))
		}
		ids, err = r.client.SInter(ctx, keys...).Result()
	} else {
		ids, err = r.client.SMembers(ctx, r.allKey()).Result()
	}
	if err != nil {
		return nil, fmt.Errorf("scan equality indexes: %w", err)
	}

	ranges := filter.Ranges()
	for _, field := range slices.Sorted(maps.Keys(ranges)) {
		if len(ids) == 0 {
			break
		}
		rng := ranges[field]
		inRange, err := r.client.ZRangeByScore(ctx, r.orderedKey(field), &goredis.ZRangeBy{
			Min: scoreBound(rng.Min, "-inf"),
			Max: scoreBound(rng.Max, "+inf"),
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("scan %s index: %w", field, err)
		}
		ids = intersect(ids, inRange)
	}

	slices.Sort(ids)
	return ids, nil
}

func scoreBound(v *uint64, open string) string {
	if v == nil {
		return open
	}
	return strconv.FormatUint(*v, 10)
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := a[:0]
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
