package leveldb

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// FindCellIDs returns the sorted IDs of records matching filter.
func (r *Repository) FindCellIDs(_ context.Context, filter model.Filter) (ids []string, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("find_cell_ids", err, started)
	}()

	snap, err := r.db.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer snap.Release()

	return findCellIDs(snap, filter)
}

// FindCells returns the records matching filter, ordered by ID.
func (r *Repository) FindCells(_ context.Context, filter model.Filter) (cells []*model.LiveCell, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("find_cells", err, started)
	}()

	snap, err := r.db.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer snap.Release()

	ids, err := findCellIDs(snap, filter)
	if err != nil {
		return nil, err
	}
	loaded, err := getCells(snap, ids)
	if err != nil {
		return nil, err
	}
	cells = make([]*model.LiveCell, 0, len(loaded))
	for _, cell := range loaded {
		if cell != nil {
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

func findCellIDs(db reader, filter model.Filter) ([]string, error) {
	var candidates map[string]struct{}
	narrow := func(ids map[string]struct{}) {
		if candidates == nil {
			candidates = ids
			return
		}
		for id := range candidates {
			if _, ok := ids[id]; !ok {
				delete(candidates, id)
			}
		}
	}

	equalities := filter.Equalities()
	for _, field := range slices.Sorted(maps.Keys(equalities)) {
		ids, err := scanEquality(db, field, equalities[field])
		if err != nil {
			return nil, err
		}
		narrow(ids)
	}

	ranges := filter.Ranges()
	for _, field := range slices.Sorted(maps.Keys(ranges)) {
		ids, err := scanOrdered(db, field, ranges[field])
		if err != nil {
			return nil, err
		}
		narrow(ids)
	}

	if candidates == nil {
		all, err := scanAll(db)
		if err != nil {
			return nil, err
		}
		candidates = all
	}
	return slices.Sorted(maps.Keys(candidates)), nil
}

func scanEquality(db reader, field, value string) (map[string]struct{}, error) {
	prefix := equalityPrefix + field + "/" + value + "/"
	return scanIDs(db, util.BytesPrefix([]byte(prefix)), func(key string) (string, bool) {
		return strings.TrimPrefix(key, prefix), true
	})
}

func scanOrdered(db reader, field string, rng model.Range) (map[string]struct{}, error) {
	prefix := orderedFieldPrefix(field)
	slice := util.BytesPrefix([]byte(prefix))
	if rng.Min != nil {
		slice.Start = []byte(fmt.Sprintf("%s%016x/", prefix, *rng.Min))
	}
	if rng.Max != nil && *rng.Max < math.MaxUint64 {
		slice.Limit = []byte(fmt.Sprintf("%s%016x/", prefix, *rng.Max+1))
	}
	return scanIDs(db, slice, func(key string) (string, bool) {
		rest := strings.TrimPrefix(key, prefix)
		if len(rest) < 17 {
			return "", false
		}
		value, err := strconv.ParseUint(rest[:16], 16, 64)
		if err != nil || !rng.Contains(value) {
			return "", false
		}
		return rest[17:], true
	})
}

func scanAll(db reader) (map[string]struct{}, error) {
	return scanIDs(db, util.BytesPrefix([]byte(cellPrefix)), func(key string) (string, bool) {
		return strings.TrimPrefix(key, cellPrefix), true
	})
}

func scanIDs(db reader, slice *util.Range, idOf func(key string) (string, bool)) (map[string]struct{}, error) {
	iter := db.NewIterator(slice, nil)
	defer iter.Release()

	ids := make(map[string]struct{})
	for iter.Next() {
		if id, ok := idOf(string(iter.Key())); ok {
			ids[id] = struct{}{}
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate index: %w", err)
	}
	return ids, nil
}
