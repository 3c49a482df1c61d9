package leveldb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// reader is satisfied by both *leveldb.DB and *leveldb.Snapshot.
type reader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

// FindCell returns the record with id, or nil when there is none.
func (r *Repository) FindCell(_ context.Context, id string) (cell *model.LiveCell, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("find_cell", err, started)
	}()

	return getCell(r.db, id)
}

// LoadCells returns the records for ids in order. Missing records are nil.
func (r *Repository) LoadCells(_ context.Context, ids []string) (cells []*model.LiveCell, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("load_cells", err, started)
	}()

	snap, err := r.db.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer snap.Release()

	return getCells(snap, ids)
}

func getCells(db reader, ids []string) ([]*model.LiveCell, error) {
	cells := make([]*model.LiveCell, len(ids))
	for i, id := range ids {
		cell, err := getCell(db, id)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}
	return cells, nil
}

func getCell(db reader, id string) (*model.LiveCell, error) {
	raw, err := db.Get(cellKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cell %s: %w", id, err)
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode cell %s: %w", id, err)
	}
	cell, err := model.LiveCellFromFields(fields)
	if err != nil {
		return nil, fmt.Errorf("decode cell %s: %w", id, err)
	}
	return cell, nil
}
