package leveldb

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/syndtr/goleveldb/leveldb"
)

// Write commits ws as one atomic batch.
func (r *Repository) Write(_ context.Context, ws *model.WriteSet) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("write", err, started)
	}()

	if ws.Empty() {
		return nil
	}

	batch := new(leveldb.Batch)
	for _, c := range ws.Cells() {
		previous, err := getCell(r.db, c.ID)
		if err != nil {
			return err
		}
		unindex(batch, previous)
		raw, err := json.Marshal(c.Fields())
		if err != nil {
			return fmt.Errorf("encode cell %s: %w", c.ID, err)
		}
		batch.Put(cellKey(c.ID), raw)
		index(batch, c)
	}
	for _, id := range ws.DeletedIDs() {
		previous, err := getCell(r.db, id)
		if err != nil {
			return err
		}
		unindex(batch, previous)
		batch.Delete(cellKey(id))
	}
	for key, value := range ws.Scalars() {
		batch.Put([]byte(scalarPrefix+key), []byte(value))
	}
	for _, key := range ws.DeletedScalars() {
		batch.Delete([]byte(scalarPrefix + key))
	}

	if err = r.db.Write(batch, nil); err != nil {
		return fmt.Errorf("commit write set: %w", err)
	}
	return nil
}

func index(batch *leveldb.Batch, c *model.LiveCell) {
	for field, value := range c.EqualityValues() {
		batch.Put(equalityKey(field, value, c.ID), nil)
	}
	for field, value := range c.OrderedValues() {
		batch.Put(orderedKey(field, value, c.ID), nil)
	}
}

func unindex(batch *leveldb.Batch, c *model.LiveCell) {
	if c == nil {
		return
	}
	for field, value := range c.EqualityValues() {
		batch.Delete(equalityKey(field, value, c.ID))
	}
	for field, value := range c.OrderedValues() {
		batch.Delete(orderedKey(field, value, c.ID))
	}
}
