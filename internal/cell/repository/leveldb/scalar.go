package leveldb

import (
	"context"
	"errors"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

// GetScalar returns the value stored under key and whether it exists.
func (r *Repository) GetScalar(_ context.Context, key string) (value string, ok bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_scalar", err, started)
	}()

	raw, err := r.db.Get([]byte(scalarPrefix+key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

// SetScalar stores value under key.
func (r *Repository) SetScalar(_ context.Context, key, value string) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("set_scalar", err, started)
	}()

	return r.db.Put([]byte(scalarPrefix+key), []byte(value), nil)
}

// DelScalar removes key.
func (r *Repository) DelScalar(_ context.Context, key string) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("del_scalar", err, started)
	}()

	return r.db.Delete([]byte(scalarPrefix+key), nil)
}
