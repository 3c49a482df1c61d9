// Package leveldb stores live cells in an embedded LevelDB database with prefix-keyed indexes.
//
// Key layout:
//
//	s/<key>                      scalar value
//	c/<id>                       record fields
//	i/<field>/<value>/<id>       equality index entry
//	n/<field>/<16 hex>/<id>      ordered index entry
package leveldb

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records store operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	defaultOptions = opt.Options{
		Compression:        opt.SnappyCompression,
		BlockCacheCapacity: 64 * opt.MiB,
		WriteBuffer:        32 * opt.MiB,
	}
)

const (
	scalarPrefix   = "s/"
	cellPrefix     = "c/"
	equalityPrefix = "i/"
	orderedPrefix  = "n/"
)

// Repository is a cell store backed by LevelDB.
type Repository struct {
	db      *leveldb.DB
	metrics Metrics
}

// Open opens or creates the database at path.
func Open(path string, metrics Metrics) (*Repository, error) {
	if path == "" {
		return nil, errors.New("leveldb path is required")
	}
	db, err := leveldb.OpenFile(path, &defaultOptions)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &Repository{db: db, metrics: metrics}, nil
}

// OpenMemory opens a database kept entirely in memory.
func OpenMemory(metrics Metrics) (*Repository, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory leveldb: %w", err)
	}
	return &Repository{db: db, metrics: metrics}, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func cellKey(id string) []byte {
	return []byte(cellPrefix + id)
}

func equalityKey(field, value, id string) []byte {
	return []byte(equalityPrefix + field + "/" + value + "/" + id)
}

func orderedFieldPrefix(field string) string {
	return orderedPrefix + field + "/"
}

func orderedKey(field string, value uint64, id string) []byte {
	return []byte(fmt.Sprintf("%s%016x/%s", orderedFieldPrefix(field), value, id))
}
