package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainSource interface {
		GetBlockByNumber(ctx context.Context, n uint64) (*model.Block, error)
	}
	Store interface {
		GetScalar(ctx context.Context, key string) (string, bool, error)
		FindCellIDs(ctx context.Context, filter model.Filter) ([]string, error)
		FindCells(ctx context.Context, filter model.Filter) ([]*model.LiveCell, error)
		LoadCells(ctx context.Context, ids []string) ([]*model.LiveCell, error)
		Write(ctx context.Context, ws *model.WriteSet) error
	}
	Metrics interface {
		ObserveFetch(err error, started time.Time)
		ObserveApply(err error, height uint64, cells int, started time.Time)
		ObserveRollback(err error, height uint64)
		ObservePurge(err error, removed int)
	}
	// Journal receives a record of every block the indexer applies, reverts or purges.
	Journal interface {
		Record(entry model.JournalEntry)
	}
)
