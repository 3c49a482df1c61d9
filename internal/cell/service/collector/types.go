package collector

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		FindCellIDs(ctx context.Context, filter model.Filter) ([]string, error)
		LoadCells(ctx context.Context, ids []string) ([]*model.LiveCell, error)
	}
	Metrics interface {
		ObserveCollect(err error, ids int, started time.Time)
		ObserveSkipped(reason string)
	}
)
