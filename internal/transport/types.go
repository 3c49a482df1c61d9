package transport

import (
	"context"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/service/collector"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Collector interface {
		Collect(ctx context.Context, filter model.Filter, opts collector.Options) (*collector.Iterator, error)
	}
	JournalReader interface {
		LatestJournalEntries(ctx context.Context, network model.Network, limit uint64) ([]model.JournalEntry, error)
	}
)
