package journal

import (
	"context"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertJournalEntries(ctx context.Context, entries []model.JournalEntry) error
	}
	Metrics interface {
		ObserveDropped(n int)
	}
)
