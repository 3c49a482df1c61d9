package ckb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls int
	err   error
}

func (f *countingFetcher) GetLiveCell(context.Context, model.OutPoint, bool) (*model.LiveCellResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.LiveCellResult{Status: model.LiveCellStatusLive}, nil
}

func TestCachedSource_GetLiveCell(t *testing.T) {
	fetcher := &countingFetcher{}
	cached := NewCachedSource(fetcher, time.Minute, 10)
	ctx := context.Background()
	op := model.OutPoint{Index: 1}

	for i := 0; i < 3; i++ {
		res, err := cached.GetLiveCell(ctx, op, true)
		require.NoError(t, err)
		require.Equal(t, model.LiveCellStatusLive, res.Status)
	}
	require.Equal(t, 1, fetcher.calls)

	_, err := cached.GetLiveCell(ctx, op, false)
	require.NoError(t, err)
	require.Equal(t, 2, fetcher.calls)
	require.Equal(t, 2, cached.Len())
}

func TestCachedSource_DoesNotCacheErrors(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("down")}
	cached := NewCachedSource(fetcher, time.Minute, 10)

	for i := 0; i < 2; i++ {
		_, err := cached.GetLiveCell(context.Background(), model.OutPoint{}, true)
		require.Error(t, err)
	}
	require.Equal(t, 2, fetcher.calls)
	require.Zero(t, cached.Len())
}
