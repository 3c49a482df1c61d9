package ckb

import (
	"context"
	"strconv"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/jellydator/ttlcache/v3"
)

// CachedSource memoizes get_live_cell responses for a short time.
type CachedSource struct {
	source model.LiveCellFetcher
	cache  *ttlcache.Cache[string, *model.LiveCellResult]
}

// NewCachedSource wraps source with a TTL cache bounded to capacity entries.
func NewCachedSource(source model.LiveCellFetcher, ttl time.Duration, capacity uint64) *CachedSource {
	cache := ttlcache.New[string, *model.LiveCellResult](
		ttlcache.WithTTL[string, *model.LiveCellResult](ttl),
		ttlcache.WithCapacity[string, *model.LiveCellResult](capacity),
		ttlcache.WithDisableTouchOnHit[string, *model.LiveCellResult](),
	)
	return &CachedSource{source: source, cache: cache}
}

// Start evicts expired entries until Stop is called.
func (c *CachedSource) Start() {
	c.cache.Start()
}

// Stop ends the eviction loop started by Start.
func (c *CachedSource) Stop() {
	c.cache.Stop()
}

// Len returns the number of cached responses.
func (c *CachedSource) Len() int {
	return c.cache.Len()
}

// GetLiveCell serves cached responses and fills the cache on miss.
func (c *CachedSource) GetLiveCell(ctx context.Context, op model.OutPoint, withData bool) (*model.LiveCellResult, error) {
	key := model.EncodeOutPointKey(op) + "/" + strconv.FormatBool(withData)
	if item := c.cache.Get(key); item != nil {
		return item.Value(), nil
	}
	res, err := c.source.GetLiveCell(ctx, op, withData)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, res, ttlcache.DefaultTTL)
	return res, nil
}
