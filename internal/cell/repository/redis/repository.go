// Package redis stores live cells in Redis, using sets and sorted sets as secondary indexes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	goredis "github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records store operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Repository is a cell store backed by Redis.
type Repository struct {
	client  goredis.UniversalClient
	prefix  string
	metrics Metrics
}

// NewRepository wraps an existing client. Every key is namespaced under prefix.
func NewRepository(client goredis.UniversalClient, prefix string, metrics Metrics) *Repository {
	if prefix == "" {
		prefix = "ckb"
	}
	return &Repository{client: client, prefix: prefix, metrics: metrics}
}

// Open connects to the Redis server at url and verifies it answers.
func Open(ctx context.Context, url, prefix string, metrics Metrics) (*Repository, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	options, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRepository(client, prefix, metrics), nil
}

// Close closes the underlying client.
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) scalarKey(key string) string {
	return r.prefix + ":s:" + key
}

func (r *Repository) cellKey(id string) string {
	return r.prefix + ":c:" + id
}

func (r *Repository) allKey() string {
	return r.prefix + ":all"
}

func (r *Repository) equalityKey(field, value string) string {
	return r.prefix + ":i:" + field + ":" + value
}

func (r *Repository) orderedKey(field string) string {
	return r.prefix + ":n:" + field
}
