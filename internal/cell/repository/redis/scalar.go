package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// GetScalar returns the value stored under key and whether it exists.
func (r *Repository) GetScalar(ctx context.Context, key string) (value string, ok bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_scalar", err, started)
	}()

	value, err = r.client.Get(ctx, r.scalarKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetScalar stores value under key.
func (r *Repository) SetScalar(ctx context.Context, key, value string) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("set_scalar", err, started)
	}()

	return r.client.Set(ctx, r.scalarKey(key), value, 0).Err()
}

// DelScalar removes key.
func (r *Repository) DelScalar(ctx context.Context, key string) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("del_scalar", err, started)
	}()

	return r.client.Del(ctx, r.scalarKey(key)).Err()
}
