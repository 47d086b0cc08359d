package redispkg

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ViewCache is a JSON-backed redis cache bound to a value type T.
//
// A zero ttl stores keys without expiration.
type ViewCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewViewCache creates a ViewCache storing its keys under prefix.
func NewViewCache[T any](client *redis.Client, prefix string, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (c *ViewCache[T]) key(k string) string {
	return c.prefix + ":" + k
}

// Get returns the cached value; any miss or decoding error is reported as (nil, false).
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		}

		return nil, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return nil, false
	}

	return &v, true
}

// Set stores value under key. Write failures are logged only.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	l := zerolog.Ctx(ctx)

	data, err := json.Marshal(value)
	if err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
