package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultViewTTL = 10 * time.Minute

	invalidatedSuffix = ":invalidated"
)

// ViewCache is a JSON-backed Redis cache for read model projections.
// Entries expire after ttl; a ttl <= 0 falls back to DefaultViewTTL.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get returns (nil, false) on any miss or decode error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("view cache read failed")
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("view cache decode failed")
		return nil, false
	}
	return &v, true
}

// Set stores value under key. Write errors are logged; a cache miss is never fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("view cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("view cache write failed")
	}
}

// SetIfValid stores value like Set, unless key was invalidated within the
// last ttl. Readers use it to write back a view loaded from the database,
// which may predate a concurrent Invalidate.
func (c *ViewCache[T]) SetIfValid(ctx context.Context, key string, value *T) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("view cache encode failed")
		return
	}

	marker := key + invalidatedSuffix
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, marker).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, marker)
	if err != nil && !errors.Is(err, goredis.TxFailedErr) {
		log.Warn().Err(err).Str("key", key).Msg("view cache write failed")
	}
}

// Invalidate drops key and blocks SetIfValid write-backs for ttl.
func (c *ViewCache[T]) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, key+invalidatedSuffix, 1, c.ttl)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("view cache invalidate failed")
	}
}
