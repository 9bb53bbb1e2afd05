package myredis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-redis/redis/v8"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 100

// ttlCache stores each value under "<prefix>:<key>" with its own expiry.
type ttlCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

// NewCache returns a Redis backed interfaces.Cache.
func NewCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) interfaces.Cache[T] {
	return &ttlCache[T]{client: client, prefix: prefix, marshal: marshal, unmarshal: unmarshal}
}

// WriteValue overwrites key. A non-positive ttl stores the value without expiry.
func (c *ttlCache[T]) WriteValue(ctx context.Context, key string, item T, ttl time.Duration) error {
	raw, err := c.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis encode error", fmt.Errorf("encode %q: %w", key, err))
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("set %q: %w", c.key(key), err))
	}
	return nil
}

func (c *ttlCache[T]) DeleteValue(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("del %q: %w", c.key(key), err))
	}
	return nil
}

// ListAllValues walks the prefix with SCAN and fetches the values with one MGET. Keys that expire between
// the two steps and values that fail to decode are skipped.
func (c *ttlCache[T]) ListAllValues(ctx context.Context) ([]T, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if strings.HasPrefix(iter.Val(), c.prefix+":") {
			keys = append(keys, iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis scan error", fmt.Errorf("scan %q: %w", c.prefix, err))
	}

	items := make([]T, 0, len(keys))
	if len(keys) == 0 {
		return items, nil
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis read error", fmt.Errorf("mget %d keys: %w", len(keys), err))
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		item, err := c.unmarshal([]byte(s))
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *ttlCache[T]) key(key string) string {
	return c.prefix + ":" + key
}
