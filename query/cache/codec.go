package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pgq-dev/pgq/runtime/types"
)

// SetValue stores an arbitrary value msgpack-encoded, with an optional TTL
// (zero means no expiry).
func (c *Client) SetValue(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return types.Generic("encode cache value", err)
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return types.Generic("redis set", err)
	}
	return nil
}

// GetValue decodes the msgpack value stored at key into dest. A missing key
// returns ok = false and leaves dest untouched.
func (c *Client) GetValue(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, types.Generic("redis get", err)
	}
	if err := msgpack.Unmarshal(data, dest); err != nil {
		return false, types.Generic("decode cache value", err)
	}
	return true, nil
}
