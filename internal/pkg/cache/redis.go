package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on top of a go-redis client.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Redis-backed cache. prefix is prepended to every key.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// GetJSON loads the value stored under key into dest.
func (r *Redis) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.WarnContext(ctx, "cache value corrupt, dropping", "key", key, "err", err)
		r.Delete(ctx, key)
		return false
	}

	return true
}

// SetJSON stores value under key with the given TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "cache marshal failed", "key", key, "err", err)
		return
	}

	if err := r.client.Set(ctx, r.prefix+key, raw, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "cache set failed", "key", key, "err", err)
	}
}

// Delete removes keys.
func (r *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}

	if err := r.client.Del(ctx, full...).Err(); err != nil {
		slog.WarnContext(ctx, "cache delete failed", "keys", keys, "err", err)
	}
}
