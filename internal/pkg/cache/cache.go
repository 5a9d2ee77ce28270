// Package cache provides a small JSON cache layer over Redis.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values with a TTL.
//
// Implementations should degrade gracefully: a failing cache must surface as
// a miss, never as an application error, since every cached read has an
// authoritative source behind it.
type Cache interface {
	// GetJSON loads the value stored under key into dest. It returns false on
	// a miss or when the backing store is unavailable.
	GetJSON(ctx context.Context, key string, dest any) bool

	// SetJSON stores value under key with the given TTL, best effort.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete removes keys, best effort.
	Delete(ctx context.Context, keys ...string)
}
