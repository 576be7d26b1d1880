package cache

import (
	"context"
	"time"
)

// Cache is the port the application caches through. Implementations can be
// swapped (Redis in production, in-memory in tests) without touching callers.
type Cache interface {
	// Get reads the value stored under key and unmarshals it into dest.
	// Returns (false, nil) on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob-style pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
