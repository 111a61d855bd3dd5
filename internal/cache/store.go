// Package cache keeps serialized catalog reads close to the service. Every
// backend satisfies Store and is injected, so callers never see which one
// is in use.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL bounds how long a cached read may be served.
const DefaultTTL = 2 * time.Minute

// ErrUnavailable marks a failure of the backing cache rather than a miss.
var ErrUnavailable = errors.New("cache unavailable")

// Store is a byte-oriented key/value cache with per-entry expiry.
type Store interface {
	// Get returns the stored payload and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl; a non-positive ttl means the store default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
	// RemoveByPrefix drops every key starting with prefix. An empty prefix flushes the store.
	RemoveByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
