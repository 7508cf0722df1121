package providers

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by CacheProvider.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider is a byte-oriented key/value cache with per-key expiry.
type CacheProvider interface {
	// Get returns ErrCacheMiss (possibly wrapped) for absent keys.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)
}
