package interfaces

import (
	"context"
	"time"
)

// Cache is a keyed store of T values with per-key expiry. The Redis registry keeps one entry per registered
// instance in it.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . Cache
type Cache[T any] interface {
	// WriteValue stores item under key for ttl; ttl <= 0 stores without expiry.
	// Returns an internal_server_error MyError when marshalling or the storage write fails.
	WriteValue(ctx context.Context, key string, item T, ttl time.Duration) error

	// ListAllValues returns every value currently stored. An empty cache yields an empty slice and no error;
	// entries that vanish or fail to decode between listing and reading are skipped.
	ListAllValues(ctx context.Context) ([]T, error)

	// DeleteValue removes key. Deleting a missing key succeeds.
	DeleteValue(ctx context.Context, key string) error
}
