// Package cache stores generated responses keyed by the exact prompt text.
package cache

import (
	"context"
	"time"
)

// Store is a time-bounded key/value store. Get reports a miss with ok == false
// and a nil error; errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
