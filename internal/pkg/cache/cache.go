package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented TTL cache. A miss is (nil, false, nil); an error
// means the cache itself failed and callers should fall through to the source.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Invalidate removes every key starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
	Close() error
}
