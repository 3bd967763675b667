// Package cached wraps record repositories with a read-through cache keyed
// per employee. Every write drops that employee's entries before returning.
package cached

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/metrics"
)

type readThrough struct {
	store  cache.Store
	ttl    time.Duration
	prefix string
}

func (c readThrough) key(employeeID string, parts ...string) string {
	k := c.prefix + ":" + employeeID + ":"
	for _, p := range parts {
		k += p + ":"
	}
	return k
}

// load returns the cached value for key or calls fetch and caches the result.
// Cache failures are logged and never fail the read.
func load[T any](ctx context.Context, c readThrough, key string, fetch func() (T, error)) (T, error) {
	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		slog.Warn("cache get failed", "key", key, "error", err)
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			metrics.ObserveCacheLookup(true)
			return v, nil
		}
	}
	metrics.ObserveCacheLookup(false)

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if raw, err := json.Marshal(v); err == nil {
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			slog.Warn("cache set failed", "key", key, "error", err)
		}
	}
	return v, nil
}

func (c readThrough) invalidate(ctx context.Context, employeeID string) {
	if err := c.store.Invalidate(ctx, c.key(employeeID)); err != nil {
		slog.Error("cache invalidate failed", "prefix", c.key(employeeID), "error", err)
	}
}
