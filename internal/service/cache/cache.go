// Package cache holds the best-effort snapshot cache that sits in front of
// backend fetches. A lookup is always optional: any failure reads as a miss.
package cache

import (
	"context"
	"encoding/json"
	"time"

	domrepo "FinDash/internal/domain/repository"
	"FinDash/internal/service/metrics"
	applogger "FinDash/pkg/logger"
)

const (
	// KeyPrefix namespaces cache entries in the shared store.
	KeyPrefix = "bf_cache:"
	// DefaultTTL is the freshness window of a cached payload.
	DefaultTTL = 120 * time.Second
)

type entry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// SnapshotCache is a time-boxed cache of raw JSON payloads keyed by request URL.
// Expired or malformed entries are evicted lazily on lookup.
type SnapshotCache struct {
	store domrepo.KVStore
	ttl   time.Duration
	now   func() time.Time
	l     *applogger.Logger
}

// Option configures SnapshotCache.
type Option func(*SnapshotCache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *SnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *SnapshotCache) {
		c.now = now
	}
}

func NewSnapshotCache(store domrepo.KVStore, opts ...Option) *SnapshotCache {
	metrics.Register()
	c := &SnapshotCache{store: store, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogger injects a structured logger.
func (c *SnapshotCache) SetLogger(l *applogger.Logger) { c.l = l }

// Key returns the storage key for a request URL.
func Key(url string) string { return KeyPrefix + url }

// Get returns the cached payload for url if it is still fresh.
func (c *SnapshotCache) Get(ctx context.Context, url string) (json.RawMessage, bool) {
	key := Key(url)
	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		if c.l != nil {
			c.l.Warn("snapshot_cache get_error", applogger.String("key", key), applogger.Error(err))
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(b, &e); err != nil || len(e.Data) == 0 || string(e.Data) == "null" {
		if c.l != nil {
			c.l.Warn("snapshot_cache corrupt_entry", applogger.String("key", key))
		}
		c.evict(ctx, key)
		metrics.CacheLookups.WithLabelValues("corrupt").Inc()
		return nil, false
	}

	age := c.now().UnixMilli() - e.Timestamp
	if age > c.ttl.Milliseconds() {
		if c.l != nil {
			c.l.Debug("snapshot_cache expired", applogger.String("key", key), applogger.Int64("age_ms", age))
		}
		c.evict(ctx, key)
		metrics.CacheLookups.WithLabelValues("expired").Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return e.Data, true
}

// Put stores payload for url. Failures (including quota) are logged and dropped.
func (c *SnapshotCache) Put(ctx context.Context, url string, payload json.RawMessage) {
	key := Key(url)
	b, err := json.Marshal(entry{Timestamp: c.now().UnixMilli(), Data: payload})
	if err == nil {
		err = c.store.Set(ctx, key, b)
	}
	if err != nil {
		metrics.CacheWriteErrors.Inc()
		if c.l != nil {
			c.l.Warn("snapshot_cache put_error", applogger.String("key", key), applogger.Error(err))
		}
	}
}

func (c *SnapshotCache) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil && c.l != nil {
		c.l.Warn("snapshot_cache evict_error", applogger.String("key", key), applogger.Error(err))
	}
}
