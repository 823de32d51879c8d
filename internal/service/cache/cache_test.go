package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcache "FinDash/pkg/cache"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock() *clock { return &clock{t: time.UnixMilli(1_700_000_000_000)} }

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingStore) Set(context.Context, string, []byte) error { return f.err }
func (f failingStore) Delete(context.Context, string) error { return f.err }

const url = "/api/market?period=3mo"

func TestSnapshotCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	store := pkgcache.NewMemoryStore()
	c := NewSnapshotCache(store, WithClock(clk.now))

	payload := json.RawMessage(`{"AAPL":{"price":150}}`)
	c.Put(ctx, url, payload)

	got, ok := c.Get(ctx, url)
	require.True(t, ok)
	assert.JSONEq(t, string(payload), string(got))

	raw, ok, err := store.Get(ctx, "bf_cache:"+url)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"timestamp":1700000000000,"data":{"AAPL":{"price":150}}}`, string(raw))
}

func TestSnapshotCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	store := pkgcache.NewMemoryStore()
	c := NewSnapshotCache(store, WithClock(clk.now))

	c.Put(ctx, url, json.RawMessage(`{}`))

	clk.advance(DefaultTTL)
	_, ok := c.Get(ctx, url)
	assert.True(t, ok, "entry exactly at TTL is still usable")

	clk.advance(time.Millisecond)
	_, ok = c.Get(ctx, url)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "expired entry is evicted on lookup")
}

func TestSnapshotCacheKeysDoNotCollide(t *testing.T) {
	ctx := context.Background()
	c := NewSnapshotCache(pkgcache.NewMemoryStore())

	c.Put(ctx, "/api/market?period=5d", json.RawMessage(`{"a":1}`))
	c.Put(ctx, "/api/market?period=1mo", json.RawMessage(`{"b":2}`))

	got, ok := c.Get(ctx, "/api/market?period=5d")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestSnapshotCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := pkgcache.NewMemoryStore()
	c := NewSnapshotCache(store)

	for _, raw := range []string{`{not json`, `{"timestamp":1}`, `{"timestamp":1,"data":null}`} {
		require.NoError(t, store.Set(ctx, Key(url), []byte(raw)))
		_, ok := c.Get(ctx, url)
		assert.False(t, ok, raw)
		assert.Equal(t, 0, store.Len(), raw)
	}
}

func TestSnapshotCacheSwallowsStoreFailures(t *testing.T) {
	ctx := context.Background()
	c := NewSnapshotCache(failingStore{err: errors.New("boom")})

	c.Put(ctx, url, json.RawMessage(`{}`))
	_, ok := c.Get(ctx, url)
	assert.False(t, ok)
}

func TestSnapshotCacheQuotaIsBestEffort(t *testing.T) {
	ctx := context.Background()
	store := pkgcache.NewMemoryStore(pkgcache.WithMemoryMaxBytes(16))
	c := NewSnapshotCache(store)

	c.Put(ctx, url, json.RawMessage(`{"AAPL":{"price":150}}`))
	_, ok := c.Get(ctx, url)
	assert.False(t, ok)
}
