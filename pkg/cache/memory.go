package cache

import (
	"context"
	"sync"
)

// MemoryStore implements Store in process memory with an optional byte quota.
// Entries never expire; expiry is the caller's concern.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	used     int
	maxBytes int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	cfg := &MemoryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &MemoryStore{
		data:     make(map[string][]byte),
		maxBytes: cfg.MaxBytes,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(value)
	if old, ok := m.data[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}
	if m.maxBytes > 0 && used > m.maxBytes {
		return ErrQuotaExceeded
	}

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	m.used = used
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Used returns the bytes counted against the quota.
func (m *MemoryStore) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}

// Close is a no-op kept for symmetry with RedisStore.
func (m *MemoryStore) Close() error { return nil }
