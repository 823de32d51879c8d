package cache

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrQuotaExceeded is returned by a store that has no room for a write.
	ErrQuotaExceeded = errors.New("cache: quota exceeded")
)

// Store is raw key/value storage. Absent keys return ok=false without error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads key and unmarshals it into a T.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	b, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, b)
}
