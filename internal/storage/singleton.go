package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Singleton is a typed view over one storage key holding a single JSON
// object (the settings and session keys).
type Singleton[T any] struct {
	kv  KV
	key string
}

// NewSingleton binds a singleton type to its storage key.
func NewSingleton[T any](kv KV, key string) *Singleton[T] {
	return &Singleton[T]{kv: kv, key: key}
}

// Get returns the stored value. The boolean reports whether the key exists.
func (s *Singleton[T]) Get(ctx context.Context) (T, bool, error) {
	var zero T
	payload, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return zero, false, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return value, true, nil
}

// Set stores the value, replacing any previous one.
func (s *Singleton[T]) Set(ctx context.Context, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.kv.Set(ctx, s.key, payload)
}

// Clear removes the stored value.
func (s *Singleton[T]) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
