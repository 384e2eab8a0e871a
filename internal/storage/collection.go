package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is any entity addressable by an opaque string identifier.
type Record interface {
	RecordID() string
}

// Collection is a typed view over one storage key holding a JSON array of
// records in insertion order. Every write deserializes the whole collection,
// mutates it, and reserializes it, so a write is atomic at collection
// granularity; there is no isolation between concurrent writers sharing one
// storage area.
type Collection[T Record] struct {
	kv  KV
	key string
}

// NewCollection binds a collection type to its storage key.
func NewCollection[T Record](kv KV, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// All returns every record in insertion order. An absent key is an empty
// collection, not an error.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	payload, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.key, err)
	}
	return records, nil
}

// Get returns the record with the given id, or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	records, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

// Save upserts a record: a record with a known id replaces the existing entry
// in place, keeping its position; an unknown id appends.
func (c *Collection[T]) Save(ctx context.Context, rec T) error {
	records, err := c.All(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range records {
		if records[i].RecordID() == rec.RecordID() {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return c.Replace(ctx, records)
}

// Delete removes the record with the given id and reports whether it existed.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	records, err := c.All(ctx)
	if err != nil {
		return false, err
	}
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.RecordID() == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return false, nil
	}
	if err := c.Replace(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Find returns the first record matching pred, or ErrNotFound.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, error) {
	var zero T
	records, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if pred(rec) {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

// Filter returns all records matching pred, in collection order.
func (c *Collection[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	var matched []T
	for _, rec := range records {
		if pred(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Count returns the number of records in the collection.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	records, err := c.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Replace rewrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.key, err)
	}
	return c.kv.Set(ctx, c.key, payload)
}
