package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Sequence hands out persisted monotonic counters. Counters are kept as a
// name -> last-value map under one storage key, so allocated numbers are never
// reused even when records are later deleted. This replaces deriving sequence
// numbers from current collection size, which could mint duplicates after
// interleaved deletes and inserts.
type Sequence struct {
	kv  KV
	key string
}

// NewSequence returns the counter store for the storage area.
func NewSequence(kv KV) *Sequence {
	return &Sequence{kv: kv, key: KeyCounters}
}

// Next allocates and returns the next value for the named counter,
// starting at 1 for a counter that has never been used.
func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	counters, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	next := counters[name] + 1
	counters[name] = next
	if err := s.store(ctx, counters); err != nil {
		return 0, err
	}
	return next, nil
}

// Current returns the last allocated value for the named counter, zero if
// the counter has never been used.
func (s *Sequence) Current(ctx context.Context, name string) (int64, error) {
	counters, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return counters[name], nil
}

func (s *Sequence) load(ctx context.Context) (map[string]int64, error) {
	payload, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	counters := make(map[string]int64)
	if !ok {
		return counters, nil
	}
	if err := json.Unmarshal(payload, &counters); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return counters, nil
}

func (s *Sequence) store(ctx context.Context, counters map[string]int64) error {
	payload, err := json.Marshal(counters)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.kv.Set(ctx, s.key, payload)
}
