package storage

import (
	"context"
	"errors"
)

// Storage keys. Each key holds one independently serialized JSON blob:
// an array for collections, a single object for the settings and session keys
// and the counters map.
const (
	KeyPatients       = "sim_kia_pasien"
	KeyMedicalRecords = "sim_kia_rekam_medis"
	KeySchedules      = "sim_kia_jadwal"
	KeyExaminations   = "sim_kia_pemeriksaan_dokter"
	KeyQueue          = "sim_kia_antrian"
	KeySettings       = "sim_kia_settings"
	KeyUsers          = "sim_kia_users"
	KeySession        = "sim_kia_session"
	KeyCounters       = "sim_kia_counters"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// KV is the durable key-value area backing all collections. Implementations
// persist opaque payloads under string keys; they do not interpret the payload.
type KV interface {
	// Get returns the payload stored under key. The boolean reports whether
	// the key exists; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores payload under key, replacing any previous value.
	Set(ctx context.Context, key string, payload []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
