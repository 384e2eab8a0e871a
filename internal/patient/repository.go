package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
)

const recordNumberSequence = "rekam_medis"

type Repository struct {
	records *storage.Collection[Patient]
	seq     *storage.Sequence
}

func NewRepository(kv storage.KV) *Repository {
	return &Repository{
		records: storage.NewCollection[Patient](kv, storage.KeyPatients),
		seq:     storage.NewSequence(kv),
	}
}

func (r *Repository) ListPatients(ctx context.Context) ([]Patient, error) {
	patients, err := r.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	p, err := r.records.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

// GetByRecordNumber is the exact-match fast path used before falling back to
// fuzzy search.
func (r *Repository) GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error) {
	p, err := r.records.Find(ctx, func(p Patient) bool {
		return p.MedicalRecordNumber == recordNumber
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up record number: %w", err)
	}
	return &p, nil
}

// SearchPatients matches the query case-insensitively against name and
// medical record number, and literally against phone and national id.
// Results come back in collection order.
func (r *Repository) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	lower := strings.ToLower(query)
	matched, err := r.records.Filter(ctx, func(p Patient) bool {
		return strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.MedicalRecordNumber), lower) ||
			strings.Contains(p.Phone, query) ||
			strings.Contains(p.NationalID, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return matched, nil
}

func (r *Repository) SavePatient(ctx context.Context, p Patient) error {
	if err := r.records.Save(ctx, p); err != nil {
		return fmt.Errorf("failed to save patient: %w", err)
	}
	return nil
}

// DeletePatient removes the patient only. Medical records, examinations and
// queue entries referencing the id are left in place.
func (r *Repository) DeletePatient(ctx context.Context, id string) error {
	existed, err := r.records.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if !existed {
		return ErrPatientNotFound
	}
	return nil
}

// NextRecordNumber allocates the next medical record number from the
// persisted sequence and formats it as NN-NN-NN.
func (r *Repository) NextRecordNumber(ctx context.Context) (string, error) {
	n, err := r.seq.Next(ctx, recordNumberSequence)
	if err != nil {
		return "", fmt.Errorf("failed to allocate record number: %w", err)
	}
	return FormatRecordNumber(n), nil
}

// FormatRecordNumber renders a sequence value as six zero-padded digits in
// two-digit groups, e.g. 1 -> "00-00-01".
func FormatRecordNumber(n int64) string {
	padded := fmt.Sprintf("%06d", n)
	return fmt.Sprintf("%s-%s-%s", padded[:2], padded[2:4], padded[4:6])
}
