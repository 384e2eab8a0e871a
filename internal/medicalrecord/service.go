package medicalrecord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrMissingDiagnosis = errors.New("diagnosis is required")
	ErrMissingDoctor    = errors.New("doctor is required")
	ErrRecordNotFound   = errors.New("medical record not found")
)

type Service struct {
	records *storage.Collection[MedicalRecord]
}

func NewService(kv storage.KV) *Service {
	return &Service{records: storage.NewCollection[MedicalRecord](kv, storage.KeyMedicalRecords)}
}

func (s *Service) CreateRecord(ctx context.Context, req CreateMedicalRecordRequest) (*MedicalRecord, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Diagnosis == "" {
		return nil, ErrMissingDiagnosis
	}
	if req.Doctor == "" {
		return nil, ErrMissingDoctor
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	rec := MedicalRecord{
		ID:          uuid.New().String(),
		PatientID:   req.PatientID,
		Date:        date,
		Complaint:   req.Complaint,
		Diagnosis:   req.Diagnosis,
		Action:      req.Action,
		Medications: req.Medications,
		Doctor:      req.Doctor,
		Notes:       req.Notes,
	}
	if err := s.records.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save medical record: %w", err)
	}
	return &rec, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (*MedicalRecord, error) {
	rec, err := s.records.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &rec, nil
}

func (s *Service) ListRecords(ctx context.Context) ([]MedicalRecord, error) {
	records, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

// ListByPatient returns the treatment history of one patient in insertion
// order. Records of deleted patients remain readable.
func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]MedicalRecord, error) {
	records, err := s.records.Filter(ctx, func(m MedicalRecord) bool {
		return m.PatientID == patientID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
