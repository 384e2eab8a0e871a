package examination

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrMissingDoctor    = errors.New("doctor is required")
	ErrMissingDiagnosis = errors.New("diagnosis is required")
	ErrRecordNotFound   = errors.New("examination record not found")
)

// PatientLookup resolves the name and record number snapshots stored on
// the examination record.
type PatientLookup interface {
	Snapshot(ctx context.Context, patientID string) (name, recordNumber string, err error)
}

// QueueCompleter marks the queue entry linked to a finished examination
// as done. A missing or empty entry id must be a no-op.
type QueueCompleter interface {
	MarkDone(ctx context.Context, queueEntryID string) error
}

// MetricsRecorder interface for recording examination business metrics
type MetricsRecorder interface {
	RecordExamination(ctx context.Context, serviceType string)
}

type Service struct {
	records  *storage.Collection[ExaminationRecord]
	patients PatientLookup
	queue    QueueCompleter
	metrics  MetricsRecorder
	now      func() time.Time
}

func NewService(kv storage.KV, patients PatientLookup, queue QueueCompleter) *Service {
	return &Service{
		records:  storage.NewCollection[ExaminationRecord](kv, storage.KeyExaminations),
		patients: patients,
		queue:    queue,
		now:      time.Now,
	}
}

// NewServiceWithMetrics creates the examination service with business
// metrics recording. metrics may be nil.
func NewServiceWithMetrics(kv storage.KV, patients PatientLookup, queue QueueCompleter, metrics MetricsRecorder) *Service {
	s := NewService(kv, patients, queue)
	s.metrics = metrics
	return s
}

// Complete persists a finished examination. The record is stored verified;
// the doctor signs off by submitting, there is no draft state. The linked
// queue entry, if any, is moved to done.
func (s *Service) Complete(ctx context.Context, req CompleteExaminationRequest) (*ExaminationRecord, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Doctor == "" {
		return nil, ErrMissingDoctor
	}
	if req.Diagnosis == "" {
		return nil, ErrMissingDiagnosis
	}

	name, recordNumber, err := s.patients.Snapshot(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	now := s.now()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	rec := ExaminationRecord{
		ID:                  uuid.New().String(),
		PatientID:           req.PatientID,
		QueueEntryID:        req.QueueEntryID,
		PatientName:         name,
		MedicalRecordNumber: recordNumber,
		Date:                date,
		Doctor:              req.Doctor,
		ServiceType:         req.ServiceType,
		Complaint:           req.Complaint,
		Allergies:           req.Allergies,
		PriorConditions:     req.PriorConditions,
		Vitals:              req.Vitals,
		Diagnosis:           req.Diagnosis,
		Action:              req.Action,
		Medications:         req.Medications,
		CarePlan:            req.CarePlan,
		FollowUp:            req.FollowUp,
		Verified:            true,
		VerifiedAt:          now.UTC(),
	}
	if err := s.records.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save examination record: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordExamination(ctx, rec.ServiceType)
	}

	if s.queue != nil {
		if err := s.queue.MarkDone(ctx, req.QueueEntryID); err != nil {
			log.Printf("Warning: failed to complete queue entry %s: %v", req.QueueEntryID, err)
		}
	}

	return &rec, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (*ExaminationRecord, error) {
	rec, err := s.records.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get examination record: %w", err)
	}
	return &rec, nil
}

func (s *Service) ListRecords(ctx context.Context) ([]ExaminationRecord, error) {
	records, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list examination records: %w", err)
	}
	return records, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]ExaminationRecord, error) {
	records, err := s.records.Filter(ctx, func(r ExaminationRecord) bool {
		return r.PatientID == patientID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list examination records: %w", err)
	}
	return records, nil
}
