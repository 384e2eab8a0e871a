package patient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/messaging"
	"github.com/google/uuid"
)

// MetricsRecorder interface for recording patient business metrics
type MetricsRecorder interface {
	RecordPatientOperation(ctx context.Context, operation string)
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   MetricsRecorder
}

// NewService creates the patient service. publisher may be nil when no
// broker is configured.
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// NewServiceWithMetrics creates the patient service with business metrics
// recording. metrics may be nil.
func NewServiceWithMetrics(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics MetricsRecorder) *Service {
	s := NewService(repo, publisher)
	s.metrics = metrics
	return s
}

func validSex(sex string) bool {
	return sex == SexMale || sex == SexFemale || sex == SexOther
}

func validStatus(status string) bool {
	return status == StatusActive || status == StatusRecovered || status == StatusChronic
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// RegisterPatient assigns an id and the next medical record number, stamps
// the registration date and stores the patient with status Active.
func (s *Service) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*Patient, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.NationalID == "" {
		return nil, ErrMissingNationalID
	}
	if len(req.NationalID) != 16 || !digits(req.NationalID) {
		return nil, ErrInvalidNationalID
	}
	if req.BirthDate == "" {
		return nil, ErrMissingBirthDate
	}
	if !validSex(req.Sex) {
		return nil, ErrInvalidSex
	}

	recordNumber, err := s.repo.NextRecordNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := Patient{
		ID:                  uuid.New().String(),
		MedicalRecordNumber: recordNumber,
		NationalID:          req.NationalID,
		Name:                req.Name,
		BirthDate:           req.BirthDate,
		Sex:                 req.Sex,
		Address:             req.Address,
		Province:            req.Province,
		PostalCode:          req.PostalCode,
		Phone:               req.Phone,
		Email:               req.Email,
		BloodType:           req.BloodType,
		RegistrationDate:    now.Format("2006-01-02"),
		Status:              StatusActive,
	}
	if err := s.repo.SavePatient(ctx, p); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPatientOperation(ctx, "register")
	}

	if s.publisher != nil {
		event := messaging.PatientRegisteredEvent{
			BaseEvent: messaging.BaseEvent{
				EventType:   messaging.EventPatientRegistered,
				EventID:     uuid.New().String(),
				Timestamp:   now.UTC(),
				ServiceName: "clinic-service",
			},
			Data: messaging.PatientRegisteredData{
				PatientID:           p.ID,
				MedicalRecordNumber: p.MedicalRecordNumber,
				Name:                p.Name,
				RegisteredAt:        now.UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventPatientRegistered, event); err != nil {
			log.Printf("Warning: failed to publish patient.registered: %v", err)
		}
	}

	return &p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	p, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NationalID != nil {
		if len(*req.NationalID) != 16 || !digits(*req.NationalID) {
			return nil, ErrInvalidNationalID
		}
		p.NationalID = *req.NationalID
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrMissingName
		}
		p.Name = *req.Name
	}
	if req.BirthDate != nil {
		p.BirthDate = *req.BirthDate
	}
	if req.Sex != nil {
		if !validSex(*req.Sex) {
			return nil, ErrInvalidSex
		}
		p.Sex = *req.Sex
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Province != nil {
		p.Province = *req.Province
	}
	if req.PostalCode != nil {
		p.PostalCode = *req.PostalCode
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.BloodType != nil {
		p.BloodType = *req.BloodType
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		p.Status = *req.Status
	}

	if err := s.repo.SavePatient(ctx, *p); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPatientOperation(ctx, "update")
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error) {
	return s.repo.GetByRecordNumber(ctx, recordNumber)
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.repo.ListPatients(ctx)
}

// SearchPatients tries the exact record-number fast path first, then falls
// back to the substring search.
func (s *Service) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	if exact, err := s.repo.GetByRecordNumber(ctx, query); err == nil {
		return []Patient{*exact}, nil
	}
	return s.repo.SearchPatients(ctx, query)
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if err := s.repo.DeletePatient(ctx, id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordPatientOperation(ctx, "delete")
	}

	if s.publisher != nil {
		now := time.Now().UTC()
		event := messaging.PatientDeletedEvent{
			BaseEvent: messaging.BaseEvent{
				EventType:   messaging.EventPatientDeleted,
				EventID:     uuid.New().String(),
				Timestamp:   now,
				ServiceName: "clinic-service",
			},
			Data: messaging.PatientDeletedData{
				PatientID: id,
				DeletedAt: now,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventPatientDeleted, event); err != nil {
			log.Printf("Warning: failed to publish patient.deleted: %v", err)
		}
	}
	return nil
}

// Snapshot returns the denormalized name and record number copied into
// schedules, queue entries and examinations at creation time.
func (s *Service) Snapshot(ctx context.Context, id string) (name, recordNumber string, err error) {
	p, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return "", "", err
	}
	return p.Name, p.MedicalRecordNumber, nil
}

// CountByStatus derives the patient counters for the dashboard.
func (s *Service) CountByStatus(ctx context.Context) (total, active, recovered, chronic int, err error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to count patients: %w", err)
	}
	for _, p := range patients {
		switch p.Status {
		case StatusActive:
			active++
		case StatusRecovered:
			recovered++
		case StatusChronic:
			chronic++
		}
	}
	return len(patients), active, recovered, chronic, nil
}
