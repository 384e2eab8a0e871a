package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingTime      = errors.New("time is required")
	ErrMissingDoctor    = errors.New("doctor is required")
	ErrInvalidType      = errors.New("invalid consultation type")
	ErrInvalidStatus    = errors.New("invalid schedule status")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// PatientLookup resolves the denormalized name snapshot at creation time.
type PatientLookup interface {
	Snapshot(ctx context.Context, patientID string) (name, recordNumber string, err error)
}

type Service struct {
	schedules *storage.Collection[ConsultationSchedule]
	patients  PatientLookup
}

func NewService(kv storage.KV, patients PatientLookup) *Service {
	return &Service{
		schedules: storage.NewCollection[ConsultationSchedule](kv, storage.KeySchedules),
		patients:  patients,
	}
}

func validType(t string) bool {
	switch t {
	case TypeGeneral, TypeFollowUp, TypeConsultation, TypeEmergency, TypeSpecialist:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

func (s *Service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ConsultationSchedule, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Date == "" {
		return nil, ErrMissingDate
	}
	if req.Time == "" {
		return nil, ErrMissingTime
	}
	if req.Doctor == "" {
		return nil, ErrMissingDoctor
	}
	if !validType(req.ConsultationType) {
		return nil, ErrInvalidType
	}

	name, _, err := s.patients.Snapshot(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	sched := ConsultationSchedule{
		ID:               uuid.New().String(),
		PatientID:        req.PatientID,
		PatientName:      name,
		Date:             req.Date,
		Time:             req.Time,
		Doctor:           req.Doctor,
		ConsultationType: req.ConsultationType,
		Status:           StatusScheduled,
		Notes:            req.Notes,
	}
	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	return &sched, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (*ConsultationSchedule, error) {
	sched, err := s.schedules.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if req.Date != nil {
		sched.Date = *req.Date
	}
	if req.Time != nil {
		sched.Time = *req.Time
	}
	if req.Doctor != nil {
		sched.Doctor = *req.Doctor
	}
	if req.ConsultationType != nil {
		if !validType(*req.ConsultationType) {
			return nil, ErrInvalidType
		}
		sched.ConsultationType = *req.ConsultationType
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		sched.Status = *req.Status
	}
	if req.Notes != nil {
		sched.Notes = *req.Notes
	}

	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	return &sched, nil
}

func (s *Service) ListSchedules(ctx context.Context) ([]ConsultationSchedule, error) {
	schedules, err := s.schedules.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]ConsultationSchedule, error) {
	schedules, err := s.schedules.Filter(ctx, func(sc ConsultationSchedule) bool {
		return sc.PatientID == patientID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	existed, err := s.schedules.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if !existed {
		return ErrScheduleNotFound
	}
	return nil
}
