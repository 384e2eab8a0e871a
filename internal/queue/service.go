package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/messaging"
	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingPatientID   = errors.New("patient id is required")
	ErrInvalidServiceType = errors.New("invalid service type")
	ErrInvalidStatus      = errors.New("invalid queue status")
	ErrEntryNotFound      = errors.New("queue entry not found")
)

// PatientLookup resolves the name and record number snapshots stored
// on a queue entry at registration time.
type PatientLookup interface {
	Snapshot(ctx context.Context, patientID string) (name, recordNumber string, err error)
}

// MetricsRecorder interface for recording queue business metrics
type MetricsRecorder interface {
	RecordQueueOperation(ctx context.Context, operation string)
}

type Service struct {
	entries   *storage.Collection[QueueEntry]
	sequence  *storage.Sequence
	patients  PatientLookup
	publisher messaging.PublisherInterface
	metrics   MetricsRecorder
	now       func() time.Time
}

func NewService(kv storage.KV, patients PatientLookup, publisher messaging.PublisherInterface) *Service {
	return &Service{
		entries:   storage.NewCollection[QueueEntry](kv, storage.KeyQueue),
		sequence:  storage.NewSequence(kv),
		patients:  patients,
		publisher: publisher,
		now:       time.Now,
	}
}

// NewServiceWithMetrics creates the queue service with business metrics
// recording. metrics may be nil.
func NewServiceWithMetrics(kv storage.KV, patients PatientLookup, publisher messaging.PublisherInterface, metrics MetricsRecorder) *Service {
	s := NewService(kv, patients, publisher)
	s.metrics = metrics
	return s
}

func validServiceType(t string) bool {
	switch t {
	case ServiceConsultation, ServiceFamilyPlan, ServiceImmunization,
		ServicePregnancy, ServicePostpartum, ServiceOther:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusInService, StatusDone:
		return true
	}
	return false
}

// queueCounterName scopes the counter to a calendar day so numbering
// restarts at 1 every morning while spent numbers stay spent.
func queueCounterName(day time.Time) string {
	return "antrian:" + day.Format("2006-01-02")
}

// Register adds a patient to today's queue, allocating the next number
// for the day.
func (s *Service) Register(ctx context.Context, req RegisterQueueRequest) (*QueueEntry, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if !validServiceType(req.ServiceType) {
		return nil, ErrInvalidServiceType
	}

	name, recordNumber, err := s.patients.Snapshot(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	now := s.now()
	number, err := s.sequence.Next(ctx, queueCounterName(now))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate queue number: %w", err)
	}

	entry := QueueEntry{
		ID:                  uuid.New().String(),
		PatientID:           req.PatientID,
		PatientName:         name,
		MedicalRecordNumber: recordNumber,
		QueueNumber:         int(number),
		ServiceType:         req.ServiceType,
		Complaint:           req.Complaint,
		Status:              StatusWaiting,
		RegisteredAt:        now,
	}
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save queue entry: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordQueueOperation(ctx, "register")
	}

	if s.publisher != nil {
		event := messaging.QueueRegisteredEvent{
			BaseEvent: messaging.BaseEvent{
				EventType:   messaging.EventQueueRegistered,
				EventID:     uuid.New().String(),
				Timestamp:   now.UTC(),
				ServiceName: "clinic-service",
			},
			Data: messaging.QueueRegisteredData{
				QueueEntryID:        entry.ID,
				PatientName:         entry.PatientName,
				MedicalRecordNumber: entry.MedicalRecordNumber,
				QueueNumber:         entry.QueueNumber,
				ServiceType:         entry.ServiceType,
				RegisteredAt:        now.UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventQueueRegistered, event); err != nil {
			log.Printf("Warning: failed to publish queue.registered: %v", err)
		}
	}

	return &entry, nil
}

// Today returns the queue entries registered on the current local date.
func (s *Service) Today(ctx context.Context) ([]QueueEntry, error) {
	day := s.now().Format("2006-01-02")
	entries, err := s.entries.Filter(ctx, func(e QueueEntry) bool {
		return e.RegisteredAt.Format("2006-01-02") == day
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return entries, nil
}

// List returns all queue entries regardless of day.
func (s *Service) List(ctx context.Context) ([]QueueEntry, error) {
	entries, err := s.entries.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return entries, nil
}

// UpdateStatus moves an entry through Waiting -> InService -> Done.
// Any direct transition between valid statuses is accepted; the front
// desk sometimes skips straight to Done.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*QueueEntry, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	entry, err := s.entries.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}

	oldStatus := entry.Status
	entry.Status = status
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save queue entry: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordQueueOperation(ctx, "update_status")
	}

	if s.publisher != nil && oldStatus != status {
		now := s.now().UTC()
		event := messaging.QueueStatusChangedEvent{
			BaseEvent: messaging.BaseEvent{
				EventType:   messaging.EventQueueStatusChanged,
				EventID:     uuid.New().String(),
				Timestamp:   now,
				ServiceName: "clinic-service",
			},
			Data: messaging.QueueStatusChangedData{
				QueueEntryID: entry.ID,
				QueueNumber:  entry.QueueNumber,
				OldStatus:    oldStatus,
				NewStatus:    status,
				ChangedAt:    now,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventQueueStatusChanged, event); err != nil {
			log.Printf("Warning: failed to publish queue.status_changed: %v", err)
		}
	}

	return &entry, nil
}

// MarkDone completes the queue entry linked to a finished examination.
// A missing entry is not an error; walk-in examinations have no queue entry.
func (s *Service) MarkDone(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	_, err := s.UpdateStatus(ctx, id, StatusDone)
	if errors.Is(err, ErrEntryNotFound) {
		return nil
	}
	return err
}

// CountTodayByStatus reports today's queue totals for the dashboard.
func (s *Service) CountTodayByStatus(ctx context.Context) (total, waiting, inService, done int, err error) {
	entries, err := s.Today(ctx)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	for _, e := range entries {
		total++
		switch e.Status {
		case StatusWaiting:
			waiting++
		case StatusInService:
			inService++
		case StatusDone:
			done++
		}
	}
	return total, waiting, inService, done, nil
}
