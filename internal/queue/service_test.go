package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
)

type mockPatientLookup struct {
	SnapshotFunc func(ctx context.Context, patientID string) (string, string, error)
}

func (m *mockPatientLookup) Snapshot(ctx context.Context, patientID string) (string, string, error) {
	return m.SnapshotFunc(ctx, patientID)
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.published = append(m.published, routingKey)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func defaultLookup() *mockPatientLookup {
	return &mockPatientLookup{
		SnapshotFunc: func(ctx context.Context, patientID string) (string, string, error) {
			return "Tn. Agus Susono", "00-00-01", nil
		},
	}
}

func TestRegister_AssignsSequentialNumbers(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	for want := 1; want <= 3; want++ {
		entry, err := svc.Register(context.Background(), RegisterQueueRequest{
			PatientID:   "p-1",
			ServiceType: ServiceConsultation,
		})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if entry.QueueNumber != want {
			t.Errorf("expected queue number %d, got %d", want, entry.QueueNumber)
		}
		if entry.Status != StatusWaiting {
			t.Errorf("expected status %q, got %q", StatusWaiting, entry.Status)
		}
	}
}

func TestRegister_SnapshotsPatientFields(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	entry, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-1",
		ServiceType: ServiceImmunization,
		Complaint:   "Imunisasi campak",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if entry.PatientName != "Tn. Agus Susono" {
		t.Errorf("expected patient name snapshot, got %q", entry.PatientName)
	}
	if entry.MedicalRecordNumber != "00-00-01" {
		t.Errorf("expected record number snapshot, got %q", entry.MedicalRecordNumber)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	if _, err := svc.Register(context.Background(), RegisterQueueRequest{ServiceType: ServiceOther}); !errors.Is(err, ErrMissingPatientID) {
		t.Errorf("expected ErrMissingPatientID, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterQueueRequest{PatientID: "p-1", ServiceType: "Bedah"}); !errors.Is(err, ErrInvalidServiceType) {
		t.Errorf("expected ErrInvalidServiceType, got %v", err)
	}
}

func TestRegister_NumberingRestartsNextDay(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	day1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return day1 }

	for i := 0; i < 2; i++ {
		if _, err := svc.Register(context.Background(), RegisterQueueRequest{
			PatientID:   "p-1",
			ServiceType: ServiceConsultation,
		}); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}

	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	entry, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-1",
		ServiceType: ServiceConsultation,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if entry.QueueNumber != 1 {
		t.Errorf("expected numbering to restart at 1, got %d", entry.QueueNumber)
	}
}

func TestToday_FiltersByDate(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	yesterday := time.Now().AddDate(0, 0, -1)
	svc.now = func() time.Time { return yesterday }
	if _, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-1",
		ServiceType: ServiceConsultation,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-2",
		ServiceType: ServiceFamilyPlan,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	entries, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry today, got %d", len(entries))
	}
	if entries[0].PatientID != "p-2" {
		t.Errorf("expected today's entry for p-2, got %q", entries[0].PatientID)
	}
}

func TestUpdateStatus(t *testing.T) {
	pub := &mockPublisher{}
	svc := NewService(storage.NewMemory(), defaultLookup(), pub)

	entry, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-1",
		ServiceType: ServiceConsultation,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), entry.ID, StatusInService)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != StatusInService {
		t.Errorf("expected status %q, got %q", StatusInService, updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), entry.ID, "Paused"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "missing", StatusDone); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}

	want := []string{"queue.registered", "queue.status_changed"}
	if len(pub.published) != len(want) {
		t.Fatalf("expected %d published events, got %d: %v", len(want), len(pub.published), pub.published)
	}
	for i, key := range want {
		if pub.published[i] != key {
			t.Errorf("event %d: expected %q, got %q", i, key, pub.published[i])
		}
	}
}

func TestMarkDone(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	entry, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-1",
		ServiceType: ServiceConsultation,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.MarkDone(context.Background(), entry.ID); err != nil {
		t.Fatalf("MarkDone returned error: %v", err)
	}
	got, err := svc.UpdateStatus(context.Background(), entry.ID, StatusDone)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if got.Status != StatusDone {
		t.Errorf("expected status %q, got %q", StatusDone, got.Status)
	}

	// walk-in examinations carry no queue entry id
	if err := svc.MarkDone(context.Background(), ""); err != nil {
		t.Errorf("MarkDone with empty id should be a no-op, got %v", err)
	}
	if err := svc.MarkDone(context.Background(), "missing"); err != nil {
		t.Errorf("MarkDone with unknown id should be a no-op, got %v", err)
	}
}

func TestCountTodayByStatus(t *testing.T) {
	svc := NewService(storage.NewMemory(), defaultLookup(), nil)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		entry, err := svc.Register(context.Background(), RegisterQueueRequest{
			PatientID:   "p-1",
			ServiceType: ServiceConsultation,
		})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		ids = append(ids, entry.ID)
	}
	if _, err := svc.UpdateStatus(context.Background(), ids[0], StatusInService); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), ids[1], StatusDone); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	total, waiting, inService, done, err := svc.CountTodayByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountTodayByStatus returned error: %v", err)
	}
	if total != 3 || waiting != 1 || inService != 1 || done != 1 {
		t.Errorf("expected 3/1/1/1, got %d/%d/%d/%d", total, waiting, inService, done)
	}
}

type mockQueueMetrics struct {
	operations []string
}

func (m *mockQueueMetrics) RecordQueueOperation(ctx context.Context, operation string) {
	m.operations = append(m.operations, operation)
}

func TestQueueWrites_RecordMetrics(t *testing.T) {
	metrics := &mockQueueMetrics{}
	svc := NewServiceWithMetrics(storage.NewMemory(), defaultLookup(), nil, metrics)

	entry, err := svc.Register(context.Background(), RegisterQueueRequest{
		PatientID:   "p-1",
		ServiceType: ServiceConsultation,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), entry.ID, StatusInService); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	want := []string{"register", "update_status"}
	if len(metrics.operations) != len(want) {
		t.Fatalf("expected %d recorded operations, got %v", len(want), metrics.operations)
	}
	for i, op := range want {
		if metrics.operations[i] != op {
			t.Errorf("expected operation %d to be %q, got %q", i, op, metrics.operations[i])
		}
	}
}
