package medicalrecord

import (
	"context"
	"errors"
	"testing"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
)

// TestCreateRecord_Success tests creating and reading back a history entry
func TestCreateRecord_Success(t *testing.T) {
	ctx := context.Background()
	service := NewService(storage.NewMemory())

	rec, err := service.CreateRecord(ctx, CreateMedicalRecordRequest{
		PatientID:   "patient-1",
		Complaint:   "Demam dan batuk",
		Diagnosis:   "ISPA",
		Action:      "Pemberian obat",
		Medications: []string{"Paracetamol 500mg 3x1"},
		Doctor:      "dr. Sad Omega Kencanawaty",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.ID == "" {
		t.Error("Expected generated id")
	}
	if rec.Date == "" {
		t.Error("Expected date defaulted to today")
	}

	got, err := service.GetRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Diagnosis != "ISPA" {
		t.Errorf("Expected diagnosis 'ISPA', got '%s'", got.Diagnosis)
	}
}

// TestCreateRecord_Validation tests required fields
func TestCreateRecord_Validation(t *testing.T) {
	ctx := context.Background()
	service := NewService(storage.NewMemory())

	_, err := service.CreateRecord(ctx, CreateMedicalRecordRequest{Diagnosis: "x", Doctor: "y"})
	if !errors.Is(err, ErrMissingPatientID) {
		t.Errorf("Expected ErrMissingPatientID, got: %v", err)
	}
	_, err = service.CreateRecord(ctx, CreateMedicalRecordRequest{PatientID: "p", Doctor: "y"})
	if !errors.Is(err, ErrMissingDiagnosis) {
		t.Errorf("Expected ErrMissingDiagnosis, got: %v", err)
	}
	_, err = service.CreateRecord(ctx, CreateMedicalRecordRequest{PatientID: "p", Diagnosis: "x"})
	if !errors.Is(err, ErrMissingDoctor) {
		t.Errorf("Expected ErrMissingDoctor, got: %v", err)
	}
}

// TestListByPatient tests filtering history by patient id
func TestListByPatient(t *testing.T) {
	ctx := context.Background()
	service := NewService(storage.NewMemory())

	for _, patientID := range []string{"p1", "p2", "p1"} {
		if _, err := service.CreateRecord(ctx, CreateMedicalRecordRequest{
			PatientID: patientID,
			Diagnosis: "d",
			Doctor:    "dr",
		}); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	records, err := service.ListByPatient(ctx, "p1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records for p1, got %d", len(records))
	}
	for _, rec := range records {
		if rec.PatientID != "p1" {
			t.Errorf("Expected only p1 records, got %s", rec.PatientID)
		}
	}
}
