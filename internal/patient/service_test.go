package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
)

// mockRepository implements RepositoryInterface for testing
type mockRepository struct {
	listFunc           func(ctx context.Context) ([]Patient, error)
	getFunc            func(ctx context.Context, id string) (*Patient, error)
	getByNumberFunc    func(ctx context.Context, recordNumber string) (*Patient, error)
	searchFunc         func(ctx context.Context, query string) ([]Patient, error)
	saveFunc           func(ctx context.Context, p Patient) error
	deleteFunc         func(ctx context.Context, id string) error
	nextRecordNumberFn func(ctx context.Context) (string, error)
}

func (m *mockRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error) {
	if m.getByNumberFunc != nil {
		return m.getByNumberFunc(ctx, recordNumber)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) SavePatient(ctx context.Context, p Patient) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) DeletePatient(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) NextRecordNumber(ctx context.Context) (string, error) {
	if m.nextRecordNumberFn != nil {
		return m.nextRecordNumberFn(ctx)
	}
	return "", errors.New("not implemented")
}

func validRegisterRequest() RegisterPatientRequest {
	return RegisterPatientRequest{
		NationalID: "3519012345670001",
		Name:       "Tn. Agus Susono",
		BirthDate:  "1985-03-15",
		Sex:        SexMale,
		Address:    "Jl. Merdeka No. 123",
		Province:   "Jawa Timur",
		PostalCode: "63354",
		Phone:      "081234567890",
	}
}

// TestRegisterPatient_Success tests a complete registration
func TestRegisterPatient_Success(t *testing.T) {
	var saved *Patient
	mockRepo := &mockRepository{
		nextRecordNumberFn: func(ctx context.Context) (string, error) { return "00-00-01", nil },
		saveFunc: func(ctx context.Context, p Patient) error {
			saved = &p
			return nil
		},
	}
	service := NewService(mockRepo, nil)

	p, err := service.RegisterPatient(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p.ID == "" {
		t.Error("Expected generated id")
	}
	if p.MedicalRecordNumber != "00-00-01" {
		t.Errorf("Expected record number '00-00-01', got '%s'", p.MedicalRecordNumber)
	}
	if p.Status != StatusActive {
		t.Errorf("Expected status '%s', got '%s'", StatusActive, p.Status)
	}
	if p.RegistrationDate == "" {
		t.Error("Expected registration date to be stamped")
	}
	if saved == nil || saved.ID != p.ID {
		t.Error("Expected patient to be persisted")
	}
}

// TestRegisterPatient_Validation tests the required-field and format checks
func TestRegisterPatient_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	cases := []struct {
		name    string
		mutate  func(*RegisterPatientRequest)
		wantErr error
	}{
		{"missing name", func(r *RegisterPatientRequest) { r.Name = "" }, ErrMissingName},
		{"missing national id", func(r *RegisterPatientRequest) { r.NationalID = "" }, ErrMissingNationalID},
		{"short national id", func(r *RegisterPatientRequest) { r.NationalID = "12345" }, ErrInvalidNationalID},
		{"non-digit national id", func(r *RegisterPatientRequest) { r.NationalID = "35190123456700ab" }, ErrInvalidNationalID},
		{"missing birth date", func(r *RegisterPatientRequest) { r.BirthDate = "" }, ErrMissingBirthDate},
		{"invalid sex", func(r *RegisterPatientRequest) { r.Sex = "X" }, ErrInvalidSex},
	}
	for _, tc := range cases {
		req := validRegisterRequest()
		tc.mutate(&req)
		if _, err := service.RegisterPatient(context.Background(), req); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

// TestSearchPatients_ExactRecordNumberFastPath tests that an exact record
// number match short-circuits the fuzzy search
func TestSearchPatients_ExactRecordNumberFastPath(t *testing.T) {
	agus := Patient{ID: "1", Name: "Agus Susono", MedicalRecordNumber: "00-00-01"}
	mockRepo := &mockRepository{
		getByNumberFunc: func(ctx context.Context, recordNumber string) (*Patient, error) {
			if recordNumber == "00-00-01" {
				return &agus, nil
			}
			return nil, ErrPatientNotFound
		},
		searchFunc: func(ctx context.Context, query string) ([]Patient, error) {
			t.Error("Expected fuzzy search not to run for an exact match")
			return nil, nil
		},
	}
	service := NewService(mockRepo, nil)

	results, err := service.SearchPatients(context.Background(), "00-00-01")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 1 || results[0].ID != "1" {
		t.Errorf("Expected exactly the matching patient, got %v", results)
	}
}

// TestCountByStatus tests the dashboard counters
func TestCountByStatus(t *testing.T) {
	mockRepo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Patient, error) {
			return []Patient{
				{ID: "1", Status: StatusActive},
				{ID: "2", Status: StatusActive},
				{ID: "3", Status: StatusRecovered},
				{ID: "4", Status: StatusChronic},
			}, nil
		},
	}
	service := NewService(mockRepo, nil)

	total, active, recovered, chronic, err := service.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if total != 4 {
		t.Errorf("Expected total 4, got %d", total)
	}
	if active != 2 || recovered != 1 || chronic != 1 {
		t.Errorf("Expected 2/1/1, got %d/%d/%d", active, recovered, chronic)
	}
	if active+recovered+chronic != total {
		t.Error("Expected status counters to sum to total")
	}
}

// TestUpdatePatient_NotFound tests updating an unknown patient
func TestUpdatePatient_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		getFunc: func(ctx context.Context, id string) (*Patient, error) { return nil, ErrPatientNotFound },
	}
	service := NewService(mockRepo, nil)

	name := "New Name"
	_, err := service.UpdatePatient(context.Background(), "missing", UpdatePatientRequest{Name: &name})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("Expected ErrPatientNotFound, got: %v", err)
	}
}

// TestRepositorySearch_Integration exercises the real repository over an
// in-memory storage area with the documented match rules
func TestRepositorySearch_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory())

	siti := Patient{ID: "2", Name: "Siti Rahayu", MedicalRecordNumber: "00-00-02", Phone: "082345678901", NationalID: "3519012345670002"}
	agus := Patient{ID: "1", Name: "Agus Susono", MedicalRecordNumber: "00-00-01", Phone: "081234567890", NationalID: "3519012345670001"}
	for _, p := range []Patient{siti, agus} {
		if err := repo.SavePatient(ctx, p); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	results, err := repo.SearchPatients(ctx, "siti")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 1 || results[0].ID != "2" {
		t.Errorf("Expected exactly Siti for query 'siti', got %v", results)
	}

	results, err = repo.SearchPatients(ctx, "00-00-01")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 1 || results[0].ID != "1" {
		t.Errorf("Expected exactly Agus for query '00-00-01', got %v", results)
	}

	results, err = repo.SearchPatients(ctx, "082345678901")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(results) != 1 || results[0].ID != "2" {
		t.Errorf("Expected exactly Siti for phone query, got %v", results)
	}
}

// TestNextRecordNumber_Sequence tests the formatted persisted sequence
func TestNextRecordNumber_Sequence(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory())

	first, err := repo.NextRecordNumber(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if first != "00-00-01" {
		t.Errorf("Expected '00-00-01' on a fresh area, got '%s'", first)
	}

	second, err := repo.NextRecordNumber(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if second != "00-00-02" {
		t.Errorf("Expected '00-00-02', got '%s'", second)
	}
}

// TestNextRecordNumber_NoReuseAfterDelete tests that deleting a patient does
// not free an already-assigned number
func TestNextRecordNumber_NoReuseAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemory())

	n1, _ := repo.NextRecordNumber(ctx)
	if err := repo.SavePatient(ctx, Patient{ID: "1", MedicalRecordNumber: n1}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	n2, _ := repo.NextRecordNumber(ctx)
	if err := repo.SavePatient(ctx, Patient{ID: "2", MedicalRecordNumber: n2}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if err := repo.DeletePatient(ctx, "1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	n3, err := repo.NextRecordNumber(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if n3 == n1 || n3 == n2 {
		t.Errorf("Expected a fresh number, got reused '%s'", n3)
	}
	if n3 != "00-00-03" {
		t.Errorf("Expected '00-00-03', got '%s'", n3)
	}
}

// TestFormatRecordNumber tests the NN-NN-NN rendering
func TestFormatRecordNumber(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "00-00-01"},
		{2, "00-00-02"},
		{99, "00-00-99"},
		{100, "00-01-00"},
		{123456, "12-34-56"},
	}
	for _, tc := range cases {
		if got := FormatRecordNumber(tc.n); got != tc.want {
			t.Errorf("FormatRecordNumber(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

type mockMetrics struct {
	operations []string
}

func (m *mockMetrics) RecordPatientOperation(ctx context.Context, operation string) {
	m.operations = append(m.operations, operation)
}

// TestPatientWrites_RecordMetrics tests that register, update and delete
// each increment the patient operation counter
func TestPatientWrites_RecordMetrics(t *testing.T) {
	stored := map[string]Patient{}
	mockRepo := &mockRepository{
		nextRecordNumberFn: func(ctx context.Context) (string, error) { return "00-00-01", nil },
		saveFunc: func(ctx context.Context, p Patient) error {
			stored[p.ID] = p
			return nil
		},
		getFunc: func(ctx context.Context, id string) (*Patient, error) {
			p, ok := stored[id]
			if !ok {
				return nil, storage.ErrNotFound
			}
			return &p, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			delete(stored, id)
			return nil
		},
	}
	metrics := &mockMetrics{}
	service := NewServiceWithMetrics(mockRepo, nil, metrics)
	ctx := context.Background()

	p, err := service.RegisterPatient(ctx, validRegisterRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	newPhone := "085200000000"
	if _, err := service.UpdatePatient(ctx, p.ID, UpdatePatientRequest{Phone: &newPhone}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := service.DeletePatient(ctx, p.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"register", "update", "delete"}
	if len(metrics.operations) != len(want) {
		t.Fatalf("Expected %d recorded operations, got %v", len(want), metrics.operations)
	}
	for i, op := range want {
		if metrics.operations[i] != op {
			t.Errorf("Expected operation %d to be '%s', got '%s'", i, op, metrics.operations[i])
		}
	}
}

// TestPatientService_NilMetrics tests that a nil recorder is tolerated
func TestPatientService_NilMetrics(t *testing.T) {
	mockRepo := &mockRepository{
		nextRecordNumberFn: func(ctx context.Context) (string, error) { return "00-00-01", nil },
		saveFunc:           func(ctx context.Context, p Patient) error { return nil },
	}
	service := NewServiceWithMetrics(mockRepo, nil, nil)

	if _, err := service.RegisterPatient(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}
