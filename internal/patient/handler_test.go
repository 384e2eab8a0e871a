package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	registerFunc    func(ctx context.Context, req RegisterPatientRequest) (*Patient, error)
	updateFunc      func(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error)
	getFunc         func(ctx context.Context, id string) (*Patient, error)
	getByNumberFunc func(ctx context.Context, recordNumber string) (*Patient, error)
	listFunc        func(ctx context.Context) ([]Patient, error)
	searchFunc      func(ctx context.Context, query string) ([]Patient, error)
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockService) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*Patient, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetPatient(ctx context.Context, id string) (*Patient, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error) {
	if m.getByNumberFunc != nil {
		return m.getByNumberFunc(ctx, recordNumber)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListPatients(ctx context.Context) ([]Patient, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) DeletePatient(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

// TestHandlerRegisterPatient_Success tests a successful registration request
func TestHandlerRegisterPatient_Success(t *testing.T) {
	mockSvc := &mockService{
		registerFunc: func(ctx context.Context, req RegisterPatientRequest) (*Patient, error) {
			return &Patient{
				ID:                  "patient-123",
				MedicalRecordNumber: "00-00-01",
				Name:                req.Name,
				Status:              StatusActive,
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(validRegisterRequest())
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.RegisterPatient(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp PatientSuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got: %v", err)
	}
	if !resp.Success || resp.Patient == nil || resp.Patient.MedicalRecordNumber != "00-00-01" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

// TestHandlerRegisterPatient_ValidationError tests a 400 on bad input
func TestHandlerRegisterPatient_ValidationError(t *testing.T) {
	mockSvc := &mockService{
		registerFunc: func(ctx context.Context, req RegisterPatientRequest) (*Patient, error) {
			return nil, ErrInvalidNationalID
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(RegisterPatientRequest{Name: "x", NationalID: "short"})
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.RegisterPatient(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandlerRegisterPatient_BadJSON tests a 400 on malformed payload
func TestHandlerRegisterPatient_BadJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	handler.RegisterPatient(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandlerGetPatient_NotFound tests a 404 for an unknown id
func TestHandlerGetPatient_NotFound(t *testing.T) {
	mockSvc := &mockService{
		getFunc: func(ctx context.Context, id string) (*Patient, error) {
			return nil, ErrPatientNotFound
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()
	handler.GetPatient(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

// TestHandlerListPatients_Pagination tests page slicing and metadata
func TestHandlerListPatients_Pagination(t *testing.T) {
	var patients []Patient
	for i := 0; i < 25; i++ {
		patients = append(patients, Patient{ID: string(rune('a' + i))})
	}
	mockSvc := &mockService{
		listFunc: func(ctx context.Context) ([]Patient, error) { return patients, nil },
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients?page=2&limit=20", nil)
	rec := httptest.NewRecorder()
	handler.ListPatients(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp PatientListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got: %v", err)
	}
	if len(resp.Patients) != 5 {
		t.Errorf("Expected 5 patients on page 2, got %d", len(resp.Patients))
	}
	if resp.Total != 25 {
		t.Errorf("Expected total 25, got %d", resp.Total)
	}
	if resp.Meta == nil || resp.Meta.TotalPages != 2 || resp.Meta.HasNext {
		t.Errorf("Unexpected meta: %+v", resp.Meta)
	}
}

// TestHandlerSearchPatients_MissingQuery tests a 400 without the q parameter
func TestHandlerSearchPatients_MissingQuery(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/patients/search", nil)
	rec := httptest.NewRecorder()
	handler.SearchPatients(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandlerDeletePatient_Success tests deletion of an existing patient
func TestHandlerDeletePatient_Success(t *testing.T) {
	deleted := ""
	mockSvc := &mockService{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/patients/patient-1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "patient-1"})
	rec := httptest.NewRecorder()
	handler.DeletePatient(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if deleted != "patient-1" {
		t.Errorf("Expected delete of 'patient-1', got '%s'", deleted)
	}
}
