package examination

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CompleteExamination(w http.ResponseWriter, r *http.Request) {
	var req CompleteExaminationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	rec, err := h.service.Complete(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrMissingPatientID) || errors.Is(err, ErrMissingDoctor) || errors.Is(err, ErrMissingDiagnosis) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "completion_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":     true,
		"message":     "Examination completed successfully",
		"examination": rec,
	})
}

func (h *Handler) ListExaminations(w http.ResponseWriter, r *http.Request) {
	var (
		records []ExaminationRecord
		err     error
	)
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		records, err = h.service.ListByPatient(r.Context(), patientID)
	} else {
		records, err = h.service.ListRecords(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if records == nil {
		records = []ExaminationRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"examinations": records,
		"total":        len(records),
	})
}

func (h *Handler) GetExamination(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.service.GetRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Examination record not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "get_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":     true,
		"examination": rec,
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
