package schedule

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

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingPatientID) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrMissingTime) ||
		errors.Is(err, ErrMissingDoctor) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidStatus)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	sched, err := h.service.CreateSchedule(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"message":  "Schedule created successfully",
		"schedule": sched,
	})
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	var (
		schedules []ConsultationSchedule
		err       error
	)
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		schedules, err = h.service.ListByPatient(r.Context(), patientID)
	} else {
		schedules, err = h.service.ListSchedules(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if schedules == nil {
		schedules = []ConsultationSchedule{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"schedules": schedules,
		"total":     len(schedules),
	})
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	sched, err := h.service.UpdateSchedule(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Schedule not found")
			return
		}
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"message":  "Schedule updated successfully",
		"schedule": sched,
	})
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteSchedule(r.Context(), id); err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Schedule not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Schedule deleted successfully",
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
