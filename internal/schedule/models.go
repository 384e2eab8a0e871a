package schedule

// Consultation types
const (
	TypeGeneral      = "Pemeriksaan Umum"
	TypeFollowUp     = "Kontrol"
	TypeConsultation = "Konsultasi"
	TypeEmergency    = "Darurat"
	TypeSpecialist   = "Spesialis"
)

// Schedule status values
const (
	StatusScheduled = "Scheduled"
	StatusConfirmed = "Confirmed"
	StatusDone      = "Done"
	StatusCancelled = "Cancelled"
)

// ConsultationSchedule is a planned visit. PatientName is a point-in-time
// copy taken when the schedule is created; later patient edits do not
// propagate into it.
type ConsultationSchedule struct {
	ID               string `json:"id"`
	PatientID        string `json:"patient_id"`
	PatientName      string `json:"patient_name"`
	Date             string `json:"date"` // Format: YYYY-MM-DD
	Time             string `json:"time"` // Format: HH:MM
	Doctor           string `json:"doctor"`
	ConsultationType string `json:"consultation_type"`
	Status           string `json:"status"`
	Notes            string `json:"notes,omitempty"`
}

// RecordID implements storage.Record.
func (s ConsultationSchedule) RecordID() string { return s.ID }

// CreateScheduleRequest represents the request to plan a consultation
type CreateScheduleRequest struct {
	PatientID        string `json:"patient_id"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Doctor           string `json:"doctor"`
	ConsultationType string `json:"consultation_type"`
	Notes            string `json:"notes"`
}

// UpdateScheduleRequest represents the request to change a consultation
type UpdateScheduleRequest struct {
	Date             *string `json:"date,omitempty"`
	Time             *string `json:"time,omitempty"`
	Doctor           *string `json:"doctor,omitempty"`
	ConsultationType *string `json:"consultation_type,omitempty"`
	Status           *string `json:"status,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}
