package queue

import "time"

// Service types offered by the clinic, as shown on the registration form.
const (
	ServiceConsultation = "Konsultasi KIA"
	ServiceFamilyPlan   = "KB"
	ServiceImmunization = "Imunisasi"
	ServicePregnancy    = "Pemeriksaan Kehamilan"
	ServicePostpartum   = "Pemeriksaan Nifas"
	ServiceOther        = "Lainnya"
)

// Queue entry statuses
const (
	StatusWaiting   = "Waiting"
	StatusInService = "InService"
	StatusDone      = "Done"
)

// QueueEntry is one patient's place in the daily queue. PatientName and
// MedicalRecordNumber are snapshots taken at registration time so the
// waiting-room display never needs a patient lookup.
type QueueEntry struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patient_id"`
	PatientName         string    `json:"patient_name"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	QueueNumber         int       `json:"queue_number"`
	ServiceType         string    `json:"service_type"`
	Complaint           string    `json:"complaint,omitempty"`
	Status              string    `json:"status"`
	RegisteredAt        time.Time `json:"registered_at"`
}

// RecordID implements storage.Record.
func (q QueueEntry) RecordID() string { return q.ID }

// RegisterQueueRequest carries the queue registration form payload
type RegisterQueueRequest struct {
	PatientID   string `json:"patient_id"`
	ServiceType string `json:"service_type"`
	Complaint   string `json:"complaint"`
}

// UpdateStatusRequest moves an entry through the waiting flow
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
