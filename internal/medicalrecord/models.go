package medicalrecord

// MedicalRecord is one entry in a patient's treatment history. PatientID is
// a soft reference; it is not validated against the patient collection.
type MedicalRecord struct {
	ID          string   `json:"id"`
	PatientID   string   `json:"patient_id"`
	Date        string   `json:"date"` // Format: YYYY-MM-DD
	Complaint   string   `json:"complaint"`
	Diagnosis   string   `json:"diagnosis"`
	Action      string   `json:"action"`
	Medications []string `json:"medications"`
	Doctor      string   `json:"doctor"`
	Notes       string   `json:"notes,omitempty"`
}

// RecordID implements storage.Record.
func (m MedicalRecord) RecordID() string { return m.ID }

// CreateMedicalRecordRequest represents the request to add a history entry
type CreateMedicalRecordRequest struct {
	PatientID   string   `json:"patient_id"`
	Date        string   `json:"date"`
	Complaint   string   `json:"complaint"`
	Diagnosis   string   `json:"diagnosis"`
	Action      string   `json:"action"`
	Medications []string `json:"medications"`
	Doctor      string   `json:"doctor"`
	Notes       string   `json:"notes"`
}
