package examination

import "time"

// Vitals captured during the physical exam. Waist and arm circumference
// are only measured for maternal-health visits, so they stay optional.
type Vitals struct {
	BloodPressure      string `json:"blood_pressure"`
	Pulse              string `json:"pulse"`
	Temperature        string `json:"temperature"`
	Weight             string `json:"weight"`
	Height             string `json:"height"`
	Respiration        string `json:"respiration"`
	WaistCircumference string `json:"waist_circumference,omitempty"`
	ArmCircumference   string `json:"arm_circumference,omitempty"`
}

// ExaminationRecord is the structured doctor visit note. PatientName and
// MedicalRecordNumber are snapshots taken at completion time. Verified is
// always true on a stored record; there is no unverified write path.
type ExaminationRecord struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patient_id"`
	QueueEntryID        string    `json:"queue_entry_id,omitempty"`
	PatientName         string    `json:"patient_name"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	Date                string    `json:"date"`
	Doctor              string    `json:"doctor"`
	ServiceType         string    `json:"service_type"`
	Complaint           string    `json:"complaint"`
	Allergies           []string  `json:"allergies"`
	PriorConditions     []string  `json:"prior_conditions"`
	Vitals              Vitals    `json:"vitals"`
	Diagnosis           string    `json:"diagnosis"`
	Action              string    `json:"action"`
	Medications         []string  `json:"medications"`
	CarePlan            string    `json:"care_plan"`
	FollowUp            string    `json:"follow_up"`
	Verified            bool      `json:"verified"`
	VerifiedAt          time.Time `json:"verified_at"`
}

// RecordID implements storage.Record.
func (e ExaminationRecord) RecordID() string { return e.ID }

// CompleteExaminationRequest carries the examination form payload
type CompleteExaminationRequest struct {
	PatientID       string   `json:"patient_id"`
	QueueEntryID    string   `json:"queue_entry_id"`
	Date            string   `json:"date"`
	Doctor          string   `json:"doctor"`
	ServiceType     string   `json:"service_type"`
	Complaint       string   `json:"complaint"`
	Allergies       []string `json:"allergies"`
	PriorConditions []string `json:"prior_conditions"`
	Vitals          Vitals   `json:"vitals"`
	Diagnosis       string   `json:"diagnosis"`
	Action          string   `json:"action"`
	Medications     []string `json:"medications"`
	CarePlan        string   `json:"care_plan"`
	FollowUp        string   `json:"follow_up"`
}
