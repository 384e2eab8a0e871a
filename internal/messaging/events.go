package messaging

import "time"

// Event routing keys as constants
const (
	// Patient events
	EventPatientRegistered = "patient.registered"
	EventPatientDeleted    = "patient.deleted"

	// Queue events, consumed by the waiting-room display
	EventQueueRegistered    = "queue.registered"
	EventQueueStatusChanged = "queue.status_changed"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientRegisteredEvent announces a newly registered patient
type PatientRegisteredEvent struct {
	BaseEvent
	Data PatientRegisteredData `json:"data"`
}

type PatientRegisteredData struct {
	PatientID           string    `json:"patient_id"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	Name                string    `json:"name"`
	RegisteredAt        time.Time `json:"registered_at"`
}

// PatientDeletedEvent announces a removed patient. Dependent medical
// records, examinations and queue entries keep referencing the removed id;
// consumers decide what to do with the orphans.
type PatientDeletedEvent struct {
	BaseEvent
	Data PatientDeletedData `json:"data"`
}

type PatientDeletedData struct {
	PatientID string    `json:"patient_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// QueueRegisteredEvent announces a new queue entry for the day
type QueueRegisteredEvent struct {
	BaseEvent
	Data QueueRegisteredData `json:"data"`
}

type QueueRegisteredData struct {
	QueueEntryID        string    `json:"queue_entry_id"`
	PatientName         string    `json:"patient_name"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	QueueNumber         int       `json:"queue_number"`
	ServiceType         string    `json:"service_type"`
	RegisteredAt        time.Time `json:"registered_at"`
}

// QueueStatusChangedEvent announces a queue entry moving through the
// waiting / in-service / done flow
type QueueStatusChangedEvent struct {
	BaseEvent
	Data QueueStatusChangedData `json:"data"`
}

type QueueStatusChangedData struct {
	QueueEntryID string    `json:"queue_entry_id"`
	QueueNumber  int       `json:"queue_number"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	ChangedAt    time.Time `json:"changed_at"`
}
