package patient

// Sex values
const (
	SexMale   = "M"
	SexFemale = "F"
	SexOther  = "Other"
)

// Patient status values
const (
	StatusActive    = "Active"
	StatusRecovered = "Recovered"
	StatusChronic   = "Chronic"
)

// Patient is a registered clinic patient. MedicalRecordNumber is assigned
// once at registration, format NN-NN-NN, and never reused.
type Patient struct {
	ID                  string `json:"id"`
	MedicalRecordNumber string `json:"medical_record_number"`
	NationalID          string `json:"national_id"`
	Name                string `json:"name"`
	BirthDate           string `json:"birth_date"` // Format: YYYY-MM-DD
	Sex                 string `json:"sex"`
	Address             string `json:"address"`
	Province            string `json:"province"`
	PostalCode          string `json:"postal_code"`
	Phone               string `json:"phone"`
	Email               string `json:"email,omitempty"`
	BloodType           string `json:"blood_type,omitempty"`
	RegistrationDate    string `json:"registration_date"` // Format: YYYY-MM-DD
	Status              string `json:"status"`
}

// RecordID implements storage.Record.
func (p Patient) RecordID() string { return p.ID }

// RegisterPatientRequest represents the request to register a new patient
type RegisterPatientRequest struct {
	NationalID string `json:"national_id"`
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"` // Format: YYYY-MM-DD
	Sex        string `json:"sex"`
	Address    string `json:"address"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	BloodType  string `json:"blood_type"`
}

// UpdatePatientRequest represents the request to update a patient
type UpdatePatientRequest struct {
	NationalID *string `json:"national_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	BirthDate  *string `json:"birth_date,omitempty"`
	Sex        *string `json:"sex,omitempty"`
	Address    *string `json:"address,omitempty"`
	Province   *string `json:"province,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	BloodType  *string `json:"blood_type,omitempty"`
	Status     *string `json:"status,omitempty"`
}
