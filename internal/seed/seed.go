// Package seed populates a fresh storage area with demo data so the
// application is usable out of the box. The bootstrap is guarded by an
// empty patient collection and therefore runs at most once per storage
// area.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/examination"
	"github.com/asysyifa-husada/clinic-service/internal/patient"
	"github.com/asysyifa-husada/clinic-service/internal/queue"
	"github.com/asysyifa-husada/clinic-service/internal/schedule"
	"github.com/asysyifa-husada/clinic-service/internal/storage"
)

// Run seeds sample data when the patient collection is empty. Repeated
// calls against a populated storage area are no-ops.
func Run(ctx context.Context, kv storage.KV) error {
	patients := storage.NewCollection[patient.Patient](kv, storage.KeyPatients)
	count, err := patients.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check patient collection: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding sample data")

	samplePatients := []patient.Patient{
		{
			ID:                  "1",
			MedicalRecordNumber: "00-00-01",
			NationalID:          "3519012345670001",
			Name:                "Tn. Agus Susono",
			BirthDate:           "1985-03-15",
			Sex:                 patient.SexMale,
			Address:             "Jl. Merdeka No. 123",
			Province:            "Jawa Timur",
			PostalCode:          "63354",
			Phone:               "081234567890",
			Email:               "agus.susono@email.com",
			BloodType:           "A",
			RegistrationDate:    "2024-12-01",
			Status:              patient.StatusActive,
		},
		{
			ID:                  "2",
			MedicalRecordNumber: "00-00-02",
			NationalID:          "3519012345670002",
			Name:                "Ny. Siti Rahayu",
			BirthDate:           "1990-07-22",
			Sex:                 patient.SexFemale,
			Address:             "Jl. Pahlawan No. 45",
			Province:            "Jawa Timur",
			PostalCode:          "63354",
			Phone:               "082345678901",
			Email:               "siti.rahayu@email.com",
			BloodType:           "B",
			RegistrationDate:    "2024-12-05",
			Status:              patient.StatusChronic,
		},
		{
			ID:                  "3",
			MedicalRecordNumber: "00-00-03",
			NationalID:          "3519012345670003",
			Name:                "An. Valerica Aoskay",
			BirthDate:           "2018-11-10",
			Sex:                 patient.SexFemale,
			Address:             "Jl. Sudirman No. 78",
			Province:            "Jawa Timur",
			PostalCode:          "63354",
			Phone:               "083456789012",
			BloodType:           "O",
			RegistrationDate:    "2024-12-10",
			Status:              patient.StatusRecovered,
		},
	}
	for _, p := range samplePatients {
		if err := patients.Save(ctx, p); err != nil {
			return fmt.Errorf("failed to seed patient %s: %w", p.ID, err)
		}
	}

	// advance the record number counter past the seeded patients
	sequence := storage.NewSequence(kv)
	for i := 0; i < len(samplePatients); i++ {
		if _, err := sequence.Next(ctx, "rekam_medis"); err != nil {
			return fmt.Errorf("failed to advance record number counter: %w", err)
		}
	}

	now := time.Now()
	today := now.Format("2006-01-02")

	entries := storage.NewCollection[queue.QueueEntry](kv, storage.KeyQueue)
	sampleQueue := []queue.QueueEntry{
		{
			ID: "a1", PatientID: "1", PatientName: "Tn. Agus Susono", MedicalRecordNumber: "00-00-01",
			QueueNumber: 1, ServiceType: queue.ServiceConsultation, Complaint: "Demam dan batuk",
			Status: queue.StatusDone, RegisteredAt: now,
		},
		{
			ID: "a2", PatientID: "2", PatientName: "Ny. Siti Rahayu", MedicalRecordNumber: "00-00-02",
			QueueNumber: 2, ServiceType: queue.ServiceFamilyPlan, Complaint: "Konsultasi KB",
			Status: queue.StatusInService, RegisteredAt: now,
		},
		{
			ID: "a3", PatientID: "3", PatientName: "An. Valerica Aoskay", MedicalRecordNumber: "00-00-03",
			QueueNumber: 3, ServiceType: queue.ServiceImmunization, Complaint: "Imunisasi rutin",
			Status: queue.StatusWaiting, RegisteredAt: now,
		},
	}
	for _, e := range sampleQueue {
		if err := entries.Save(ctx, e); err != nil {
			return fmt.Errorf("failed to seed queue entry %s: %w", e.ID, err)
		}
		if _, err := sequence.Next(ctx, "antrian:"+today); err != nil {
			return fmt.Errorf("failed to advance queue counter: %w", err)
		}
	}

	schedules := storage.NewCollection[schedule.ConsultationSchedule](kv, storage.KeySchedules)
	sampleSchedules := []schedule.ConsultationSchedule{
		{
			ID: "j1", PatientID: "1", PatientName: "Tn. Agus Susono",
			Date: "2025-01-02", Time: "09:00", Doctor: "dr. Sad Omega Kencanawaty",
			ConsultationType: schedule.TypeFollowUp, Status: schedule.StatusScheduled,
		},
		{
			ID: "j2", PatientID: "2", PatientName: "Ny. Siti Rahayu",
			Date: "2025-01-03", Time: "10:30", Doctor: "dr. Reny Endyawati",
			ConsultationType: schedule.TypeConsultation, Status: schedule.StatusConfirmed,
		},
	}
	for _, sc := range sampleSchedules {
		if err := schedules.Save(ctx, sc); err != nil {
			return fmt.Errorf("failed to seed schedule %s: %w", sc.ID, err)
		}
	}

	examinations := storage.NewCollection[examination.ExaminationRecord](kv, storage.KeyExaminations)
	sampleExam := examination.ExaminationRecord{
		ID:                  "pd1",
		PatientID:           "1",
		QueueEntryID:        "a1",
		PatientName:         "Tn. Agus Susono",
		MedicalRecordNumber: "00-00-01",
		Date:                today,
		Doctor:              "dr. Sad Omega Kencanawaty",
		ServiceType:         queue.ServiceConsultation,
		Complaint:           "Demam dan batuk",
		Allergies:           []string{"Penisilin"},
		PriorConditions:     []string{"Hipertensi"},
		Vitals: examination.Vitals{
			BloodPressure: "130/85",
			Pulse:         "78",
			Temperature:   "37.5",
			Weight:        "70",
			Height:        "170",
			Respiration:   "18",
		},
		Diagnosis:   "ISPA (Infeksi Saluran Pernapasan Atas)",
		Action:      "Pemberian obat",
		Medications: []string{"Paracetamol 500mg 3x1", "Ambroxol 30mg 3x1"},
		CarePlan:    "Istirahat cukup, minum air putih yang banyak",
		FollowUp:    "Kontrol 3 hari lagi jika tidak membaik",
		Verified:    true,
		VerifiedAt:  now.UTC(),
	}
	if err := examinations.Save(ctx, sampleExam); err != nil {
		return fmt.Errorf("failed to seed examination record: %w", err)
	}

	log.Printf("Seeded %d patients, %d queue entries, %d schedules, 1 examination",
		len(samplePatients), len(sampleQueue), len(sampleSchedules))
	return nil
}
