package dashboard

import (
	"context"
	"fmt"
)

// PatientStats reports patient totals broken down by status.
type PatientStats interface {
	CountByStatus(ctx context.Context) (total, active, recovered, chronic int, err error)
}

// QueueStats reports today's queue totals broken down by status.
type QueueStats interface {
	CountTodayByStatus(ctx context.Context) (total, waiting, inService, done int, err error)
}

// Statistics are the dashboard counters. Recomputed in full on every
// request; the collections are clinic-scale.
type Statistics struct {
	TotalPatients     int `json:"total_patients"`
	ActivePatients    int `json:"active_patients"`
	RecoveredPatients int `json:"recovered_patients"`
	ChronicPatients   int `json:"chronic_patients"`
	QueueToday        int `json:"queue_today"`
	QueueWaiting      int `json:"queue_waiting"`
	QueueInService    int `json:"queue_in_service"`
	QueueDone         int `json:"queue_done"`
}

type Service struct {
	patients PatientStats
	queue    QueueStats
}

func NewService(patients PatientStats, queue QueueStats) *Service {
	return &Service{patients: patients, queue: queue}
}

func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	total, active, recovered, chronic, err := s.patients.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	queueTotal, waiting, inService, done, err := s.queue.CountTodayByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count queue: %w", err)
	}

	return &Statistics{
		TotalPatients:     total,
		ActivePatients:    active,
		RecoveredPatients: recovered,
		ChronicPatients:   chronic,
		QueueToday:        queueTotal,
		QueueWaiting:      waiting,
		QueueInService:    inService,
		QueueDone:         done,
	}, nil
}
