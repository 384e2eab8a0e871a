package patient

import "context"

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*Patient, error)
	UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
	GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error)
	ListPatients(ctx context.Context) ([]Patient, error)
	SearchPatients(ctx context.Context, query string) ([]Patient, error)
	DeletePatient(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
