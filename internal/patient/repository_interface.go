package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	ListPatients(ctx context.Context) ([]Patient, error)
	GetPatient(ctx context.Context, id string) (*Patient, error)
	GetByRecordNumber(ctx context.Context, recordNumber string) (*Patient, error)
	SearchPatients(ctx context.Context, query string) ([]Patient, error)
	SavePatient(ctx context.Context, p Patient) error
	DeletePatient(ctx context.Context, id string) error
	NextRecordNumber(ctx context.Context) (string, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
