package files

import "context"

// Repo defines persistence operations for uploaded files.
type Repo interface {
	Create(ctx context.Context, f File) error
	GetByID(ctx context.Context, patientID, id string) (File, error)
	Delete(ctx context.Context, patientID, id string) error
}
