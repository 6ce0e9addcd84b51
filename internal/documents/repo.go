package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, patientID, id string) (Document, error)
	GetByIdempotencyKey(ctx context.Context, patientID, key string) (Document, error)
	ListByPatient(ctx context.Context, patientID string) ([]Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, patientID, id string) error
}
