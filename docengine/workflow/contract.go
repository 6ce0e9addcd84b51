package workflow

import (
	"context"
	"io"

	"healthdocs-backend/docengine/model"
)

// CreatePayload is the full payload for creating a document. The idempotency
// key is generated per attempt so the service can de-duplicate retried
// submits.
type CreatePayload struct {
	Title          string
	ServiceDate    string
	Provider       string
	DocType        model.DocType
	Medication     string
	FileID         string
	IdempotencyKey string
}

// UpdatePayload carries every editable field. The service has no
// partial-update endpoint, so even a medication-only edit resends the rest.
type UpdatePayload struct {
	Title       string
	ServiceDate string
	Provider    string
	DocType     model.DocType
	Medication  string
}

// DocumentService is the external collaborator the workflow mutates against.
// Implementations return the authoritative record for create and update.
type DocumentService interface {
	FetchDocuments(ctx context.Context) ([]model.DocumentRecord, error)
	CreateDocument(ctx context.Context, payload CreatePayload) (model.DocumentRecord, error)
	UpdateDocument(ctx context.Context, id string, payload UpdatePayload) (model.DocumentRecord, error)
	DeleteDocument(ctx context.Context, id string) error
	UploadFile(ctx context.Context, fileName string, r io.Reader) (string, error)
	FetchFileBytes(ctx context.Context, id string) ([]byte, string, error)
}

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer func(message string) bool

// Notifier surfaces a message to the user.
type Notifier func(message string)
