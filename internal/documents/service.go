package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	docmodel "healthdocs-backend/docengine/model"
	"healthdocs-backend/internal/files"
	"healthdocs-backend/internal/shared/metrics"
	"healthdocs-backend/internal/shared/telemetry"
)

// Service contains business logic for documents.
type Service struct {
	Repo  Repo
	Files *files.Service
}

// CreateInput carries the fields for a new document.
type CreateInput struct {
	Title          string
	ServiceDate    string
	Provider       string
	DocType        string
	Medication     string
	FileID         string
	IdempotencyKey string
}

// UpdateInput carries the editable fields of a document.
type UpdateInput struct {
	Title       string
	ServiceDate string
	Provider    string
	DocType     string
	Medication  string
}

// List returns the patient's documents, newest first.
func (s *Service) List(ctx context.Context, patientID string) ([]Document, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient id is required", ErrInvalidInput)
	}
	return s.Repo.ListByPatient(ctx, patientID)
}

// Get returns a single document.
func (s *Service) Get(ctx context.Context, patientID, id string) (Document, error) {
	return s.Repo.GetByID(ctx, patientID, id)
}

// Create validates the input, resolves the uploaded file and records the
// document. A repeated idempotency key returns the document created by the
// first attempt instead of a duplicate.
func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (Document, error) {
	if err := validateFields(in.Title, in.ServiceDate, in.Provider, in.DocType); err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(in.FileID) == "" {
		return Document{}, fmt.Errorf("%w: file_id is required", ErrInvalidInput)
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" {
		existing, err := s.Repo.GetByIdempotencyKey(ctx, patientID, key)
		if err == nil {
			telemetry.Info("documents.create_deduplicated", map[string]any{
				"document_id": existing.ID,
			})
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Document{}, err
		}
	}

	file, err := s.Files.Get(ctx, patientID, strings.TrimSpace(in.FileID))
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return Document{}, fmt.Errorf("%w: file not found", ErrInvalidInput)
		}
		return Document{}, err
	}

	now := time.Now().UTC()
	doc := Document{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		Title:          strings.TrimSpace(in.Title),
		ServiceDate:    strings.TrimSpace(in.ServiceDate),
		Provider:       strings.TrimSpace(in.Provider),
		DocType:        in.DocType,
		Medication:     medicationFor(in.DocType, in.Medication),
		Note:           file.Note,
		FileID:         file.ID,
		IdempotencyKey: key,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	metrics.IncDocumentCreated()
	return doc, nil
}

// Update rewrites the editable fields of an existing document.
func (s *Service) Update(ctx context.Context, patientID, id string, in UpdateInput) (Document, error) {
	if err := validateFields(in.Title, in.ServiceDate, in.Provider, in.DocType); err != nil {
		return Document{}, err
	}

	doc, err := s.Repo.GetByID(ctx, patientID, id)
	if err != nil {
		return Document{}, err
	}

	doc.Title = strings.TrimSpace(in.Title)
	doc.ServiceDate = strings.TrimSpace(in.ServiceDate)
	doc.Provider = strings.TrimSpace(in.Provider)
	doc.DocType = in.DocType
	doc.Medication = medicationFor(in.DocType, in.Medication)
	doc.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}

	metrics.IncDocumentUpdated()
	return doc, nil
}

// Delete removes the document and its stored attachment.
func (s *Service) Delete(ctx context.Context, patientID, id string) error {
	doc, err := s.Repo.GetByID(ctx, patientID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, patientID, id); err != nil {
		return err
	}
	if doc.FileID != "" {
		if err := s.Files.Remove(ctx, patientID, doc.FileID); err != nil {
			telemetry.Error("documents.file_cleanup_failed", map[string]any{
				"document_id": doc.ID,
				"file_id":     doc.FileID,
				"error":       err.Error(),
			})
		}
	}
	metrics.IncDocumentDeleted()
	return nil
}

func validateFields(title, serviceDate, provider, docType string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(serviceDate) == "" {
		return fmt.Errorf("%w: service_date is required", ErrInvalidInput)
	}
	if strings.TrimSpace(provider) == "" {
		return fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}
	if !docmodel.DocType(docType).Valid() {
		return fmt.Errorf("%w: unknown doc_type %q", ErrInvalidInput, docType)
	}
	return nil
}

// medicationFor enforces that only prescriptions carry a medication.
func medicationFor(docType, medication string) string {
	if docmodel.DocType(docType) != docmodel.DocTypePrescription {
		return ""
	}
	return strings.TrimSpace(medication)
}
