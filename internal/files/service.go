package files

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"healthdocs-backend/internal/extract"
	"healthdocs-backend/internal/shared/metrics"
	"healthdocs-backend/internal/shared/storage/object"
	"healthdocs-backend/internal/shared/telemetry"
)

// Service contains business logic for uploaded files.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the content to object storage, extracts a searchable note
// snippet where the format supports it, and records the file row.
func (s *Service) Upload(ctx context.Context, patientID, fileName string, r io.Reader) (File, error) {
	if fileName == "" {
		return File{}, ErrInvalidInput
	}

	// The caller bounds the body size, so buffering for extraction is fine.
	raw, err := io.ReadAll(r)
	if err != nil {
		return File{}, err
	}
	if len(raw) == 0 {
		return File{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, patientID, fileName, bytes.NewReader(raw))
	if err != nil {
		return File{}, err
	}

	note := ""
	if text, err := extract.Note(raw, mimeType, fileName); err == nil {
		note = text
	}

	f := File{
		ID:         uuid.NewString(),
		PatientID:  patientID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		Note:       note,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, f); err != nil {
		return File{}, err
	}

	metrics.IncFileUploaded()
	metrics.ObserveUploadSizeBytes(float64(size))
	return f, nil
}

// Get returns the file row for a patient.
func (s *Service) Get(ctx context.Context, patientID, id string) (File, error) {
	return s.Repo.GetByID(ctx, patientID, id)
}

// Open returns a reader over the stored content along with the file row.
func (s *Service) Open(ctx context.Context, patientID, id string) (io.ReadCloser, File, error) {
	f, err := s.Repo.GetByID(ctx, patientID, id)
	if err != nil {
		return nil, File{}, err
	}
	rc, err := s.Store.Open(ctx, f.StorageKey)
	if err != nil {
		return nil, File{}, err
	}
	return rc, f, nil
}

// Remove deletes the stored object and the file row. A failing object delete
// is logged but does not keep the row alive.
func (s *Service) Remove(ctx context.Context, patientID, id string) error {
	f, err := s.Repo.GetByID(ctx, patientID, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, f.StorageKey); err != nil {
		telemetry.Error("files.object_delete_failed", map[string]any{
			"file_id":     f.ID,
			"storage_key": f.StorageKey,
			"error":       err.Error(),
		})
	}
	return s.Repo.Delete(ctx, patientID, id)
}
