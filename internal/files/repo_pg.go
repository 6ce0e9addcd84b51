package files

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new file row.
func (r *PGRepo) Create(ctx context.Context, f File) error {
	const query = `
INSERT INTO files (
    id,
    patient_id,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    note,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var note sql.NullString
	if f.Note != "" {
		note = sql.NullString{String: f.Note, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		f.ID,
		f.PatientID,
		f.FileName,
		f.MimeType,
		f.SizeBytes,
		f.StorageKey,
		note,
		f.CreatedAt,
	)
	return err
}

// GetByID fetches a file by ID for a patient.
func (r *PGRepo) GetByID(ctx context.Context, patientID, id string) (File, error) {
	const query = `
SELECT id, patient_id, file_name, mime_type, size_bytes, storage_key, note, created_at
FROM files
WHERE patient_id = $1 AND id = $2
LIMIT 1`
	var f File
	var note sql.NullString
	err := r.DB.QueryRowContext(ctx, query, patientID, id).Scan(
		&f.ID,
		&f.PatientID,
		&f.FileName,
		&f.MimeType,
		&f.SizeBytes,
		&f.StorageKey,
		&note,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return File{}, ErrNotFound
		}
		return File{}, err
	}
	f.Note = note.String
	return f, nil
}

// Delete removes a file row.
func (r *PGRepo) Delete(ctx context.Context, patientID, id string) error {
	const query = `DELETE FROM files WHERE patient_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, patientID, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
