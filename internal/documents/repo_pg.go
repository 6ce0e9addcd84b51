package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, patient_id, title, service_date, provider, doc_type, medication, note, file_id, idempotency_key, created_at, updated_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    patient_id,
    title,
    service_date,
    provider,
    doc_type,
    medication,
    note,
    file_id,
    idempotency_key,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.PatientID,
		doc.Title,
		doc.ServiceDate,
		doc.Provider,
		doc.DocType,
		nullString(doc.Medication),
		nullString(doc.Note),
		nullString(doc.FileID),
		nullString(doc.IdempotencyKey),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID fetches a document by ID for a patient.
func (r *PGRepo) GetByID(ctx context.Context, patientID, id string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE patient_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, patientID, id))
}

// GetByIdempotencyKey fetches the document created under the given key, if any.
func (r *PGRepo) GetByIdempotencyKey(ctx context.Context, patientID, key string) (Document, error) {
	if key == "" {
		return Document{}, ErrNotFound
	}
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE patient_id = $1 AND idempotency_key = $2 AND deleted_at IS NULL
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, patientID, key))
}

// ListByPatient lists documents ordered newest-first.
func (r *PGRepo) ListByPatient(ctx context.Context, patientID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE patient_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields of a document. The note stays tied to
// the attachment and is not touched here.
func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET title = $1, service_date = $2, provider = $3, doc_type = $4, medication = $5, updated_at = $6
WHERE patient_id = $7 AND id = $8 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.Title,
		doc.ServiceDate,
		doc.Provider,
		doc.DocType,
		nullString(doc.Medication),
		doc.UpdatedAt,
		doc.PatientID,
		doc.ID,
	)
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

// Delete marks a document deleted.
func (r *PGRepo) Delete(ctx context.Context, patientID, id string) error {
	const query = `
UPDATE documents
SET deleted_at = now()
WHERE patient_id = $1 AND id = $2 AND deleted_at IS NULL`
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (Document, error) {
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var medication, note, fileID, idempotencyKey sql.NullString
	err := row.Scan(
		&doc.ID,
		&doc.PatientID,
		&doc.Title,
		&doc.ServiceDate,
		&doc.Provider,
		&doc.DocType,
		&medication,
		&note,
		&fileID,
		&idempotencyKey,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	doc.Medication = medication.String
	doc.Note = note.String
	doc.FileID = fileID.String
	doc.IdempotencyKey = idempotencyKey.String
	return doc, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
