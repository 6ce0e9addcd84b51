package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateWritesNullableFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	doc := Document{
		ID:             "doc-1",
		PatientID:      "patient-1",
		Title:          "Blutbild",
		ServiceDate:    "2026-03-14",
		Provider:       "Dr. Weber",
		DocType:        "blood_panel",
		FileID:         "file-1",
		IdempotencyKey: "key-1",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.PatientID,
			doc.Title,
			doc.ServiceDate,
			doc.Provider,
			doc.DocType,
			nil, // medication
			nil, // note
			doc.FileID,
			doc.IdempotencyKey,
			doc.CreatedAt,
			doc.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("patient-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "patient-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIdempotencyKeyFindsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "title", "service_date", "provider", "doc_type",
		"medication", "note", "file_id", "idempotency_key", "created_at", "updated_at",
	}).AddRow(
		"doc-1", "patient-1", "Rezept", "2026-04-01", "Dr. Weber", "prescription",
		"Xarelto 20mg", nil, "file-1", "key-1", now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("patient-1", "key-1").
		WillReturnRows(rows)

	doc, err := repo.GetByIdempotencyKey(context.Background(), "patient-1", "key-1")
	if err != nil {
		t.Fatalf("GetByIdempotencyKey: %v", err)
	}
	if doc.ID != "doc-1" {
		t.Fatalf("expected doc-1, got %s", doc.ID)
	}
	if doc.Medication != "Xarelto 20mg" {
		t.Fatalf("expected medication, got %q", doc.Medication)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIdempotencyKeySkipsEmptyKey(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByIdempotencyKey(context.Background(), "patient-1", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty key, got %v", err)
	}
}

func TestPGRepoUpdateReturnsNotFoundOnZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:          "doc-1",
		PatientID:   "patient-1",
		Title:       "Befund",
		ServiceDate: "2026-04-01",
		Provider:    "Dr. Weber",
		DocType:     "finding",
		UpdatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("UPDATE documents").
		WithArgs(
			doc.Title,
			doc.ServiceDate,
			doc.Provider,
			doc.DocType,
			nil,
			doc.UpdatedAt,
			doc.PatientID,
			doc.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), doc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteSoftDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE documents").
		WithArgs("patient-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "patient-1", "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
