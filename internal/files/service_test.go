package files

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	localstore "healthdocs-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Store: localstore.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}
}

func TestUploadAndOpenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f, err := svc.Upload(ctx, "patient-1", "befund.pdf", strings.NewReader("attachment body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if f.ID == "" {
		t.Fatalf("expected file id")
	}
	if f.SizeBytes != int64(len("attachment body")) {
		t.Fatalf("expected size %d, got %d", len("attachment body"), f.SizeBytes)
	}
	if f.MimeType == "" {
		t.Fatalf("expected mime type")
	}

	rc, got, err := svc.Open(ctx, "patient-1", f.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "attachment body" {
		t.Fatalf("unexpected content: %q", data)
	}
	if got.FileName != "befund.pdf" {
		t.Fatalf("unexpected file name: %s", got.FileName)
	}
}

func TestUploadRejectsEmptyInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "patient-1", "", strings.NewReader("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.Upload(ctx, "patient-1", "empty.pdf", strings.NewReader("")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty body, got %v", err)
	}
}

func TestGetIsScopedToPatient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f, err := svc.Upload(ctx, "patient-1", "befund.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := svc.Get(ctx, "patient-2", f.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign patient, got %v", err)
	}
}

func TestRemoveDeletesObjectAndRow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f, err := svc.Upload(ctx, "patient-1", "befund.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Remove(ctx, "patient-1", f.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := svc.Get(ctx, "patient-1", f.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if _, err := svc.Store.Open(ctx, f.StorageKey); err == nil {
		t.Fatalf("expected stored object gone after remove")
	}
}
