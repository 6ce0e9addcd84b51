package workflow_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"healthdocs-backend/docengine/model"
	"healthdocs-backend/docengine/store"
	"healthdocs-backend/docengine/workflow"
)

type fakeService struct {
	fetchResult []model.DocumentRecord
	fetchErr    error
	createErr   error
	updateErr   error
	deleteErr   error
	uploadErr   error

	uploadCalls int
	createCalls int
	updateCalls int
	deleteCalls int

	lastCreate workflow.CreatePayload
	lastUpdate workflow.UpdatePayload
	lastID     string

	onUpdate func()
}

func (f *fakeService) FetchDocuments(ctx context.Context) ([]model.DocumentRecord, error) {
	return f.fetchResult, f.fetchErr
}

func (f *fakeService) CreateDocument(ctx context.Context, payload workflow.CreatePayload) (model.DocumentRecord, error) {
	f.createCalls++
	f.lastCreate = payload
	if f.createErr != nil {
		return model.DocumentRecord{}, f.createErr
	}
	return model.DocumentRecord{
		ID:          "created-1",
		Title:       payload.Title,
		ServiceDate: payload.ServiceDate,
		Provider:    payload.Provider,
		DocType:     payload.DocType,
		Medication:  payload.Medication,
		FileID:      payload.FileID,
	}, nil
}

func (f *fakeService) UpdateDocument(ctx context.Context, id string, payload workflow.UpdatePayload) (model.DocumentRecord, error) {
	f.updateCalls++
	f.lastID = id
	f.lastUpdate = payload
	if f.onUpdate != nil {
		f.onUpdate()
	}
	if f.updateErr != nil {
		return model.DocumentRecord{}, f.updateErr
	}
	return model.DocumentRecord{
		ID:          id,
		Title:       payload.Title,
		ServiceDate: payload.ServiceDate,
		Provider:    payload.Provider,
		DocType:     payload.DocType,
		Medication:  payload.Medication,
	}, nil
}

func (f *fakeService) DeleteDocument(ctx context.Context, id string) error {
	f.deleteCalls++
	f.lastID = id
	return f.deleteErr
}

func (f *fakeService) UploadFile(ctx context.Context, fileName string, r io.Reader) (string, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "file-1", nil
}

func (f *fakeService) FetchFileBytes(ctx context.Context, id string) ([]byte, string, error) {
	return []byte("binary"), "application/pdf", nil
}

func existing(id string) model.DocumentRecord {
	return model.DocumentRecord{
		ID:          id,
		Title:       "Befund",
		ServiceDate: "2024-01-05",
		Provider:    "Clinic X",
		DocType:     model.DocTypeFinding,
	}
}

func validCreate() workflow.CreateInput {
	return workflow.CreateInput{
		Title:       "MRI Knie",
		ServiceDate: "2024-03-01",
		Provider:    "USZ Zuerich",
		DocType:     model.DocTypeImaging,
		Medication:  "Ibuprofen 400 mg",
		FileName:    "mri.pdf",
		File:        strings.NewReader("%PDF-"),
	}
}

func TestCreateRejectsMissingTitleBeforeNetwork(t *testing.T) {
	svc := &fakeService{}
	w := workflow.New(svc, store.New(), nil, nil)

	in := validCreate()
	in.Title = "  "
	_, err := w.Create(context.Background(), in)
	if !errors.Is(err, workflow.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.uploadCalls != 0 || svc.createCalls != 0 {
		t.Fatalf("validation failure must not reach the service")
	}
}

func TestCreateRequiresFile(t *testing.T) {
	svc := &fakeService{}
	w := workflow.New(svc, store.New(), nil, nil)

	in := validCreate()
	in.File = nil
	_, err := w.Create(context.Background(), in)
	if !errors.Is(err, workflow.ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
	if svc.uploadCalls != 0 {
		t.Fatalf("missing file must not trigger an upload")
	}
}

func TestCreateClearsMedicationForNonPrescription(t *testing.T) {
	svc := &fakeService{}
	st := store.New()
	w := workflow.New(svc, st, nil, nil)

	created, err := w.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if svc.lastCreate.Medication != "" {
		t.Fatalf("medication must be cleared for non-prescriptions, got %q", svc.lastCreate.Medication)
	}
	if created.Medication != "" {
		t.Fatalf("stored record kept a medication: %q", created.Medication)
	}
}

func TestCreateKeepsMedicationForPrescription(t *testing.T) {
	svc := &fakeService{}
	w := workflow.New(svc, store.New(), nil, nil)

	in := validCreate()
	in.DocType = model.DocTypePrescription
	if _, err := w.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if svc.lastCreate.Medication != "Ibuprofen 400 mg" {
		t.Fatalf("prescription medication lost: %q", svc.lastCreate.Medication)
	}
}

func TestCreatePrependsResult(t *testing.T) {
	svc := &fakeService{}
	st := store.New(existing("old-1"))
	w := workflow.New(svc, st, nil, nil)

	if _, err := w.Create(context.Background(), validCreate()); err != nil {
		t.Fatalf("create: %v", err)
	}
	snap := st.Snapshot()
	if snap[0].ID != "created-1" {
		t.Fatalf("created record must sit at the front, got %s", snap[0].ID)
	}
	if svc.lastCreate.IdempotencyKey == "" {
		t.Fatalf("create must carry an idempotency key")
	}
	if svc.lastCreate.FileID != "file-1" {
		t.Fatalf("create must reference the uploaded file, got %q", svc.lastCreate.FileID)
	}
}

func TestCreateIdempotencyKeyFreshPerAttempt(t *testing.T) {
	svc := &fakeService{}
	w := workflow.New(svc, store.New(), nil, nil)

	if _, err := w.Create(context.Background(), validCreate()); err != nil {
		t.Fatalf("create: %v", err)
	}
	first := svc.lastCreate.IdempotencyKey
	in := validCreate()
	in.File = strings.NewReader("%PDF-")
	if _, err := w.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if svc.lastCreate.IdempotencyKey == first {
		t.Fatalf("idempotency key must differ per attempt")
	}
}

func TestEditReplacesInPlace(t *testing.T) {
	svc := &fakeService{}
	st := store.New(existing("doc-1"), existing("doc-2"))
	var notified []string
	w := workflow.New(svc, st, nil, func(msg string) { notified = append(notified, msg) })

	updated, err := w.Edit(context.Background(), "doc-1", workflow.EditInput{
		Title:       "Neuer Titel",
		ServiceDate: "2024-02-02",
		Provider:    "Praxis Y",
		DocType:     model.DocTypeReport,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.ID != "doc-1" {
		t.Fatalf("edit must keep the ID, got %s", updated.ID)
	}
	snap := st.Snapshot()
	if snap[0].Title != "Neuer Titel" {
		t.Fatalf("store not updated in place: %+v", snap[0])
	}
	if st.Len() != 2 {
		t.Fatalf("edit must not change the record count")
	}
	if len(notified) != 1 || notified[0] != "Gespeichert." {
		t.Fatalf("expected save notification, got %v", notified)
	}
}

func TestEditUnknownIDIsSilentNoOp(t *testing.T) {
	svc := &fakeService{}
	w := workflow.New(svc, store.New(), nil, nil)

	_, err := w.Edit(context.Background(), "ghost", workflow.EditInput{
		Title: "x", ServiceDate: "2024-01-01", Provider: "p", DocType: model.DocTypeOther,
	})
	if err != nil {
		t.Fatalf("stale reference must be silent, got %v", err)
	}
	if svc.updateCalls != 0 {
		t.Fatalf("stale reference must not reach the service")
	}
}

func TestEditMedicationResendsFullPayload(t *testing.T) {
	svc := &fakeService{}
	rec := existing("doc-1")
	rec.DocType = model.DocTypePrescription
	rec.Medication = "Aspirin Cardio 100 mg"
	st := store.New(rec)
	w := workflow.New(svc, st, nil, nil)

	if _, err := w.EditMedication(context.Background(), "doc-1", "  Dafalgan 1 g  "); err != nil {
		t.Fatalf("edit medication: %v", err)
	}
	got := svc.lastUpdate
	if got.Title != rec.Title || got.ServiceDate != rec.ServiceDate || got.Provider != rec.Provider || got.DocType != rec.DocType {
		t.Fatalf("medication edit must resend the unchanged fields, got %+v", got)
	}
	if got.Medication != "Dafalgan 1 g" {
		t.Fatalf("expected trimmed medication, got %q", got.Medication)
	}
}

func TestEditMedicationRequiresValue(t *testing.T) {
	svc := &fakeService{}
	w := workflow.New(svc, store.New(existing("doc-1")), nil, nil)

	_, err := w.EditMedication(context.Background(), "doc-1", "   ")
	if !errors.Is(err, workflow.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.updateCalls != 0 {
		t.Fatalf("empty medication must not reach the service")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc := &fakeService{}
	st := store.New(existing("doc-1"))
	w := workflow.New(svc, st, func(string) bool { return false }, nil)

	if err := w.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("declined delete must not error: %v", err)
	}
	if svc.deleteCalls != 0 {
		t.Fatalf("declined confirmation must abort before the network call")
	}
	if st.Len() != 1 {
		t.Fatalf("declined delete must not touch the store")
	}
}

func TestDeleteEvictsRecord(t *testing.T) {
	svc := &fakeService{}
	st := store.New(existing("doc-1"), existing("doc-2"))
	w := workflow.New(svc, st, func(string) bool { return true }, nil)

	if err := w.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := st.Get("doc-1"); ok {
		t.Fatalf("record still present after delete")
	}
	if svc.deleteCalls != 1 || svc.lastID != "doc-1" {
		t.Fatalf("expected one delete call for doc-1")
	}
}

func TestTransportFailureLeavesStoreUntouched(t *testing.T) {
	svc := &fakeService{updateErr: errors.New("boom")}
	st := store.New(existing("doc-1"))
	before := st.Snapshot()
	w := workflow.New(svc, st, nil, nil)

	_, err := w.Edit(context.Background(), "doc-1", workflow.EditInput{
		Title: "x", ServiceDate: "2024-01-01", Provider: "p", DocType: model.DocTypeOther,
	})
	if !errors.Is(err, workflow.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	after := st.Snapshot()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("failed mutation changed the store")
	}
}

func TestDetachSuppressesNotification(t *testing.T) {
	var notified []string
	svc := &fakeService{}
	st := store.New(existing("doc-1"))
	w := workflow.New(svc, st, nil, func(msg string) { notified = append(notified, msg) })

	// The modal closes while the request is in flight.
	svc.onUpdate = w.DetachAll

	updated, err := w.Edit(context.Background(), "doc-1", workflow.EditInput{
		Title: "Neu", ServiceDate: "2024-01-02", Provider: "p", DocType: model.DocTypeOther,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(notified) != 0 {
		t.Fatalf("detached completion must not notify, got %v", notified)
	}
	// The result is still applied.
	got, _ := st.Get("doc-1")
	if got.Title != updated.Title {
		t.Fatalf("detached result must still land in the store")
	}
}

func TestRefreshResetsStore(t *testing.T) {
	svc := &fakeService{fetchResult: []model.DocumentRecord{existing("a"), existing("b")}}
	st := store.New(existing("stale"))
	w := workflow.New(svc, st, nil, nil)

	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("expected 2 records after refresh, got %d", st.Len())
	}
	if _, ok := st.Get("stale"); ok {
		t.Fatalf("stale record survived the refresh")
	}
}
