package workflow

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"healthdocs-backend/docengine/model"
	"healthdocs-backend/docengine/store"
)

// Workflow orchestrates create/edit/delete against the document service and
// reconciles every result back into the record store. The store is never
// updated optimistically: it changes only once the service has answered, so a
// failure always leaves the last-known-good state in place.
type Workflow struct {
	Service DocumentService
	Store   *store.Store
	Confirm Confirmer
	Notify  Notifier

	inflight *tracker
}

// New wires a workflow. Confirm and Notify may be nil, in which case
// confirmations are auto-accepted and notifications dropped.
func New(svc DocumentService, st *store.Store, confirm Confirmer, notify Notifier) *Workflow {
	return &Workflow{
		Service:  svc,
		Store:    st,
		Confirm:  confirm,
		Notify:   notify,
		inflight: newTracker(),
	}
}

// CreateInput carries the form fields for a new document. The file must
// already be chosen; it is uploaded first to obtain a file ID.
type CreateInput struct {
	Title       string
	ServiceDate string
	Provider    string
	DocType     model.DocType
	Medication  string
	FileName    string
	File        io.Reader
}

// EditInput carries the form fields for a full edit.
type EditInput struct {
	Title       string
	ServiceDate string
	Provider    string
	DocType     model.DocType
	Medication  string
}

// Refresh fetches all documents and resets the store.
func (w *Workflow) Refresh(ctx context.Context) error {
	records, err := w.Service.FetchDocuments(ctx)
	if err != nil {
		w.notify("Fehler beim Laden der Dokumente.")
		return transportErr("fetch documents", err)
	}
	w.Store.Reset(records)
	return nil
}

// Create validates the input, uploads the file, creates the document and
// prepends the authoritative result. Validation failures reject locally; no
// service call is made.
func (w *Workflow) Create(ctx context.Context, in CreateInput) (model.DocumentRecord, error) {
	if err := validateFields(in.Title, in.ServiceDate, in.Provider, in.DocType); err != nil {
		return model.DocumentRecord{}, err
	}
	if in.File == nil {
		return model.DocumentRecord{}, ErrNoFile
	}

	key := uuid.NewString()
	tk := w.inflight.begin(key)
	defer w.inflight.end(key)

	fileID, err := w.Service.UploadFile(ctx, in.FileName, in.File)
	if err != nil {
		w.notifyTask(tk, "Fehler beim Speichern.")
		return model.DocumentRecord{}, transportErr("upload file", err)
	}

	created, err := w.Service.CreateDocument(ctx, CreatePayload{
		Title:          strings.TrimSpace(in.Title),
		ServiceDate:    in.ServiceDate,
		Provider:       strings.TrimSpace(in.Provider),
		DocType:        in.DocType,
		Medication:     medicationFor(in.DocType, in.Medication),
		FileID:         fileID,
		IdempotencyKey: key,
	})
	if err != nil {
		w.notifyTask(tk, "Fehler beim Speichern.")
		return model.DocumentRecord{}, transportErr("create document", err)
	}

	w.Store.PrependNew(created)
	return created, nil
}

// Edit validates the input and replaces the stored record with the service's
// authoritative result. Editing an unknown ID is a silent no-op.
func (w *Workflow) Edit(ctx context.Context, id string, in EditInput) (model.DocumentRecord, error) {
	if _, ok := w.Store.Get(id); !ok {
		return model.DocumentRecord{}, nil
	}
	if err := validateFields(in.Title, in.ServiceDate, in.Provider, in.DocType); err != nil {
		return model.DocumentRecord{}, err
	}

	tk := w.inflight.begin(id)
	defer w.inflight.end(id)

	updated, err := w.Service.UpdateDocument(ctx, id, UpdatePayload{
		Title:       strings.TrimSpace(in.Title),
		ServiceDate: in.ServiceDate,
		Provider:    strings.TrimSpace(in.Provider),
		DocType:     in.DocType,
		Medication:  medicationFor(in.DocType, in.Medication),
	})
	if err != nil {
		w.notifyTask(tk, "Fehler beim Speichern.")
		return model.DocumentRecord{}, transportErr("update document", err)
	}

	w.Store.Replace(updated)
	w.notifyTask(tk, "Gespeichert.")
	return updated, nil
}

// EditMedication updates only the medication of an existing record. The
// remaining fields are read back from the store and resent as a full payload
// because the service cannot update partially.
func (w *Workflow) EditMedication(ctx context.Context, id, medication string) (model.DocumentRecord, error) {
	current, ok := w.Store.Get(id)
	if !ok {
		return model.DocumentRecord{}, nil
	}
	med := strings.TrimSpace(medication)
	if med == "" {
		return model.DocumentRecord{}, missingField("medication")
	}

	tk := w.inflight.begin(id)
	defer w.inflight.end(id)

	updated, err := w.Service.UpdateDocument(ctx, id, UpdatePayload{
		Title:       current.Title,
		ServiceDate: current.ServiceDate,
		Provider:    current.Provider,
		DocType:     current.DocType,
		Medication:  med,
	})
	if err != nil {
		w.notifyTask(tk, "Fehler beim Speichern.")
		return model.DocumentRecord{}, transportErr("update medication", err)
	}

	w.Store.Replace(updated)
	return updated, nil
}

// Delete asks for confirmation, deletes the document on the service (which
// also discards the attached file) and evicts the local copy. Deleting an
// unknown ID is a silent no-op; a declined confirmation aborts before any
// network call.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	if _, ok := w.Store.Get(id); !ok {
		return nil
	}
	if !w.confirm("Willst du dieses Dokument wirklich löschen? Die Datei wird ebenfalls entfernt.") {
		return nil
	}

	tk := w.inflight.begin(id)
	defer w.inflight.end(id)

	if err := w.Service.DeleteDocument(ctx, id); err != nil {
		w.notifyTask(tk, "Fehler beim Löschen des Dokuments.")
		return transportErr("delete document", err)
	}

	w.Store.Remove(id)
	return nil
}

// DetachAll detaches every in-flight mutation. Results still land in the
// store when they arrive, but no further user feedback is shown for them.
func (w *Workflow) DetachAll() {
	w.inflight.detachAll()
}

func validateFields(title, serviceDate, provider string, docType model.DocType) error {
	if strings.TrimSpace(title) == "" {
		return missingField("title")
	}
	if strings.TrimSpace(serviceDate) == "" {
		return missingField("serviceDate")
	}
	if strings.TrimSpace(provider) == "" {
		return missingField("provider")
	}
	if !docType.Valid() {
		return missingField("docType")
	}
	return nil
}

// medicationFor clears the medication whenever the type is not a
// prescription, both on create and edit.
func medicationFor(docType model.DocType, medication string) string {
	if docType != model.DocTypePrescription {
		return ""
	}
	return strings.TrimSpace(medication)
}

func (w *Workflow) confirm(message string) bool {
	if w.Confirm == nil {
		return true
	}
	return w.Confirm(message)
}

func (w *Workflow) notify(message string) {
	if w.Notify != nil {
		w.Notify(message)
	}
}

func (w *Workflow) notifyTask(tk *task, message string) {
	if tk.isDetached() {
		return
	}
	w.notify(message)
}
