package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database is
// configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // patientID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Create stores a new document for a patient.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.PatientID] = append(r.data[doc.PatientID], doc)
	return nil
}

// GetByID returns a document by ID for a patient.
func (r *MemoryRepo) GetByID(ctx context.Context, patientID, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[patientID] {
		if doc.ID == id {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// GetByIdempotencyKey returns the document created under the given key, if any.
func (r *MemoryRepo) GetByIdempotencyKey(ctx context.Context, patientID, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if key == "" {
		return Document{}, ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[patientID] {
		if doc.IdempotencyKey == key {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByPatient returns the patient's documents, newest first.
func (r *MemoryRepo) ListByPatient(ctx context.Context, patientID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.data[patientID]
	docs := make([]Document, len(stored))
	copy(docs, stored)
	r.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// Update replaces the stored document matching on patient and ID.
func (r *MemoryRepo) Update(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[doc.PatientID]
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			r.data[doc.PatientID] = docs
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a document.
func (r *MemoryRepo) Delete(ctx context.Context, patientID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[patientID]
	for i := range docs {
		if docs[i].ID == id {
			r.data[patientID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
