package files

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]File // patientID -> fileID -> file
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]File),
	}
}

// Create stores a new file row.
func (r *MemoryRepo) Create(ctx context.Context, f File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data[f.PatientID] == nil {
		r.data[f.PatientID] = make(map[string]File)
	}
	r.data[f.PatientID][f.ID] = f
	return nil
}

// GetByID returns a file by ID for a patient.
func (r *MemoryRepo) GetByID(ctx context.Context, patientID, id string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.data[patientID][id]
	if !ok {
		return File{}, ErrNotFound
	}
	return f, nil
}

// Delete removes a file row.
func (r *MemoryRepo) Delete(ctx context.Context, patientID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[patientID][id]; !ok {
		return ErrNotFound
	}
	delete(r.data[patientID], id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
