package workflow

import (
	"context"
	"os"
	"time"
)

// releaseGracePeriod matches how long a fetched attachment stays available
// before its local handle is discarded.
const releaseGracePeriod = 60 * time.Second

// FileHandle is a transient local copy of an attachment. It removes itself
// after the grace period; Close releases it early.
type FileHandle struct {
	Path        string
	ContentType string

	timer *time.Timer
}

// Close releases the handle immediately.
func (h *FileHandle) Close() error {
	if h.timer != nil {
		h.timer.Stop()
	}
	return os.Remove(h.Path)
}

// OpenFile fetches the attachment of a record and materializes it as a
// temporary file for viewing. It has no effect on the record store. Records
// without an ID or without an attachment yield a nil handle.
func (w *Workflow) OpenFile(ctx context.Context, id string) (*FileHandle, error) {
	rec, ok := w.Store.Get(id)
	if !ok || rec.FileID == "" {
		return nil, nil
	}

	data, contentType, err := w.Service.FetchFileBytes(ctx, rec.ID)
	if err != nil {
		w.notify("Fehler beim Oeffnen der Datei.")
		return nil, transportErr("fetch file", err)
	}

	f, err := os.CreateTemp("", "healthdocs-*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	handle := &FileHandle{Path: f.Name(), ContentType: contentType}
	path := f.Name()
	handle.timer = time.AfterFunc(releaseGracePeriod, func() {
		os.Remove(path)
	})
	return handle, nil
}
