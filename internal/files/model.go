package files

import "time"

// File is an uploaded attachment owned by a patient. Note holds a short text
// snippet extracted from the content, when the format supports it.
type File struct {
	ID         string
	PatientID  string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	Note       string
	CreatedAt  time.Time
}
