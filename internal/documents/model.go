package documents

import "time"

// Document is a patient-owned medical document with its attachment reference.
// ServiceDate is the ISO yyyy-mm-dd date of the underlying visit or test, kept
// as a string because all ordering is lexicographic on the ISO form.
type Document struct {
	ID             string
	PatientID      string
	Title          string
	ServiceDate    string
	Provider       string
	DocType        string
	Medication     string
	Note           string
	FileID         string
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
