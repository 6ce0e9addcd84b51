package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
// Medication and FileID travel as nullable fields to match the client wire
// format.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ServiceDate string    `json:"service_date"`
	Provider    string    `json:"provider"`
	DocType     string    `json:"doc_type"`
	Medication  *string   `json:"medication"`
	Note        string    `json:"note,omitempty"`
	FileID      *string   `json:"file_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		Title:       doc.Title,
		ServiceDate: doc.ServiceDate,
		Provider:    doc.Provider,
		DocType:     doc.DocType,
		Medication:  nullable(doc.Medication),
		Note:        doc.Note,
		FileID:      nullable(doc.FileID),
		CreatedAt:   doc.CreatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
