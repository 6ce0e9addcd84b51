package model

// WireDocument is the snake_case representation the document service speaks.
// The mapping to DocumentRecord is total and lossless in both directions:
// optional fields travel as null and land as empty strings.
type WireDocument struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ServiceDate string  `json:"service_date"`
	Provider    string  `json:"provider"`
	DocType     string  `json:"doc_type"`
	Medication  *string `json:"medication"`
	Note        *string `json:"note,omitempty"`
	FileID      *string `json:"file_id"`
}

// Wire converts the record to its wire shape.
func (d DocumentRecord) Wire() WireDocument {
	return WireDocument{
		ID:          d.ID,
		Title:       d.Title,
		ServiceDate: d.ServiceDate,
		Provider:    d.Provider,
		DocType:     string(d.DocType),
		Medication:  optional(d.Medication),
		Note:        optional(d.Note),
		FileID:      optional(d.FileID),
	}
}

// FromWire converts a wire document into the in-memory record.
func FromWire(w WireDocument) DocumentRecord {
	return DocumentRecord{
		ID:          w.ID,
		Title:       w.Title,
		ServiceDate: w.ServiceDate,
		Provider:    w.Provider,
		DocType:     DocType(w.DocType),
		Medication:  deref(w.Medication),
		Note:        deref(w.Note),
		FileID:      deref(w.FileID),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
