package model

import "time"

// DocType classifies a document record. The set is closed; the wire format
// carries the canonical snake_case value while Label returns the de-CH
// presentation text.
type DocType string

const (
	DocTypeBloodPanel   DocType = "blood_panel"
	DocTypeFinding      DocType = "finding"
	DocTypePrescription DocType = "prescription"
	DocTypeImaging      DocType = "imaging"
	DocTypeReport       DocType = "report"
	DocTypeOther        DocType = "other"
	DocTypeDoctorNote   DocType = "doctor_note"
)

// DocTypes returns all document types in presentation order.
func DocTypes() []DocType {
	return []DocType{
		DocTypeBloodPanel,
		DocTypeFinding,
		DocTypePrescription,
		DocTypeImaging,
		DocTypeReport,
		DocTypeOther,
		DocTypeDoctorNote,
	}
}

// Valid reports whether t is a member of the closed enumeration.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeBloodPanel, DocTypeFinding, DocTypePrescription,
		DocTypeImaging, DocTypeReport, DocTypeOther, DocTypeDoctorNote:
		return true
	}
	return false
}

// Label returns the localized display name for the document type.
func (t DocType) Label() string {
	switch t {
	case DocTypeBloodPanel:
		return "Blutbild"
	case DocTypeFinding:
		return "Befund"
	case DocTypePrescription:
		return "Rezept"
	case DocTypeImaging:
		return "Bildgebung"
	case DocTypeReport:
		return "Bericht"
	case DocTypeOther:
		return "Sonstiges"
	case DocTypeDoctorNote:
		return "Arztzeugnis"
	}
	return ""
}

// ParseDocType maps a wire value to a DocType.
func ParseDocType(raw string) (DocType, bool) {
	t := DocType(raw)
	return t, t.Valid()
}

// DocumentRecord is a single medical document as held by the client session.
// ID is assigned by the document service and is present iff the record has
// been persisted. Medication is meaningful only for prescriptions. Note is
// optional free text derived from the attachment. An empty FileID means no
// file is attached.
type DocumentRecord struct {
	ID          string
	Title       string
	ServiceDate string // ISO 8601 calendar date (yyyy-mm-dd)
	Provider    string
	DocType     DocType
	Medication  string
	Note        string
	FileID      string
}

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02.01.2006"
)

// FormatDate renders an ISO date in de-CH notation (dd.mm.yyyy). Values that
// do not parse are returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(displayDateLayout)
}
