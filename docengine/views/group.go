package views

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"healthdocs-backend/docengine/model"
)

// UnknownGroup is the bucket label for records missing a grouping key, so
// every record lands in exactly one group per dimension.
const UnknownGroup = "Unbekannt"

// Group is one labeled bucket of records, newest first.
type Group struct {
	Label   string
	Records []model.DocumentRecord
}

// GroupedView is a grouped presentation of the record collection. NoRecords
// distinguishes an empty collection from a search with no matches.
type GroupedView struct {
	Groups    []Group
	NoRecords bool
}

// ListView is a flat presentation of the record collection.
type ListView struct {
	Records   []model.DocumentRecord
	NoRecords bool
}

// KeyFunc derives the grouping key for a record.
type KeyFunc func(model.DocumentRecord) string

// GroupBy partitions records by key(record), falling back to fallback for an
// empty key. Records inside a group are sorted by service date descending
// (stable, so equal dates keep their fetch order); groups are ordered by
// label ascending using locale-aware comparison.
func GroupBy(records []model.DocumentRecord, key KeyFunc, fallback string) GroupedView {
	buckets := make(map[string][]model.DocumentRecord)
	var labels []string
	for _, rec := range records {
		k := key(rec)
		if k == "" {
			k = fallback
		}
		if _, ok := buckets[k]; !ok {
			labels = append(labels, k)
		}
		buckets[k] = append(buckets[k], rec)
	}

	sortLabels(labels)

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		recs := buckets[label]
		sortByServiceDateDesc(recs)
		groups = append(groups, Group{Label: label, Records: recs})
	}
	return GroupedView{Groups: groups, NoRecords: len(records) == 0}
}

// ByProvider groups records by provider name.
func ByProvider(records []model.DocumentRecord) GroupedView {
	return GroupBy(records, func(r model.DocumentRecord) string { return r.Provider }, UnknownGroup)
}

// ByDocType groups records by their localized document type label.
func ByDocType(records []model.DocumentRecord) GroupedView {
	return GroupBy(records, func(r model.DocumentRecord) string { return r.DocType.Label() }, UnknownGroup)
}

// Timeline returns all records flat, newest first.
func Timeline(records []model.DocumentRecord) ListView {
	out := make([]model.DocumentRecord, len(records))
	copy(out, records)
	sortByServiceDateDesc(out)
	return ListView{Records: out, NoRecords: len(records) == 0}
}

// ByMedication groups prescription records by their trimmed medication name.
// Records without a medication are excluded entirely rather than bucketed.
func ByMedication(records []model.DocumentRecord) GroupedView {
	buckets := make(map[string][]model.DocumentRecord)
	var labels []string
	for _, rec := range records {
		med := strings.TrimSpace(rec.Medication)
		if med == "" {
			continue
		}
		if _, ok := buckets[med]; !ok {
			labels = append(labels, med)
		}
		buckets[med] = append(buckets[med], rec)
	}

	sortLabels(labels)

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		recs := buckets[label]
		sortByServiceDateDesc(recs)
		groups = append(groups, Group{Label: label, Records: recs})
	}
	return GroupedView{Groups: groups, NoRecords: len(groups) == 0}
}

// DoctorNotes returns the doctor's note records, newest first.
func DoctorNotes(records []model.DocumentRecord) ListView {
	var notes []model.DocumentRecord
	for _, rec := range records {
		if rec.DocType == model.DocTypeDoctorNote {
			notes = append(notes, rec)
		}
	}
	sortByServiceDateDesc(notes)
	return ListView{Records: notes, NoRecords: len(notes) == 0}
}

// ISO dates compare correctly as strings because they are zero-padded.
func sortByServiceDateDesc(recs []model.DocumentRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].ServiceDate > recs[j].ServiceDate
	})
}

func sortLabels(labels []string) {
	c := collate.New(language.German)
	c.SortStrings(labels)
}
