package views

import (
	"strings"

	"healthdocs-backend/docengine/model"
)

// FieldsFunc supplies the derived text fields a record is matched against.
type FieldsFunc func(model.DocumentRecord) []string

// DefaultFields matches on the formatted service date, provider, title and
// note text.
func DefaultFields(rec model.DocumentRecord) []string {
	return []string{
		model.FormatDate(rec.ServiceDate),
		rec.Provider,
		rec.Title,
		rec.Note,
	}
}

// SearchList filters a flat view by case-insensitive substring match over the
// supplied fields. An empty query returns the view unchanged.
func SearchList(v ListView, query string, fields FieldsFunc) ListView {
	q := normalizeQuery(query)
	if q == "" {
		return v
	}
	if fields == nil {
		fields = DefaultFields
	}
	var out []model.DocumentRecord
	for _, rec := range v.Records {
		if matches(rec, q, fields) {
			out = append(out, rec)
		}
	}
	return ListView{Records: out, NoRecords: v.NoRecords}
}

// SearchGroups filters a grouped view record-wise; groups left empty by the
// filter are dropped. An empty query returns the view unchanged.
func SearchGroups(v GroupedView, query string, fields FieldsFunc) GroupedView {
	q := normalizeQuery(query)
	if q == "" {
		return v
	}
	if fields == nil {
		fields = DefaultFields
	}
	var groups []Group
	for _, g := range v.Groups {
		var recs []model.DocumentRecord
		for _, rec := range g.Records {
			if matches(rec, q, fields) {
				recs = append(recs, rec)
			}
		}
		if len(recs) > 0 {
			groups = append(groups, Group{Label: g.Label, Records: recs})
		}
	}
	return GroupedView{Groups: groups, NoRecords: v.NoRecords}
}

// SearchGroupLabels keeps only groups whose label matches the query, the way
// the medication list narrows as the user types. An empty query returns the
// view unchanged.
func SearchGroupLabels(v GroupedView, query string) GroupedView {
	q := normalizeQuery(query)
	if q == "" {
		return v
	}
	var groups []Group
	for _, g := range v.Groups {
		if strings.Contains(strings.ToLower(g.Label), q) {
			groups = append(groups, g)
		}
	}
	return GroupedView{Groups: groups, NoRecords: v.NoRecords}
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matches(rec model.DocumentRecord, q string, fields FieldsFunc) bool {
	for _, f := range fields(rec) {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
