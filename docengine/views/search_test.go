package views

import (
	"reflect"
	"testing"

	"healthdocs-backend/docengine/model"
)

func searchFixture() []model.DocumentRecord {
	return []model.DocumentRecord{
		{ID: "1", Title: "MRI Knie", ServiceDate: "2024-01-05", Provider: "USZ Zuerich", DocType: model.DocTypeImaging},
		{ID: "2", Title: "Blutbild Frühling", ServiceDate: "2024-03-01", Provider: "Praxis Meier", DocType: model.DocTypeBloodPanel},
		{ID: "3", Title: "Zeugnis", ServiceDate: "2024-02-10", Provider: "Praxis Meier", DocType: model.DocTypeDoctorNote, Note: "Arbeitsunfähig"},
	}
}

func TestSearchListEmptyQueryIsNoOp(t *testing.T) {
	v := Timeline(searchFixture())
	got := SearchList(v, "", DefaultFields)
	if !reflect.DeepEqual(got, v) {
		t.Fatalf("empty query changed the view")
	}
	got = SearchList(v, "   ", DefaultFields)
	if !reflect.DeepEqual(got, v) {
		t.Fatalf("whitespace query changed the view")
	}
}

func TestSearchListMatchesDerivedFields(t *testing.T) {
	v := Timeline(searchFixture())

	// Formatted date, not the ISO form.
	byDate := SearchList(v, "05.01.2024", DefaultFields)
	if len(byDate.Records) != 1 || byDate.Records[0].ID != "1" {
		t.Fatalf("date search failed: %+v", byDate.Records)
	}

	byProvider := SearchList(v, "meier", DefaultFields)
	if len(byProvider.Records) != 2 {
		t.Fatalf("provider search expected 2 hits, got %d", len(byProvider.Records))
	}

	byNote := SearchList(v, "arbeitsunf", DefaultFields)
	if len(byNote.Records) != 1 || byNote.Records[0].ID != "3" {
		t.Fatalf("note search failed: %+v", byNote.Records)
	}
}

func TestSearchListIdempotent(t *testing.T) {
	v := Timeline(searchFixture())
	once := SearchList(v, "praxis", DefaultFields)
	twice := SearchList(once, "praxis", DefaultFields)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("search is not idempotent")
	}
}

func TestSearchGroupsDropsEmptyGroups(t *testing.T) {
	v := ByProvider(searchFixture())
	got := SearchGroups(v, "mri", DefaultFields)
	if len(got.Groups) != 1 {
		t.Fatalf("expected 1 surviving group, got %d", len(got.Groups))
	}
	if got.Groups[0].Label != "USZ Zuerich" {
		t.Fatalf("unexpected group %q", got.Groups[0].Label)
	}
	if got.NoRecords {
		t.Fatalf("NoRecords must stay false for a no-match filter")
	}
}

func TestSearchGroupsEmptyQueryPreservesOrder(t *testing.T) {
	v := ByProvider(searchFixture())
	got := SearchGroups(v, "", DefaultFields)
	if !reflect.DeepEqual(got, v) {
		t.Fatalf("empty query changed the grouped view")
	}
}

func TestSearchGroupLabels(t *testing.T) {
	records := []model.DocumentRecord{
		{ID: "1", ServiceDate: "2024-01-01", DocType: model.DocTypePrescription, Medication: "Aspirin Cardio 100 mg"},
		{ID: "2", ServiceDate: "2024-01-02", DocType: model.DocTypePrescription, Medication: "Dafalgan 1 g"},
	}
	v := ByMedication(records)

	got := SearchGroupLabels(v, "aspirin")
	if len(got.Groups) != 1 || got.Groups[0].Label != "Aspirin Cardio 100 mg" {
		t.Fatalf("label filter failed: %+v", got.Groups)
	}

	all := SearchGroupLabels(v, "")
	if len(all.Groups) != 2 {
		t.Fatalf("empty query should keep all groups")
	}
}
