package store

import (
	"reflect"
	"testing"

	"healthdocs-backend/docengine/model"
)

func doc(id, title string) model.DocumentRecord {
	return model.DocumentRecord{ID: id, Title: title, ServiceDate: "2024-01-01", Provider: "Clinic X", DocType: model.DocTypeFinding}
}

func TestPrependNewPutsRecordFirst(t *testing.T) {
	s := New(doc("1", "A"), doc("2", "B"))
	s.PrependNew(doc("3", "C"))

	snap := s.Snapshot()
	if snap[0].ID != "3" {
		t.Fatalf("expected new record first, got %s", snap[0].ID)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", s.Len())
	}
}

func TestPrependNewReplacesExistingID(t *testing.T) {
	s := New(doc("1", "A"), doc("2", "B"))
	s.PrependNew(doc("2", "B2"))

	if s.Len() != 2 {
		t.Fatalf("duplicate ID must replace, not append; len=%d", s.Len())
	}
	got, _ := s.Get("2")
	if got.Title != "B2" {
		t.Fatalf("expected replaced title B2, got %s", got.Title)
	}
	snap := s.Snapshot()
	if snap[1].ID != "2" {
		t.Fatalf("replacement must keep position")
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	s := New(doc("1", "A"), doc("2", "B"), doc("3", "C"))
	if !s.Replace(doc("2", "B2")) {
		t.Fatalf("expected replace to find record 2")
	}
	snap := s.Snapshot()
	if snap[1].ID != "2" || snap[1].Title != "B2" {
		t.Fatalf("expected B2 at position 1, got %+v", snap[1])
	}
}

func TestReplaceUnknownIDReportsFalse(t *testing.T) {
	s := New(doc("1", "A"))
	if s.Replace(doc("9", "X")) {
		t.Fatalf("replace of unknown ID must report false")
	}
	if s.Len() != 1 {
		t.Fatalf("replace of unknown ID must not mutate")
	}
}

func TestRemove(t *testing.T) {
	s := New(doc("1", "A"), doc("2", "B"))
	if !s.Remove("1") {
		t.Fatalf("expected remove to succeed")
	}
	if _, ok := s.Get("1"); ok {
		t.Fatalf("record 1 still present after remove")
	}
	if s.Remove("1") {
		t.Fatalf("second remove must report false")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(doc("1", "A"))
	snap := s.Snapshot()
	snap[0].Title = "mutated"
	got, _ := s.Get("1")
	if got.Title != "A" {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}

func TestProvidersDistinctSorted(t *testing.T) {
	s := New(
		model.DocumentRecord{ID: "1", Provider: "Praxis Y"},
		model.DocumentRecord{ID: "2", Provider: "Clinic X"},
		model.DocumentRecord{ID: "3", Provider: "Clinic X"},
		model.DocumentRecord{ID: "4", Provider: ""},
	)
	got := s.Providers()
	want := []string{"Clinic X", "Praxis Y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResetDropsDuplicateIDs(t *testing.T) {
	s := New()
	s.Reset([]model.DocumentRecord{doc("1", "A"), doc("1", "A2"), doc("2", "B")})
	if s.Len() != 2 {
		t.Fatalf("expected duplicates collapsed, len=%d", s.Len())
	}
	got, _ := s.Get("1")
	if got.Title != "A2" {
		t.Fatalf("last write should win, got %s", got.Title)
	}
}
