package store

import (
	"sort"
	"sync"

	"healthdocs-backend/docengine/model"
)

// Store is the authoritative in-memory record collection for one client
// session. Order is significant: newly created records sit at the front,
// everything else keeps its fetch position. The store never holds two
// records with the same ID.
type Store struct {
	mu      sync.RWMutex
	records []model.DocumentRecord
}

// New creates a Store seeded with the given records.
func New(records ...model.DocumentRecord) *Store {
	s := &Store{}
	s.Reset(records)
	return s
}

// Reset replaces the whole collection, typically after a fetch.
func (s *Store) Reset(records []model.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
	seen := make(map[string]int, len(records))
	for _, rec := range records {
		if idx, ok := seen[rec.ID]; ok && rec.ID != "" {
			s.records[idx] = rec
			continue
		}
		seen[rec.ID] = len(s.records)
		s.records = append(s.records, rec)
	}
}

// Snapshot returns a copy of the collection in store order.
func (s *Store) Snapshot() []model.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.DocumentRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (model.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == "" {
		return model.DocumentRecord{}, false
	}
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return model.DocumentRecord{}, false
}

// PrependNew inserts a freshly created record at the front of the
// collection, independent of its service date. If a record with the same ID
// already exists it is replaced in place instead.
func (s *Store) PrependNew(rec model.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return
		}
	}
	s.records = append([]model.DocumentRecord{rec}, s.records...)
}

// Replace swaps the stored record with the same ID for rec, keeping its
// position. It reports whether a record was found.
func (s *Store) Replace(rec model.DocumentRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return true
		}
	}
	return false
}

// Remove evicts the record with the given ID and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Providers returns the distinct non-empty provider names, sorted.
func (s *Store) Providers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range s.records {
		if rec.Provider == "" {
			continue
		}
		if _, ok := seen[rec.Provider]; ok {
			continue
		}
		seen[rec.Provider] = struct{}{}
		out = append(out, rec.Provider)
	}
	sort.Strings(out)
	return out
}
