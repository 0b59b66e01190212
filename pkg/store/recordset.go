// Package store holds collected user records keyed by handle.
package store

import (
	"sync"

	"xfollow/pkg/models"
)

// RecordSet is an insertion-ordered set of user records keyed by handle.
// Entries are never overwritten; the first record stored for a handle wins.
type RecordSet struct {
	mu      sync.RWMutex
	order   []string
	records map[string]models.UserRecord
}

// NewRecordSet creates an empty set
func NewRecordSet() *RecordSet {
	return &RecordSet{
		records: make(map[string]models.UserRecord),
	}
}

// PutIfAbsent stores rec unless its handle is already present.
// It reports whether the record was added.
func (s *RecordSet) PutIfAbsent(rec models.UserRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.Handle]; exists {
		return false
	}
	s.records[rec.Handle] = rec
	s.order = append(s.order, rec.Handle)
	return true
}

// Has checks whether handle is present
func (s *RecordSet) Has(handle string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.records[handle]
	return exists
}

// Get returns the record stored for handle
func (s *RecordSet) Get(handle string) (models.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, exists := s.records[handle]
	return rec, exists
}

// Len returns the number of records
func (s *RecordSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Records returns a copy of all records in insertion order
func (s *RecordSet) Records() []models.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UserRecord, 0, len(s.order))
	for _, handle := range s.order {
		out = append(out, s.records[handle])
	}
	return out
}

// Each calls fn for every record in insertion order.
// fn must not modify s.
func (s *RecordSet) Each(fn func(models.UserRecord)) {
	for _, rec := range s.Records() {
		fn(rec)
	}
}

// Clear removes every record
func (s *RecordSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.records = make(map[string]models.UserRecord)
}
