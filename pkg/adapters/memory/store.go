// Package memory provides an in-memory RecordStore, useful for tests and
// embedded scenarios without external infrastructure.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/picket/pkg/ports"
	"github.com/aretw0/picket/pkg/record"
)

// Store implements ports.RecordStore with a guarded map.
// Records are immutable, so the map holds them directly without copying.
type Store struct {
	mu      sync.RWMutex
	records map[string]*record.Mapping
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]*record.Mapping),
	}
}

// Save persists the record under the given ID.
func (s *Store) Save(_ context.Context, id string, rec *record.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
	return nil
}

// Load retrieves a record by ID.
func (s *Store) Load(_ context.Context, id string) (*record.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ports.ErrRecordNotFound
	}
	return rec, nil
}

// Delete removes a record by ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// List returns the IDs of all stored records.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids, nil
}
