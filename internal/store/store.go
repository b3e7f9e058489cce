// Package store persists vehicle records. Two backends are provided: an
// in-memory map for single-process use and memcached for shared deployments.
package store

import (
	"context"
	"sync"

	"github.com/kjstillabower/vehicle-fleet-service/internal/models"
)

// Store is the persistence interface for vehicle records.
// Get returns found=false, err=nil on a missing id. Put overwrites.
// List returns records in registration order.
type Store interface {
	Get(ctx context.Context, id string) (models.VehicleRecord, bool, error)
	Put(ctx context.Context, rec models.VehicleRecord) error
	List(ctx context.Context) ([]models.VehicleRecord, error)
}

// InMemoryStore implements Store with a mutex-guarded map. Safe for
// concurrent use by HTTP handlers.
type InMemoryStore struct {
	mu    sync.RWMutex
	data  map[string]models.VehicleRecord
	order []string // registration order for List
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]models.VehicleRecord),
	}
}

// Get retrieves the record for id if present.
func (s *InMemoryStore) Get(ctx context.Context, id string) (models.VehicleRecord, bool, error) {
	if ctx.Err() != nil {
		return models.VehicleRecord{}, false, ctx.Err()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[id]
	return rec, ok, nil
}

// Put stores the record under its ID, overwriting any previous value.
func (s *InMemoryStore) Put(ctx context.Context, rec models.VehicleRecord) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.data[rec.ID] = rec
	return nil
}

// List returns all records in the order they were first stored.
func (s *InMemoryStore) List(ctx context.Context) ([]models.VehicleRecord, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VehicleRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out, nil
}
