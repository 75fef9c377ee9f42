package repository

import (
	"context"
	"sync"

	"clue-calendar/backend/internal/override/domain"
)

// MemoryRepository keeps the override map in process memory. Used when no
// DATABASE_URL is configured (local development) and in tests. Contents do
// not survive a restart.
type MemoryRepository struct {
	mu sync.Mutex
	m  domain.Map
}

// NewMemoryRepository returns an empty in-memory override repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: domain.Map{}}
}

// Get returns a copy of the current map.
func (r *MemoryRepository) Get(ctx context.Context) (domain.Map, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m.Clone(), nil
}

// Replace installs m wholesale and returns the stored map.
func (r *MemoryRepository) Replace(ctx context.Context, m domain.Map) (domain.Map, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = m.Clone()
	return r.m.Clone(), nil
}

// Patch applies unlock then lock ids over the existing map.
func (r *MemoryRepository) Patch(ctx context.Context, unlock, lock []int) (domain.Map, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = domain.Apply(r.m, domain.Patch{Unlock: unlock, Lock: lock})
	return r.m.Clone(), nil
}

// Clear empties the map.
func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = domain.Map{}
	return nil
}
