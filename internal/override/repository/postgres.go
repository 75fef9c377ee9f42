package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clue-calendar/backend/internal/override/domain"
)

// The shared map lives in a single JSONB row; every write replaces the whole
// document, which is what gives the store its last-write-wins semantics.
const stateRowID = 1

// PostgresRepository stores the override map in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an override repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the stored override map. A missing row or empty document reads
// as an empty map; only database failures are errors.
func (r *PostgresRepository) Get(ctx context.Context) (domain.Map, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT overrides FROM override_state WHERE id = $1`, stateRowID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Map{}, nil
		}
		return nil, fmt.Errorf("override: get: %w", err)
	}
	return decodeMap(raw)
}

// Replace installs m wholesale and returns the stored map.
func (r *PostgresRepository) Replace(ctx context.Context, m domain.Map) (domain.Map, error) {
	next := m.Clone()
	if err := r.write(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Patch reads the current map, applies unlock then lock ids, and writes the
// whole map back. The read-modify-write is not isolated from concurrent
// writers; the last full-map write wins.
func (r *PostgresRepository) Patch(ctx context.Context, unlock, lock []int) (domain.Map, error) {
	cur, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := domain.Apply(cur, domain.Patch{Unlock: unlock, Lock: lock})
	if err := r.write(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear empties the stored map.
func (r *PostgresRepository) Clear(ctx context.Context) error {
	return r.write(ctx, domain.Map{})
}

func (r *PostgresRepository) write(ctx context.Context, m domain.Map) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("override: encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO override_state (id, overrides, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET overrides = EXCLUDED.overrides, updated_at = EXCLUDED.updated_at`,
		stateRowID, raw, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("override: write: %w", err)
	}
	return nil
}

func decodeMap(raw []byte) (domain.Map, error) {
	if len(raw) == 0 {
		return domain.Map{}, nil
	}
	var m domain.Map
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("override: decode stored map: %w", err)
	}
	if m == nil {
		m = domain.Map{}
	}
	return m, nil
}
