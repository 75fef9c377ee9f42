// Package localstore persists a per-client override map in a JSON file.
// It is the client's own testing knob: entries here never leave the machine
// and never affect any other client. Reads fail open — an unreadable or
// corrupt file is an empty map, never an error.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"clue-calendar/backend/internal/override/domain"
)

// Store is a file-backed local override map.
type Store struct {
	path string
}

// New returns a Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Default returns a Store under the user's config directory
// (e.g. ~/.config/cluectl/overrides.json).
func Default() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("localstore: config dir: %w", err)
	}
	return New(filepath.Join(dir, "cluectl", "overrides.json")), nil
}

// Get returns the persisted map. Missing, unreadable, or corrupt storage
// reads as an empty map.
func (s *Store) Get() domain.Map {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Map{}
	}
	var m domain.Map
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return domain.Map{}
	}
	return m
}

// Set forces item to the given state and persists the map.
func (s *Store) Set(item int, open bool) error {
	if !domain.ValidItem(item) {
		return fmt.Errorf("localstore: item %d out of range", item)
	}
	m := s.Get()
	m[item] = open
	return s.write(m)
}

// Unset removes the override for item, if any.
func (s *Store) Unset(item int) error {
	m := s.Get()
	delete(m, item)
	return s.write(m)
}

// Clear removes every local override.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("localstore: clear: %w", err)
	}
	return nil
}

func (s *Store) write(m domain.Map) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("localstore: %w", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("localstore: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write: %w", err)
	}
	return nil
}
