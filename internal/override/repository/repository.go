// Package repository persists the shared override map.
package repository

import (
	"context"

	"clue-calendar/backend/internal/override/domain"
)

// Repository is the shared override store. Writes follow a read-modify-write
// sequence over the whole map with last-write-wins semantics; there is one
// operator credential, so concurrent self-conflict is out of scope.
type Repository interface {
	// Get returns the current override map. A store that has never been
	// written reads as an empty map, not an error.
	Get(ctx context.Context) (domain.Map, error)
	// Replace installs m wholesale and returns the stored map.
	Replace(ctx context.Context, m domain.Map) (domain.Map, error)
	// Patch forces unlock ids open then lock ids closed over the existing
	// map and returns the result. Lock entries are applied after unlock
	// entries, so an id listed in both ends up locked.
	Patch(ctx context.Context, unlock, lock []int) (domain.Map, error)
	// Clear empties the map.
	Clear(ctx context.Context) error
}

// Mutate applies a tagged mutation through repo and returns the resulting map.
func Mutate(ctx context.Context, repo Repository, mut domain.Mutation) (domain.Map, error) {
	switch m := mut.(type) {
	case domain.Clear:
		if err := repo.Clear(ctx); err != nil {
			return nil, err
		}
		return domain.Map{}, nil
	case domain.Replace:
		return repo.Replace(ctx, m.Overrides)
	case domain.Patch:
		return repo.Patch(ctx, m.Unlock, m.Lock)
	default:
		return nil, domain.ErrUnknownMutation
	}
}
