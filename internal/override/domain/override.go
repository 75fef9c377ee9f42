// Package domain holds the override map and the mutation variants accepted
// by the shared override store.
package domain

// Item ids are day numbers within one month.
const (
	MinItem = 1
	MaxItem = 31
)

// Map is an override map: presence of an entry forces the item open (true)
// or closed (false); absence means no override.
type Map map[int]bool

// Clone returns a copy of m. A nil map clones to an empty, non-nil map so
// callers can mutate the result.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValidItem reports whether id is a usable item id.
func ValidItem(id int) bool {
	return id >= MinItem && id <= MaxItem
}
