package domain

import (
	"encoding/json"
	"errors"
)

// ErrUnknownMutation is returned when a request body matches no mutation variant.
var ErrUnknownMutation = errors.New("request matches no mutation variant")

// Mutation is one of the three write operations the shared store accepts:
// Clear, Replace, or Patch.
type Mutation interface {
	isMutation()
}

// Clear empties the override map.
type Clear struct{}

// Replace installs the given map wholesale.
type Replace struct {
	Overrides Map
}

// Patch forces the Unlock ids open and the Lock ids closed over the existing
// map. Lock entries are applied after Unlock entries, so an id listed in both
// ends up locked.
type Patch struct {
	Unlock []int
	Lock   []int
}

func (Clear) isMutation()   {}
func (Replace) isMutation() {}
func (Patch) isMutation()   {}

// mutationBody is the raw request shape. The historical API accepted one
// object with every field optional; DecodeMutation resolves it into exactly
// one variant or rejects it.
type mutationBody struct {
	Action    string `json:"action,omitempty"`
	Overrides Map    `json:"overrides,omitempty"`
	Unlock    []int  `json:"unlock,omitempty"`
	Lock      []int  `json:"lock,omitempty"`
}

// DecodeMutation decodes a request body into a tagged Mutation.
// Accepted shapes:
//
//	{"action":"clear"}
//	{"action":"set","overrides":{...}}
//	{"unlock":[...],"lock":[...]}   (either list may be absent)
//
// Ids outside [MinItem, MaxItem] are dropped, matching the store's public
// behavior. Anything else fails with ErrUnknownMutation; malformed JSON
// fails with the decode error.
func DecodeMutation(data []byte) (Mutation, error) {
	var body mutationBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	switch body.Action {
	case "clear":
		return Clear{}, nil
	case "set":
		if body.Overrides == nil {
			return nil, ErrUnknownMutation
		}
		return Replace{Overrides: filterMap(body.Overrides)}, nil
	case "":
		if body.Unlock == nil && body.Lock == nil {
			return nil, ErrUnknownMutation
		}
		return Patch{Unlock: filterIDs(body.Unlock), Lock: filterIDs(body.Lock)}, nil
	default:
		return nil, ErrUnknownMutation
	}
}

// Apply returns the map produced by applying mut to cur. cur is not modified.
func Apply(cur Map, mut Mutation) Map {
	switch m := mut.(type) {
	case Clear:
		return Map{}
	case Replace:
		return m.Overrides.Clone()
	case Patch:
		next := cur.Clone()
		for _, id := range m.Unlock {
			next[id] = true
		}
		for _, id := range m.Lock {
			next[id] = false
		}
		return next
	default:
		return cur.Clone()
	}
}

func filterIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if ValidItem(id) {
			out = append(out, id)
		}
	}
	return out
}

func filterMap(m Map) Map {
	out := make(Map, len(m))
	for id, v := range m {
		if ValidItem(id) {
			out[id] = v
		}
	}
	return out
}
