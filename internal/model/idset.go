package model

import (
	"encoding/json"
	"sort"
)

// IDSet is a set of entity ids. The zero value is ready to use for reads;
// Add initializes it lazily through a pointer receiver.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids, skipping empty ones.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Add inserts id. Empty ids are ignored.
func (s *IDSet) Add(id string) {
	if id == "" {
		return
	}
	if *s == nil {
		*s = make(IDSet)
	}
	(*s)[id] = struct{}{}
}

// Remove deletes id if present.
func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids.
func (s IDSet) Len() int {
	return len(s)
}

// Slice returns the ids in ascending order.
func (s IDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of ids, dropping duplicates.
func (s *IDSet) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
