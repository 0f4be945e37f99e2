package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Vocab represents a Latin-German vocabulary pair
type Vocab struct {
	Latin  string `json:"la"`
	German string `json:"de"`
}

// SortMode selects the displayed ordering of a vocabulary list
type SortMode string

const (
	SortDate     SortMode = "date"
	SortAlphabet SortMode = "alphabet"
)

// ParseSortMode falls back to SortDate for unknown values
func ParseSortMode(s string) SortMode {
	if SortMode(s) == SortAlphabet {
		return SortAlphabet
	}
	return SortDate
}

// Store is an ordered vocabulary collection, newest entries first.
// It is not safe for concurrent use.
type Store struct {
	entries []Vocab
}

// NewStore creates a store holding a copy of entries
func NewStore(entries []Vocab) *Store {
	s := &Store{entries: make([]Vocab, len(entries))}
	copy(s.entries, entries)
	return s
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns a copy of the entries in natural order
func (s *Store) All() []Vocab {
	out := make([]Vocab, len(s.entries))
	copy(out, s.entries)
	return out
}

// Add prepends a trimmed pair. Empty fields make it a no-op.
// Existing pairs are not checked, duplicates are allowed here.
func (s *Store) Add(latin, german string) bool {
	latin = strings.TrimSpace(latin)
	german = strings.TrimSpace(german)
	if latin == "" || german == "" {
		return false
	}

	s.entries = append([]Vocab{{Latin: latin, German: german}}, s.entries...)
	return true
}

// Merge prepends the entries whose pair is not present yet and returns them.
// Existing entries keep their order.
func (s *Store) Merge(entries []Vocab) []Vocab {
	seen := make(map[Vocab]struct{}, len(s.entries)+len(entries))
	for _, v := range s.entries {
		seen[v] = struct{}{}
	}

	added := make([]Vocab, 0, len(entries))
	for _, v := range entries {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		added = append(added, v)
	}

	if len(added) > 0 {
		s.entries = append(append(make([]Vocab, 0, len(added)+len(s.entries)), added...), s.entries...)
	}
	return added
}

// Sorted returns a copy of the entries in the displayed order for mode
func (s *Store) Sorted(mode SortMode) []Vocab {
	order := s.order(mode)
	out := make([]Vocab, len(order))
	for i, idx := range order {
		out[i] = s.entries[idx]
	}
	return out
}

// Delete removes the entry shown at index in the displayed order for mode
func (s *Store) Delete(index int, mode SortMode) bool {
	order := s.order(mode)
	if index < 0 || index >= len(order) {
		return false
	}

	target := order[index]
	s.entries = append(s.entries[:target:target], s.entries[target+1:]...)
	return true
}

// order maps displayed positions to positions in the natural order
func (s *Store) order(mode SortMode) []int {
	order := make([]int, len(s.entries))
	for i := range order {
		order[i] = i
	}

	if mode == SortAlphabet {
		c := collate.New(language.German)
		sort.SliceStable(order, func(a, b int) bool {
			return c.CompareString(s.entries[order[a]].Latin, s.entries[order[b]].Latin) < 0
		})
	}
	return order
}
