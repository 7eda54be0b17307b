package market

import (
	"fmt"
	"sync"
)

// Store is the single keyed container for listings. One instance is owned by
// the session and injected into every collaborator; no screen holds its own
// copy. It carries no transition logic.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]Listing
	order []string
}

func NewStore() *Store {
	return &Store{byID: make(map[string]Listing)}
}

// Get returns the listing by id, or ErrNotFound.
func (s *Store) Get(id string) (Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return Listing{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return l, nil
}

// Upsert inserts or replaces a listing. A duplicate id overwrites; insertion
// order is preserved from the first insert.
func (s *Store) Upsert(l Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[l.ID]; !ok {
		s.order = append(s.order, l.ID)
	}
	s.byID[l.ID] = l
}

// List returns listings matching pred in insertion order. A nil pred matches
// everything.
func (s *Store) List(pred func(Listing) bool) []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Listing, 0, len(s.order))
	for _, id := range s.order {
		l := s.byID[id]
		if pred == nil || pred(l) {
			out = append(out, l)
		}
	}
	return out
}

// Len reports the number of stored listings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
