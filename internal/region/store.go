package region

import (
	"sort"
	"sync"
)

// Store is an in-memory classification table keyed by region id.
// One writer may update it while render passes read.
type Store struct {
	mu      sync.RWMutex
	regions map[ID]Classification
}

// NewStore builds a store from the three region lists. When an id appears in
// more than one list the strongest classification wins:
// blacklisted > unlockable > locked.
func NewStore(locked, unlockable, blacklisted []ID) *Store {
	s := &Store{regions: make(map[ID]Classification, len(locked)+len(unlockable)+len(blacklisted))}
	for _, id := range locked {
		s.regions[id] = Locked
	}
	for _, id := range unlockable {
		s.regions[id] = Unlockable
	}
	for _, id := range blacklisted {
		s.regions[id] = Blacklisted
	}
	return s
}

// Classify returns the classification of id. Missing ids are Unclassified.
func (s *Store) Classify(id ID) Classification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regions[id]
}

// Set records c for id. Setting Unclassified removes the entry.
func (s *Store) Set(id ID, c Classification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == Unclassified {
		delete(s.regions, id)
		return
	}
	if s.regions == nil {
		s.regions = make(map[ID]Classification)
	}
	s.regions[id] = c
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.regions = make(map[ID]Classification)
	s.mu.Unlock()
}

// Len returns the number of classified regions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.regions)
}

// IDs returns the ids holding classification c in ascending order.
func (s *Store) IDs(c Classification) []ID {
	s.mu.RLock()
	var out []ID
	for id, got := range s.regions {
		if got == c {
			out = append(out, id)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
