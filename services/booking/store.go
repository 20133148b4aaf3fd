// Package booking keeps the events a visitor chose to book during a session.
package booking

import (
	"encoding/json"
	"sync"

	"eventkompass/models"
)

// Store is an ordered, id-unique list of booked events, most recent first.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []models.EventItem
}

// NewStore returns a store holding items in the given order. Later duplicates
// of an id are dropped.
func NewStore(items ...models.EventItem) *Store {
	s := &Store{}
	for _, it := range items {
		if s.indexOf(it.ID) < 0 {
			s.items = append(s.items, it)
		}
	}
	return s
}

// Add prepends ev unless an event with the same id is already stored.
// It reports whether the store changed.
func (s *Store) Add(ev models.EventItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(ev.ID) >= 0 {
		return false
	}
	s.items = append([]models.EventItem{ev}, s.items...)
	return true
}

// Put validates ev before adding it.
func (s *Store) Put(ev models.EventItem) (bool, error) {
	if err := validateEvent(ev); err != nil {
		return false, err
	}
	return s.Add(ev), nil
}

// Remove deletes the event with id. Absent ids are a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// Clear drops every booking.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// List returns a copy of the bookings, most recent first.
func (s *Store) List() []models.EventItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EventItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// caller holds the lock
func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *Store) UnmarshalJSON(data []byte) error {
	var items []models.EventItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	fresh := NewStore(items...)

	s.mu.Lock()
	s.items = fresh.items
	s.mu.Unlock()
	return nil
}
