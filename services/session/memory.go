package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	mu    sync.Mutex
	state State
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memoryEntry)}
}

func (m *MemoryStore) Create(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[st.ID] = &memoryEntry{state: st.Clone()}
	return nil
}

func (m *MemoryStore) entry(id string) (*memoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (State, error) {
	e, err := m.entry(id)
	if err != nil {
		return State{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*State) error) (State, error) {
	e, err := m.entry(id)
	if err != nil {
		return State{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state.Clone()
	if err := fn(&next); err != nil {
		return State{}, err
	}
	next.UpdatedAt = time.Now()
	e.state = next
	return next.Clone(), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep drops sessions not touched since olderThan and reports how many went.
func (m *MemoryStore) Sweep(olderThan time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		stale := e.state.UpdatedAt.Before(olderThan)
		e.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
