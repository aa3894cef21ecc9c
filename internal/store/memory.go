// internal/store/memory.go
//
// In-memory implementation of the Store interface for live solving sessions.
//
// Characteristics:
//   - Stores *session.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; guess history is never persisted.
//   - Update runs a callback under the write lock so handlers can mutate a
//     session without racing other requests for the same ID.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/clawsolver/internal/session"
)

// Store defines the persistence interface for solving sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	// Returns session.ErrUnknownSession if missing.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Update applies fn to the stored session while holding the write lock.
	Update(ctx context.Context, id string, fn func(*session.Session) error) error

	// Delete removes a session; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune drops sessions not updated since cutoff and returns how many went.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*session.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get returns the stored pointer; callers that mutate must go through Update.
func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, session.ErrUnknownSession
}

func (m *memory) Update(ctx context.Context, id string, fn func(*session.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.ErrUnknownSession
	}
	return fn(s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
