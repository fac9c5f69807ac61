package wizard

import (
	"context"
	"sync"
	"time"
)

// Store persists transient wizard sessions.
type Store interface {
	Create(ctx context.Context, state *State) error
	Get(ctx context.Context, sessionID string) (*State, error)
	// Update loads the session, applies fn, and saves the result atomically.
	// When fn returns an error nothing is saved.
	Update(ctx context.Context, sessionID string, fn func(*State) error) (*State, error)
	// Delete drops the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory with a sliding TTL.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	state     *State
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store. A zero ttl never expires sessions.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

// Create stores a new session.
func (m *MemoryStore) Create(ctx context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.SessionID] = m.entry(state.clone())
	return nil
}

// Get returns a copy of the session.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e.state.clone(), nil
}

// Update applies fn under the store lock.
func (m *MemoryStore) Update(ctx context.Context, sessionID string, fn func(*State) error) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	working := e.state.clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	m.sessions[sessionID] = m.entry(working)
	return working.clone(), nil
}

// Delete removes the session if present.
func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Len reports how many live sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id := range m.sessions {
		if _, ok := m.lookup(id); ok {
			n++
		}
	}
	return n
}

func (m *MemoryStore) lookup(sessionID string) (memoryEntry, bool) {
	e, ok := m.sessions[sessionID]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.sessions, sessionID)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) entry(state *State) memoryEntry {
	e := memoryEntry{state: state}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	return e
}

func (s *State) clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Answers = make(Answers, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	return &out
}
