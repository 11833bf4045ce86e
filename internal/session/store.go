package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps live session states in memory, keyed by session ID. Nothing
// is persisted; a process restart starts every user fresh.
type Store struct {
	mu     sync.Mutex
	states map[string]*State
	maxAge time.Duration
	now    func() time.Time
}

// NewStore creates a store. Sessions older than maxAge are dropped by
// Sweep; zero keeps them forever.
func NewStore(maxAge time.Duration) *Store {
	return &Store{
		states: make(map[string]*State),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Create starts a new session with a fresh UUID.
func (s *Store) Create() *State {
	st := NewState(uuid.New().String())
	st.StartedAt = s.now()
	s.mu.Lock()
	s.states[st.ID] = st
	s.mu.Unlock()
	return st
}

// Get returns the session for id.
func (s *Store) Get(id string) (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return st, ok
}

// GetOrCreate returns the session for id, creating a new one when id is
// unknown. The second result reports whether a session was created.
func (s *Store) GetOrCreate(id string) (*State, bool) {
	if st, ok := s.Get(id); ok {
		return st, false
	}
	return s.Create(), true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, st := range s.states {
		if st.StartedAt.Before(cutoff) {
			delete(s.states, id)
			n++
		}
	}
	return n
}
