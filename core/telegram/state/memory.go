package state

import "sync"

// Store is a mutex-guarded map from user id to state S. The idle value is
// never stored: setting it removes the entry.
type Store[S comparable] struct {
	mu       sync.RWMutex
	idle     S
	sessions map[int64]S
}

var _ Manager[string] = (*Store[string])(nil)

// NewStore returns an empty Store whose missing entries read as idle.
func NewStore[S comparable](idle S) *Store[S] {
	return &Store[S]{idle: idle, sessions: make(map[int64]S)}
}

// Get returns the user's state or idle.
func (s *Store[S]) Get(userID int64) S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[userID]; ok {
		return st
	}
	return s.idle
}

// Set replaces the user's state.
func (s *Store[S]) Set(userID int64, st S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == s.idle {
		delete(s.sessions, userID)
		return
	}
	s.sessions[userID] = st
}

// Clear resets the user to idle.
func (s *Store[S]) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Take returns the user's state and resets it to idle in one step.
func (s *Store[S]) Take(userID int64) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[userID]
	if !ok {
		return s.idle
	}
	delete(s.sessions, userID)
	return st
}

// InProgress reports whether the user is in any non-idle state.
func (s *Store[S]) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}

// Len returns the number of users with a non-idle state.
func (s *Store[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
