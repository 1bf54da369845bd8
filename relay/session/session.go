// Package session tracks what a user's next free-text message means.
package session

import "github.com/m3rciful/anonrelay/core/telegram/state"

// Mode is the pending interpretation of the next free-text message.
type Mode int

const (
	ModeNone Mode = iota
	ModeAnon
	ModeFeedback
	ModeBanWaiting
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAnon:
		return "anon"
	case ModeFeedback:
		return "feedback"
	case ModeBanWaiting:
		return "ban_waiting"
	}
	return "invalid"
}

// Store holds one Mode per user. Missing users read as ModeNone and
// entries never expire.
type Store struct {
	m state.Manager[Mode]
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{m: state.NewStore(ModeNone)}
}

// Get returns the user's mode.
func (s *Store) Get(userID int64) Mode { return s.m.Get(userID) }

// SetMode overwrites the user's mode.
func (s *Store) SetMode(userID int64, mode Mode) { s.m.Set(userID, mode) }

// Clear resets the user to ModeNone.
func (s *Store) Clear(userID int64) { s.m.Clear(userID) }

// Consume returns the user's mode and resets it to ModeNone atomically.
func (s *Store) Consume(userID int64) Mode { return s.m.Take(userID) }

// Pending reports whether a mode is waiting for input.
func (s *Store) Pending(userID int64) bool { return s.m.InProgress(userID) }
