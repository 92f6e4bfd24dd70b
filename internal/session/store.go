// Package session tracks what free-text input each user is expected to send next.
//
// State lives in process memory only and is lost on restart. Entries older than
// the configured TTL read as domain.StateNone, so an abandoned prompt does not
// swallow a message sent hours later.
package session

import (
	"sync"
	"time"

	"caretrack/internal/domain"
)

type entry struct {
	state     domain.InteractionState
	updatedAt time.Time
}

// Store is an in-memory interaction state tracker keyed by user id
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[int64]entry
}

// NewStore creates a store; ttl <= 0 disables expiry
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]entry),
	}
}

// WithClock replaces the time source, for tests
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get returns user's current state, StateNone if absent or expired
func (s *Store) Get(userID int64) domain.InteractionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[userID]
	if !exists || s.expired(e) {
		return domain.StateNone
	}
	return e.state
}

// Set sets user's state
func (s *Store) Set(userID int64, state domain.InteractionState) {
	if state == domain.StateNone {
		s.Reset(userID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = entry{state: state, updatedAt: s.now()}
}

// Reset returns user to StateNone
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// Len returns the number of tracked users, expired entries included
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops expired entries and returns how many were removed
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, userID)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && s.now().Sub(e.updatedAt) > s.ttl
}
