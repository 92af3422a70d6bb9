// Package token holds the bearer credential used by outbound API requests.
package token

import "sync"

// Credential is an optional bearer token. Valid is false when the store has
// been cleared, which is distinct from a present empty string.
type Credential struct {
	Value string
	Valid bool
}

// Reader is the read side of a Store, consumed by request executors.
type Reader interface {
	Get() (string, bool)
}

// Store keeps a single credential in memory.
// It is safe for concurrent use; a Set racing an in-flight request only
// affects requests that read the store after the write.
type Store struct {
	mu      sync.RWMutex
	token   string
	cleared bool
}

// NewStore returns a store holding the empty string. The zero value is
// equivalent; only Clear makes the credential absent.
func NewStore() *Store {
	return &Store{}
}

var defaultStore = NewStore()

// Default returns the process-wide store for hosts that want a single shared
// credential. Executors never read it unless it is passed to them explicitly.
func Default() *Store {
	return defaultStore
}

// Set replaces the stored credential.
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.cleared = false
}

// Get returns the stored credential and whether one is present.
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, !s.cleared
}

// Credential returns the stored credential as an optional value.
func (s *Store) Credential() Credential {
	v, ok := s.Get()
	return Credential{Value: v, Valid: ok}
}

// Clear drops the credential; Get reports it absent until the next Set.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared = true
}
