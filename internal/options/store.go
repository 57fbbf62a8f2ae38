// Package options provides the option store: the session's transient key/value
// table that commands write with `set` and that is wiped on every module change.
package options

import (
	"fmt"
	"io"
	"sync"

	"xion/internal/logger"
)

// Store holds option values keyed by name. Listing follows insertion order.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	order  []string
}

// NewStore creates an empty option store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Set inserts or overwrites an option. Overwriting keeps the original position.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
	logger.Debug("Option set", "key", key, "value", value)
}

// Get returns the option value and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Clear drops every option.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.order = nil
	logger.Debug("Options cleared")
}

// Len returns the number of stored options.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Entry is a single key/value pair returned by Entries.
type Entry struct {
	Key   string
	Value string
}

// Entries returns a copy of all options in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, Entry{Key: key, Value: s.values[key]})
	}
	return entries
}

// Show writes one "key = value" line per option.
func (s *Store) Show(w io.Writer) {
	for _, e := range s.Entries() {
		fmt.Fprintf(w, "%s = %s\n", e.Key, e.Value)
	}
}
