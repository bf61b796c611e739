// Package memory provides an in-process kv.Store backed by a map.
//
// It supports the full option set (TTL, IfNotExists, IfExists) and is the
// backend used throughout the unit tests. Expired entries are dropped
// lazily: a Get or conditional Set never observes a value past its
// deadline, even if the entry has not been collected yet.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jacentio/lattice/kv"
)

var _ kv.Store = (*Store)(nil)

// Store is an in-memory key-value store. The zero value is not usable;
// construct with New.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	value    []byte
	deadline time.Time // zero means no expiry
}

func (e entry) live(now time.Time) bool {
	return e.deadline.IsZero() || now.Before(e.deadline)
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get returns the live value under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !e.live(time.Now()) {
		delete(s.entries, key)
		return nil, kv.ErrNotFound
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores value under key, honoring TTL and conditional options.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kv.SetOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	exists := ok && e.live(now)

	if opts.IfNotExists && exists {
		return kv.ErrConditionFailed
	}
	if opts.IfExists && !exists {
		return kv.ErrConditionFailed
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	var deadline time.Time
	if opts.TTL > 0 {
		deadline = now.Add(opts.TTL)
	}

	s.entries[key] = entry{value: stored, deadline: deadline}
	return nil
}

// Delete removes key. Absent keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// TTL reports the remaining time to live for key. The second return is
// false when the key is absent, expired, or has no expiry set.
func (s *Store) TTL(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	now := time.Now()
	if !ok || !e.live(now) || e.deadline.IsZero() {
		return 0, false
	}
	return e.deadline.Sub(now), true
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	n := 0
	for _, e := range s.entries {
		if e.live(now) {
			n++
		}
	}
	return n
}
