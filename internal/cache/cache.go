// Package cache holds the per-session keyed cache of aggregated views and
// raw fetch results. Invalidation is coarse-grained by design: link-field
// denormalization makes fine-grained diffing unsafe, so a mutation trades a
// refetch for correctness by dropping whole keys.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache keys. A key scopes one entity type's cached view for the owning
// session.
const (
	KeyProfile         = "profile"
	KeyContactCurrent  = "contact:current"
	KeyEducationUser   = "education:user"
	KeyProfileComposed = "profile:composed"
	KeyParticipation   = "participation"
	KeyMilestones      = "milestones"

	submissionsPrefix = "submissions:"
)

// SubmissionsKey scopes warmed submission data to one milestone.
func SubmissionsKey(milestoneID string) string {
	return submissionsPrefix + milestoneID
}

// DerivedKeys lists every key whose derived data can change when a
// consistency operation mutates participation or member records.
func DerivedKeys() []string {
	return []string{
		KeyProfile,
		KeyContactCurrent,
		KeyEducationUser,
		KeyProfileComposed,
		KeyParticipation,
		KeyMilestones,
	}
}

type entry struct {
	value    interface{}
	storedAt time.Time
}

// Store is a mutex-guarded keyed cache with an optional TTL.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// New creates a cache store. A non-positive ttl disables expiry.
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && time.Since(e.storedAt) > s.ttl {
		s.Invalidate(key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, storedAt: time.Now()}
}

// Invalidate drops the given keys. Whole-key only; there is no field-level
// invalidation.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

// InvalidatePrefix drops every key sharing the prefix, used for the warmed
// per-milestone submission entries.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

// InvalidateSubmissions drops all warmed submission entries.
func (s *Store) InvalidateSubmissions() {
	s.InvalidatePrefix(submissionsPrefix)
}

// Flush drops everything.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Len returns the number of live entries, expiry ignored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
