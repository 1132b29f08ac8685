package ratelimit

import (
	"sync"
	"time"
)

// Store holds the per-session timestamps of previously admitted submissions.
// Implementations must make Get/Set individually atomic; the window itself
// serializes its read-modify-write, so a shared store only needs these two
// operations.
type Store interface {
	Get(sessionID string) []time.Time
	Set(sessionID string, attempts []time.Time)
}

// MemoryStore is an in-process Store. Entries whose newest timestamp is
// older than the retention period are dropped during writes, so an
// abandoned session does not leak.
type MemoryStore struct {
	mu        sync.Mutex
	retention time.Duration
	attempts  map[string][]time.Time
}

// NewMemoryStore creates a store that retains session entries for the given
// duration after their last attempt
func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{
		retention: retention,
		attempts:  make(map[string][]time.Time),
	}
}

func (s *MemoryStore) Get(sessionID string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.attempts[sessionID]
	out := make([]time.Time, len(stored))
	copy(out, stored)
	return out
}

func (s *MemoryStore) Set(sessionID string, attempts []time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(attempts) == 0 {
		delete(s.attempts, sessionID)
	} else {
		stored := make([]time.Time, len(attempts))
		copy(stored, attempts)
		s.attempts[sessionID] = stored
	}

	s.sweepLocked(time.Now())
}

// sweepLocked drops sessions whose newest attempt fell out of the retention
// period. Session counts stay small here, so sweeping on every write is
// cheaper than a background goroutine.
func (s *MemoryStore) sweepLocked(now time.Time) {
	cutoff := now.Add(-s.retention)
	for id, stored := range s.attempts {
		if len(stored) == 0 || stored[len(stored)-1].Before(cutoff) {
			delete(s.attempts, id)
		}
	}
}
