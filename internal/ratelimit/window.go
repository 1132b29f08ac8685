package ratelimit

import (
	"time"
)

// SlidingWindow throttles repeat submissions from a single session: at most
// Max attempts within the trailing Window. A sliding window is used instead
// of fixed buckets so a burst straddling a bucket boundary cannot double the
// allowance.
//
// The window only limits a repeat caller reusing one session. A caller that
// spreads attempts over fresh sessions is not throttled here.
type SlidingWindow struct {
	store  Store
	max    int
	window time.Duration
}

// NewSlidingWindow creates a limiter backed by the given store
func NewSlidingWindow(store Store, max int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		store:  store,
		max:    max,
		window: window,
	}
}

// Admit reports whether the session may submit at the given time. On
// admission the attempt is recorded immediately, so an admitted submission
// consumes its slot even if a later pipeline stage rejects it.
func (w *SlidingWindow) Admit(sessionID string, now time.Time) bool {
	attempts := w.store.Get(sessionID)

	// Prune attempts that fell out of the window
	cutoff := now.Add(-w.window)
	recent := attempts[:0]
	for _, t := range attempts {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= w.max {
		// Full window. Do not record the rejected attempt, a caller
		// that keeps retrying must not extend its own lockout.
		w.store.Set(sessionID, recent)
		return false
	}

	recent = append(recent, now)
	w.store.Set(sessionID, recent)
	return true
}
