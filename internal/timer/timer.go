// Package timer provides cancellable scheduled tasks for the bubbletea loop.
//
// A scheduled task is a tea.Tick command tagged with a Handle. Scheduling the
// same key again, cancelling it, or tearing down the Set bumps the generation
// of that key, so a superseded tick still arrives as a FiredMsg but Claim
// rejects it. Everything here runs on the Update goroutine; only the tick
// itself sleeps on a command goroutine.
package timer

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// Handle identifies one scheduling of a key.
type Handle struct {
	Key string
	Gen uint64
}

// FiredMsg is delivered when a scheduled task's delay elapses.
type FiredMsg struct {
	Handle Handle
	At     time.Time
}

type pending struct {
	gen      uint64
	deadline time.Time
}

// Set tracks the live handle of every key.
type Set struct {
	now     Clock
	seq     uint64
	pending map[string]pending
}

// NewSet creates an empty Set. A nil clock means time.Now.
func NewSet(clock Clock) *Set {
	if clock == nil {
		clock = time.Now
	}
	return &Set{
		now:     clock,
		pending: make(map[string]pending),
	}
}

// Now returns the Set's notion of the current time.
func (s *Set) Now() time.Time {
	return s.now()
}

// Schedule replaces any pending task for key with one that fires after d.
// A non-positive delay fires on the next loop iteration.
func (s *Set) Schedule(key string, d time.Duration) (Handle, tea.Cmd) {
	s.seq++
	h := Handle{Key: key, Gen: s.seq}
	s.pending[key] = pending{gen: h.Gen, deadline: s.now().Add(max(d, 0))}

	if d <= 0 {
		return h, func() tea.Msg {
			return FiredMsg{Handle: h, At: time.Now()}
		}
	}
	return h, tea.Tick(d, func(t time.Time) tea.Msg {
		return FiredMsg{Handle: h, At: t}
	})
}

// Claim reports whether msg belongs to the live handle of its key and, if so,
// retires that handle. Stale and cancelled handles return false.
func (s *Set) Claim(msg FiredMsg) bool {
	p, ok := s.pending[msg.Handle.Key]
	if !ok || p.gen != msg.Handle.Gen {
		return false
	}
	delete(s.pending, msg.Handle.Key)
	return true
}

// Cancel drops the pending task for key, if any.
func (s *Set) Cancel(key string) {
	delete(s.pending, key)
}

// CancelPrefix drops every pending task whose key starts with prefix.
func (s *Set) CancelPrefix(prefix string) {
	for key := range s.pending {
		if strings.HasPrefix(key, prefix) {
			delete(s.pending, key)
		}
	}
}

// CancelAll drops every pending task.
func (s *Set) CancelAll() {
	clear(s.pending)
}

// Pending returns the live handle for key.
func (s *Set) Pending(key string) (Handle, bool) {
	p, ok := s.pending[key]
	if !ok {
		return Handle{}, false
	}
	return Handle{Key: key, Gen: p.gen}, true
}

// Deadline returns when the live task for key is due.
func (s *Set) Deadline(key string) (time.Time, bool) {
	p, ok := s.pending[key]
	return p.deadline, ok
}

// Len returns the number of live tasks.
func (s *Set) Len() int {
	return len(s.pending)
}
