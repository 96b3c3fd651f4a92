package moderation

import (
	"sync"
	"time"

	"github.com/small-frappuccino/modcore/pkg/log"
)

// Clock abstracts timer creation so tests can drive deadlines manually.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// SystemClock returns the real-time clock.
func SystemClock() Clock {
	return systemClock{}
}

type sanctionKey struct {
	guildID  string
	memberID string
}

type pendingSanction struct {
	cancel   chan struct{}
	deadline time.Time
}

// Scheduler tracks at most one pending timed reversal per (guild, member)
// pair. Scheduling a new reversal for a key supersedes any existing entry.
// Cancellation is cooperative: it prevents a future firing but does not
// interrupt a reversal that is already executing.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	pending map[sanctionKey]*pendingSanction
}

// NewScheduler creates a scheduler using the given clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		clock:   clock,
		pending: make(map[sanctionKey]*pendingSanction),
	}
}

// Schedule registers a reversal to run after d. Any existing pending entry
// for the same (guild, member) is cancelled first. Each reversal runs on its
// own goroutine; reversals for different members are never serialized.
func (s *Scheduler) Schedule(guildID, memberID string, d time.Duration, reversal func()) {
	key := sanctionKey{guildID: guildID, memberID: memberID}
	entry := &pendingSanction{
		cancel:   make(chan struct{}),
		deadline: time.Now().Add(d),
	}

	s.mu.Lock()
	if prev, ok := s.pending[key]; ok {
		close(prev.cancel)
		log.ApplicationLogger().Info("superseding pending sanction",
			"guild_id", guildID,
			"member_id", memberID)
	}
	s.pending[key] = entry
	s.mu.Unlock()

	timer := s.clock.After(d)
	go func() {
		select {
		case <-timer:
			if !s.remove(key, entry) {
				return
			}
			reversal()
		case <-entry.cancel:
		}
	}()
}

// Cancel removes the pending entry for the key, if any, and reports whether
// one was cancelled. Used by explicit unmutes.
func (s *Scheduler) Cancel(guildID, memberID string) bool {
	key := sanctionKey{guildID: guildID, memberID: memberID}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pending[key]
	if !ok {
		return false
	}
	close(entry.cancel)
	delete(s.pending, key)
	return true
}

// Pending reports whether a reversal is currently scheduled for the key.
func (s *Scheduler) Pending(guildID, memberID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[sanctionKey{guildID: guildID, memberID: memberID}]
	return ok
}

// PendingCount returns the number of scheduled reversals.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// remove deletes the entry for key only if it is still the same entry, so a
// superseded timer firing late cannot evict its replacement. Returns whether
// the caller owns the firing.
func (s *Scheduler) remove(key sanctionKey, entry *pendingSanction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.pending[key]
	if !ok || current != entry {
		return false
	}
	delete(s.pending, key)
	return true
}
