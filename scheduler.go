package evictor

import "time"

// Scheduler decides when an evictible Entry's eviction callback runs.
// The map facade calls ScheduleEviction once per evictible entry it
// creates and CancelEviction whenever that entry is removed or
// replaced before it would otherwise fire; everything else is the
// scheduler's own business.
//
// A Scheduler may be shared across multiple Map instances (spec
// section 4.3), which is why ScheduleEviction takes the eviction
// callback as an argument rather than assuming one fixed callback
// bound at construction time.
type Scheduler[K comparable, V any] interface {
	// ScheduleEviction arranges for evict(e) to run once, at or after
	// e.Deadline(). It is only ever called with an evictible entry.
	ScheduleEviction(e *Entry[K, V], evict EvictFunc[K, V])
	// CancelEviction cancels a previously scheduled eviction for e. It
	// is a no-op if e was never scheduled or has already fired.
	CancelEviction(e *Entry[K, V])
	// Close releases any background resources (timers, goroutines) the
	// scheduler holds. A closed scheduler must not be used again.
	Close() error
}

// now is a small convenience used by scheduler implementations that
// need a one-off timestamp and were not handed a Clock of their own.
func now() time.Time { return realClock{}.Now() }
