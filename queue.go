package evictor

import "time"

// EvictFunc is the map facade's eviction callback, bound to one
// specific entry at schedule time. Calling it removes that entry from
// the map's delegate (identity-based) without re-cancelling its own
// schedule, since the scheduler already owns the queue-removal side of
// that bookkeeping.
type EvictFunc[K comparable, V any] func(e *Entry[K, V])

// Queue is a time-ordered multiset of evictible entries, keyed by
// deadline. It backs the three queue-based scheduler variants; the
// per-entry-timer and no-op schedulers never touch one.
//
// A Queue may be shared by schedulers serving multiple Map instances,
// so Insert takes the entry's eviction callback alongside the entry
// itself rather than assuming one fixed callback for the whole queue.
type Queue[K comparable, V any] interface {
	// Len reports the number of entries currently queued.
	Len() int
	// IsEmpty reports whether the queue holds no entries.
	IsEmpty() bool
	// EarliestDeadline returns the smallest deadline currently queued,
	// or the zero Time if the queue is empty.
	EarliestDeadline() time.Time
	// Insert adds e, which must be evictible, at its deadline.
	Insert(e *Entry[K, V], evict EvictFunc[K, V])
	// Remove removes e specifically (identity-based, not key-based).
	// It is a no-op if e is not currently queued.
	Remove(e *Entry[K, V])
	// Drain removes every entry whose deadline is <= now and invokes
	// its eviction callback, returning how many were drained.
	Drain(now time.Time) int
}
