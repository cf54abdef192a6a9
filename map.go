package evictor

import (
	"time"

	"github.com/ammario/evictor/internal/store"
)

// Map is a concurrent associative container whose entries may carry a
// TTL. An entry with a zero TTL is permanent. An entry with a
// strictly positive TTL is handed to the configured Scheduler, which
// decides when it actually gets swept out of the delegate store;
// every read-side operation also checks an entry's deadline itself
// and evicts it lazily on the spot if it is found stale, so a caller
// never observes an expired value regardless of which scheduler
// variant is in play.
type Map[K comparable, V any] struct {
	store     *store.Store[K, *Entry[K, V]]
	scheduler Scheduler[K, V]
	clock     Clock
}

// New constructs a Map. With no options it uses a radix-tree Eviction
// Queue drained once a second.
func New[K comparable, V any](opts ...Option[K, V]) (*Map[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}
	sched, err := cfg.newScheduler(cfg.queue)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{
		store:     store.New[K, *Entry[K, V]](),
		scheduler: sched,
		clock:     cfg.clock,
	}, nil
}

// Close releases the Map's scheduler. A shared scheduler (passed in
// via WithScheduler) is closed too, since only one owner is expected
// to call Close; callers sharing a scheduler across several Maps
// should close it themselves exactly once, separately, instead of
// calling Close on each Map.
func (m *Map[K, V]) Close() error {
	return m.scheduler.Close()
}

func (m *Map[K, V]) evictCallback(key K) EvictFunc[K, V] {
	return func(e *Entry[K, V]) {
		m.store.RemoveIdentity(key, e)
	}
}

// removeExpired drops e from the delegate and cancels whatever
// scheduling it had, if e is still the value stored at key. It is
// safe to call redundantly; losing the identity race just means
// someone else already handled it.
func (m *Map[K, V]) removeExpired(key K, e *Entry[K, V]) {
	if m.store.RemoveIdentity(key, e) {
		m.scheduler.CancelEviction(e)
	}
}

// load fetches the live (non-expired) entry at key, lazily evicting
// and reporting absence if it has passed its deadline.
func (m *Map[K, V]) load(key K) (*Entry[K, V], bool) {
	e, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	if e.ShouldEvict(m.clock.Now()) {
		m.removeExpired(key, e)
		return nil, false
	}
	return e, true
}

// Get returns the value stored at key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value(), true
}

// GetEntry returns the live Entry at key, for callers that want
// direct, in-place SetValue access.
func (m *Map[K, V]) GetEntry(key K) (*Entry[K, V], bool) {
	return m.load(key)
}

// ContainsKey reports whether key currently maps to a live value.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, ok := m.load(key)
	return ok
}

// Put unconditionally stores value at key as a permanent entry,
// returning the previous live value, if any. A prior entry that had
// already passed its deadline is reported as absent.
func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	return m.put(key, value, 0)
}

// PutTTL unconditionally stores value at key with the given TTL.
func (m *Map[K, V]) PutTTL(key K, value V, ttl time.Duration) (V, bool, error) {
	return m.put(key, value, ttl)
}

func (m *Map[K, V]) put(key K, value V, ttl time.Duration) (V, bool, error) {
	e, err := newEntry[K, V](key, value, ttl, m.clock.Now())
	if err != nil {
		var zero V
		return zero, false, err
	}

	old, hadOld := m.store.Put(key, e)
	if hadOld {
		m.scheduler.CancelEviction(old)
	}
	if e.Evictible() {
		m.scheduler.ScheduleEviction(e, m.evictCallback(key))
	}

	if hadOld && !old.ShouldEvict(m.clock.Now()) {
		return old.Value(), true, nil
	}
	var zero V
	return zero, false, nil
}

// PutIfAbsent stores value at key only if key has no live mapping.
// If it stores value it returns the zero value and true; otherwise it
// returns the existing live value and false.
func (m *Map[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	return m.putIfAbsent(key, value, 0)
}

// PutIfAbsentTTL is PutIfAbsent with a TTL on the newly stored entry.
func (m *Map[K, V]) PutIfAbsentTTL(key K, value V, ttl time.Duration) (V, bool, error) {
	return m.putIfAbsent(key, value, ttl)
}

func (m *Map[K, V]) putIfAbsent(key K, value V, ttl time.Duration) (V, bool, error) {
	e, err := newEntry[K, V](key, value, ttl, m.clock.Now())
	if err != nil {
		var zero V
		return zero, false, err
	}

	for {
		actual, stored := m.store.PutIfAbsent(key, e)
		if stored {
			if e.Evictible() {
				m.scheduler.ScheduleEviction(e, m.evictCallback(key))
			}
			var zero V
			return zero, true, nil
		}
		if actual.ShouldEvict(m.clock.Now()) {
			m.removeExpired(key, actual)
			continue
		}
		return actual.Value(), false, nil
	}
}

// Replace overwrites the value at key only if key currently has a
// live mapping, regardless of what that value is. It reports whether
// a replacement happened and returns the value that was replaced.
func (m *Map[K, V]) Replace(key K, value V) (V, bool, error) {
	return m.replace(key, value, 0)
}

// ReplaceTTL is Replace with a TTL on the newly stored entry.
func (m *Map[K, V]) ReplaceTTL(key K, value V, ttl time.Duration) (V, bool, error) {
	return m.replace(key, value, ttl)
}

func (m *Map[K, V]) replace(key K, value V, ttl time.Duration) (V, bool, error) {
	for {
		old, ok := m.store.Get(key)
		if !ok {
			var zero V
			return zero, false, nil
		}
		if old.ShouldEvict(m.clock.Now()) {
			m.removeExpired(key, old)
			var zero V
			return zero, false, nil
		}

		e, err := newEntry[K, V](key, value, ttl, m.clock.Now())
		if err != nil {
			var zero V
			return zero, false, err
		}

		if m.store.ReplaceIdentity(key, old, e) {
			m.scheduler.CancelEviction(old)
			if e.Evictible() {
				m.scheduler.ScheduleEviction(e, m.evictCallback(key))
			}
			return old.Value(), true, nil
		}
	}
}

// Remove unconditionally drops key's live mapping, returning its
// value.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	for {
		e, ok := m.store.Get(key)
		if !ok {
			var zero V
			return zero, false
		}
		if e.ShouldEvict(m.clock.Now()) {
			m.removeExpired(key, e)
			var zero V
			return zero, false
		}
		if m.store.RemoveIdentity(key, e) {
			m.scheduler.CancelEviction(e)
			return e.Value(), true
		}
	}
}

// Clear drops every entry and cancels every pending scheduled
// eviction.
func (m *Map[K, V]) Clear() {
	for _, e := range m.store.Clear() {
		m.scheduler.CancelEviction(e)
	}
}

// Size reports the number of entries currently held by the delegate
// store. It may overcount entries that have passed their deadline but
// have not yet been swept by the scheduler or touched by a
// lazy-evicting operation; under the no-op scheduler only the latter
// ever removes them.
func (m *Map[K, V]) Size() int {
	return m.store.Len()
}

// Range calls fn for every live key/value pair, lazily evicting any
// stale entry it encounters along the way, stopping early if fn
// returns false.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	now := m.clock.Now()
	m.store.Range(func(k K, e *Entry[K, V]) bool {
		if e.ShouldEvict(now) {
			m.removeExpired(k, e)
			return true
		}
		return fn(k, e.Value())
	})
}

// Keys returns a snapshot of the currently live keys.
func (m *Map[K, V]) Keys() []K {
	var keys []K
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns a snapshot of the currently live values.
func (m *Map[K, V]) Values() []V {
	var values []V
	m.Range(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Entries returns a snapshot of the currently live key/value pairs.
func (m *Map[K, V]) Entries() map[K]V {
	entries := make(map[K]V)
	m.Range(func(k K, v V) bool {
		entries[k] = v
		return true
	})
	return entries
}
