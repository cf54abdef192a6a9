package evictor

import "time"

// ContainsValue reports whether any live entry in m currently holds
// value. It is a free function rather than a method because scanning
// by value equality needs V comparable, a constraint Map[K, V] itself
// does not carry.
func ContainsValue[K comparable, V comparable](m *Map[K, V], value V) bool {
	found := false
	m.Range(func(_ K, v V) bool {
		if Equal(v, value) {
			found = true
			return false
		}
		return true
	})
	return found
}

// RemoveValue removes key's mapping only if its current live value
// equals value, reporting whether the removal happened.
func RemoveValue[K comparable, V comparable](m *Map[K, V], key K, value V) bool {
	for {
		e, ok := m.store.Get(key)
		if !ok {
			return false
		}
		if e.ShouldEvict(m.clock.Now()) {
			m.removeExpired(key, e)
			return false
		}
		if !Equal(e.Value(), value) {
			return false
		}
		if m.store.RemoveIdentity(key, e) {
			m.scheduler.CancelEviction(e)
			return true
		}
	}
}

// ReplaceValue overwrites key's live value with newValue only if its
// current live value equals oldValue, as a permanent entry.
func ReplaceValue[K comparable, V comparable](m *Map[K, V], key K, oldValue, newValue V) (bool, error) {
	return replaceValueTTL(m, key, oldValue, newValue, 0)
}

// ReplaceValueTTL is ReplaceValue with a TTL on the newly stored
// entry.
func ReplaceValueTTL[K comparable, V comparable](m *Map[K, V], key K, oldValue, newValue V, ttl time.Duration) (bool, error) {
	return replaceValueTTL(m, key, oldValue, newValue, ttl)
}

func replaceValueTTL[K comparable, V comparable](m *Map[K, V], key K, oldValue, newValue V, ttl time.Duration) (bool, error) {
	for {
		old, ok := m.store.Get(key)
		if !ok {
			return false, nil
		}
		if old.ShouldEvict(m.clock.Now()) {
			m.removeExpired(key, old)
			return false, nil
		}
		if !Equal(old.Value(), oldValue) {
			return false, nil
		}

		e, err := newEntry[K, V](key, newValue, ttl, m.clock.Now())
		if err != nil {
			return false, err
		}

		if m.store.ReplaceIdentity(key, old, e) {
			m.scheduler.CancelEviction(old)
			if e.Evictible() {
				m.scheduler.ScheduleEviction(e, m.evictCallback(key))
			}
			return true, nil
		}
	}
}
