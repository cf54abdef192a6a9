package evictor

import (
	"encoding/binary"
	"sync"
	"time"

	radix "github.com/armon/go-radix"
)

// radixQueue is the default Eviction Queue: a concurrent sorted map
// keyed by deadline, backed by github.com/armon/go-radix. Entries that
// share a deadline are disambiguated with a monotonically increasing
// sequence number local to this queue, so a shared queue serving
// several Map instances never collides two unrelated entries onto the
// same tree key.
//
// The sequence is carried in the entry's handle slot rather than used
// to bump the entry's deadline forward on collision: an Entry's
// deadline must never change once constructed.
type radixQueue[K comparable, V any] struct {
	mu   sync.Mutex
	tree *radix.Tree
	seq  uint64
}

func newRadixQueue[K comparable, V any]() *radixQueue[K, V] {
	return &radixQueue[K, V]{tree: radix.New()}
}

type radixValue[K comparable, V any] struct {
	entry *Entry[K, V]
	evict EvictFunc[K, V]
}

// deadlineKey packs (deadline, sequence) into a 16-byte big-endian
// string so that lexicographic tree order equals deadline order, with
// sequence breaking ties.
func deadlineKey(deadline time.Time, seq uint64) string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(deadline.UnixNano()))
	binary.BigEndian.PutUint64(b[8:16], seq)
	return string(b[:])
}

func deadlineFromKey(key string) time.Time {
	return time.Unix(0, int64(binary.BigEndian.Uint64([]byte(key[:8])))).UTC()
}

func (q *radixQueue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tree.Len()
}

func (q *radixQueue[K, V]) IsEmpty() bool {
	return q.Len() == 0
}

func (q *radixQueue[K, V]) EarliestDeadline() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	key, _, ok := q.tree.Minimum()
	if !ok {
		return time.Time{}
	}
	return deadlineFromKey(key)
}

func (q *radixQueue[K, V]) Insert(e *Entry[K, V], evict EvictFunc[K, V]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	key := deadlineKey(e.Deadline(), q.seq)
	q.tree.Insert(key, &radixValue[K, V]{entry: e, evict: evict})
	e.SetHandle(key)
}

func (q *radixQueue[K, V]) Remove(e *Entry[K, V]) {
	key, ok := e.Handle().(string)
	if !ok {
		return
	}
	q.mu.Lock()
	q.tree.Delete(key)
	q.mu.Unlock()
	e.ClearHandle()
}

func (q *radixQueue[K, V]) Drain(now time.Time) int {
	var due []*radixValue[K, V]

	q.mu.Lock()
	for {
		key, v, ok := q.tree.Minimum()
		if !ok {
			break
		}
		if deadlineFromKey(key).After(now) {
			break
		}
		q.tree.Delete(key)
		due = append(due, v.(*radixValue[K, V]))
	}
	q.mu.Unlock()

	for _, rv := range due {
		rv.entry.ClearHandle()
		rv.evict(rv.entry)
	}
	return len(due)
}
