package evictor

import (
	"container/heap"
	"sync"
	"time"
)

// heapQueue is the pluggable priority-queue Eviction Queue variant
// (spec section 4.4.2): a container/heap min-heap ordered by deadline.
// Arbitrary removal is O(log n) via the index each heapValue tracks of
// its own position, the same trick a plain container/heap min-heap
// needs for any "cancel a pending timer" workload.
type heapQueue[K comparable, V any] struct {
	mu sync.Mutex
	h  entryHeap[K, V]
}

func newHeapQueue[K comparable, V any]() *heapQueue[K, V] {
	q := &heapQueue[K, V]{}
	heap.Init(&q.h)
	return q
}

type heapValue[K comparable, V any] struct {
	entry *Entry[K, V]
	evict EvictFunc[K, V]
	index int
}

type entryHeap[K comparable, V any] []*heapValue[K, V]

func (h entryHeap[K, V]) Len() int { return len(h) }

func (h entryHeap[K, V]) Less(i, j int) bool {
	return h[i].entry.Deadline().Before(h[j].entry.Deadline())
}

func (h entryHeap[K, V]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[K, V]) Push(x any) {
	v := x.(*heapValue[K, V])
	v.index = len(*h)
	*h = append(*h, v)
}

func (h *entryHeap[K, V]) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	old[n-1] = nil
	v.index = -1
	*h = old[:n-1]
	return v
}

func (q *heapQueue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}

func (q *heapQueue[K, V]) IsEmpty() bool {
	return q.Len() == 0
}

func (q *heapQueue[K, V]) EarliestDeadline() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.h) == 0 {
		return time.Time{}
	}
	return q.h[0].entry.Deadline()
}

func (q *heapQueue[K, V]) Insert(e *Entry[K, V], evict EvictFunc[K, V]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v := &heapValue[K, V]{entry: e, evict: evict}
	heap.Push(&q.h, v)
	e.SetHandle(v)
}

func (q *heapQueue[K, V]) Remove(e *Entry[K, V]) {
	v, ok := e.Handle().(*heapValue[K, V])
	if !ok {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if v.index < 0 || v.index >= len(q.h) || q.h[v.index] != v {
		// Already popped by a concurrent Drain.
		return
	}
	heap.Remove(&q.h, v.index)
	e.ClearHandle()
}

func (q *heapQueue[K, V]) Drain(now time.Time) int {
	var due []*heapValue[K, V]

	q.mu.Lock()
	for len(q.h) > 0 && !q.h[0].entry.Deadline().After(now) {
		due = append(due, heap.Pop(&q.h).(*heapValue[K, V]))
	}
	q.mu.Unlock()

	for _, v := range due {
		v.entry.ClearHandle()
		v.evict(v.entry)
	}
	return len(due)
}
