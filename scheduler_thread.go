package evictor

import (
	"sync"
	"time"
)

// ThreadScheduler is the dedicated-thread queue variant (spec section
// 4.3.4): one goroutine owns a sync.Cond and loops forever, draining
// the shared Queue and then waiting — either until woken by a
// schedule/cancel or until the next deadline elapses. sync.Cond has no
// native timed wait, so a helper timer goroutine signals the cond
// after a bounded delay, the same trick needed any time a Cond-based
// worker has to wake up on its own instead of waiting forever for an
// external signal.
type ThreadScheduler[K comparable, V any] struct {
	queueScheduler[K, V]

	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
	done   chan struct{}
}

// NewThreadScheduler constructs a ThreadScheduler backed by q.
func NewThreadScheduler[K comparable, V any](q Queue[K, V]) *ThreadScheduler[K, V] {
	s := &ThreadScheduler[K, V]{
		queueScheduler: queueScheduler[K, V]{queue: q},
		done:           make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	s.onSchedule = s.wake
	s.onCancel = s.wake
	go s.run()
	return s
}

func (s *ThreadScheduler[K, V]) wake() {
	s.mu.Lock()
	s.cond.Signal()
	s.mu.Unlock()
}

func (s *ThreadScheduler[K, V]) run() {
	defer close(s.done)

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if s.closed {
			return
		}

		deadline := s.queue.EarliestDeadline()
		if deadline.IsZero() {
			s.cond.Wait()
			continue
		}

		wait := time.Until(deadline)
		if wait <= 0 {
			s.mu.Unlock()
			s.queue.Drain(now())
			s.mu.Lock()
			continue
		}

		timer := time.AfterFunc(wait, s.wake)
		s.cond.Wait()
		timer.Stop()
	}
}

func (s *ThreadScheduler[K, V]) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cond.Signal()
	s.mu.Unlock()
	<-s.done
	return nil
}
