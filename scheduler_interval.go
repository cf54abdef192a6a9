package evictor

import (
	"sync"
	"time"
)

// IntervalScheduler is the regular-interval queue variant (spec
// section 4.3.2): a background janitor goroutine wakes up every delay
// and drains whatever in the shared Queue has come due since the last
// sweep. The janitor's ticker is not unconditionally running: it is
// activated the moment a schedule lands in what was an inactive
// scheduler and deactivated once a cancel or a drain leaves the queue
// empty, with both decisions made under a scheduler-level mutex that
// recomputes queue emptiness inside the lock so a queue mutation
// landing right at the activate/deactivate boundary is never missed.
type IntervalScheduler[K comparable, V any] struct {
	queueScheduler[K, V]

	delay time.Duration

	mu     sync.Mutex
	active bool
	ticker *time.Ticker

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewIntervalScheduler constructs an IntervalScheduler that drains q
// every delay once something has been scheduled. delay must be
// strictly positive.
func NewIntervalScheduler[K comparable, V any](q Queue[K, V], delay time.Duration) (*IntervalScheduler[K, V], error) {
	if delay <= 0 {
		return nil, ErrNonPositiveDelay
	}
	s := &IntervalScheduler[K, V]{
		queueScheduler: queueScheduler[K, V]{queue: q},
		delay:          delay,
		wake:           make(chan struct{}, 1),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
	s.onSchedule = s.activate
	s.onCancel = s.deactivateIfEmpty
	go s.run()
	return s, nil
}

// activate starts the janitor ticker if it is not already running and
// the queue (which has already received the insert that triggered
// this call) is non-empty. Called after queueScheduler.ScheduleEviction
// has already inserted the entry.
func (s *IntervalScheduler[K, V]) activate() {
	s.mu.Lock()
	if !s.active && !s.queue.IsEmpty() {
		s.active = true
		s.ticker = time.NewTicker(s.delay)
	}
	s.mu.Unlock()
	s.nudge()
}

// deactivateIfEmpty stops the janitor ticker if the queue (which has
// already received the removal that triggered this call) is empty.
// Called after queueScheduler.CancelEviction has already removed the
// entry.
func (s *IntervalScheduler[K, V]) deactivateIfEmpty() {
	s.mu.Lock()
	s.deactivateIfEmptyLocked()
	s.mu.Unlock()
	s.nudge()
}

func (s *IntervalScheduler[K, V]) deactivateIfEmptyLocked() {
	if s.active && s.queue.IsEmpty() {
		s.ticker.Stop()
		s.ticker = nil
		s.active = false
	}
}

func (s *IntervalScheduler[K, V]) nudge() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *IntervalScheduler[K, V]) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		var tickC <-chan time.Time
		if s.ticker != nil {
			tickC = s.ticker.C
		}
		s.mu.Unlock()

		select {
		case <-s.stop:
			return
		case <-s.wake:
			// Ticker state changed (activated, deactivated, or
			// replaced); loop back around and pick up the new one.
		case t := <-tickC:
			s.queue.Drain(t)
			s.mu.Lock()
			s.deactivateIfEmptyLocked()
			s.mu.Unlock()
		}
	}
}

func (s *IntervalScheduler[K, V]) Close() error {
	s.mu.Lock()
	if s.active {
		s.ticker.Stop()
		s.ticker = nil
		s.active = false
	}
	s.mu.Unlock()
	close(s.stop)
	<-s.done
	return nil
}
