package evictor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newQueueSchedulers(t *testing.T) map[string]Scheduler[string, int] {
	t.Helper()

	interval, err := NewIntervalScheduler[string, int](newRadixQueue[string, int](), 10*time.Millisecond)
	require.NoError(t, err)

	scheds := map[string]Scheduler[string, int]{
		"per-entry": NewPerEntryScheduler[string, int](),
		"interval":  interval,
		"delayed":   NewDelayedScheduler[string, int](newRadixQueue[string, int]()),
		"thread":    NewThreadScheduler[string, int](newHeapQueue[string, int]()),
	}
	t.Cleanup(func() {
		for _, s := range scheds {
			require.NoError(t, s.Close())
		}
	})
	return scheds
}

func TestSchedulersEvictOnDeadline(t *testing.T) {
	for name, sched := range newQueueSchedulers(t) {
		t.Run(name, func(t *testing.T) {
			e, err := newEntry[string, int]("k", 1, 15*time.Millisecond, time.Now())
			require.NoError(t, err)

			var (
				mu    sync.Mutex
				fired bool
			)
			sched.ScheduleEviction(e, func(*Entry[string, int]) {
				mu.Lock()
				fired = true
				mu.Unlock()
			})

			require.Eventually(t, func() bool {
				mu.Lock()
				defer mu.Unlock()
				return fired
			}, time.Second, time.Millisecond)
		})
	}
}

func TestSchedulersCancelPreventsEviction(t *testing.T) {
	for name, sched := range newQueueSchedulers(t) {
		t.Run(name, func(t *testing.T) {
			e, err := newEntry[string, int]("k", 1, 20*time.Millisecond, time.Now())
			require.NoError(t, err)

			var (
				mu    sync.Mutex
				fired bool
			)
			sched.ScheduleEviction(e, func(*Entry[string, int]) {
				mu.Lock()
				fired = true
				mu.Unlock()
			})
			sched.CancelEviction(e)

			time.Sleep(60 * time.Millisecond)
			mu.Lock()
			defer mu.Unlock()
			require.False(t, fired)
		})
	}
}

func TestNoopSchedulerNeverFires(t *testing.T) {
	sched := NewNoopScheduler[string, int]()
	defer sched.Close()

	e, err := newEntry[string, int]("k", 1, time.Millisecond, time.Now())
	require.NoError(t, err)

	fired := false
	sched.ScheduleEviction(e, func(*Entry[string, int]) { fired = true })
	time.Sleep(20 * time.Millisecond)
	require.False(t, fired)
}

func TestIntervalSchedulerActivatesAndDeactivates(t *testing.T) {
	s, err := NewIntervalScheduler[string, int](newRadixQueue[string, int](), 5*time.Millisecond)
	require.NoError(t, err)
	defer s.Close()

	s.mu.Lock()
	require.False(t, s.active)
	s.mu.Unlock()

	e, err := newEntry[string, int]("k", 1, time.Hour, time.Now())
	require.NoError(t, err)

	fired := false
	s.ScheduleEviction(e, func(*Entry[string, int]) { fired = true })

	s.mu.Lock()
	require.True(t, s.active)
	s.mu.Unlock()

	s.CancelEviction(e)

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.active
	}, time.Second, time.Millisecond)
	require.False(t, fired)
}

func TestIntervalSchedulerDeactivatesAfterDrain(t *testing.T) {
	s, err := NewIntervalScheduler[string, int](newRadixQueue[string, int](), 5*time.Millisecond)
	require.NoError(t, err)
	defer s.Close()

	e, err := newEntry[string, int]("k", 1, 10*time.Millisecond, time.Now())
	require.NoError(t, err)

	var mu sync.Mutex
	fired := false
	s.ScheduleEviction(e, func(*Entry[string, int]) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.active
	}, time.Second, time.Millisecond)
}
