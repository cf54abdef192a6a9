package evictor

import "time"

// config accumulates the choices made via Option before New assembles
// the actual Map. The queue is decided independently of the
// scheduler because three of the four scheduler variants need one to be
// already built before they can be constructed; newScheduler is
// invoked with whatever queue ended up chosen (explicit or default).
type config[K comparable, V any] struct {
	clock        Clock
	queue        Queue[K, V]
	newScheduler func(q Queue[K, V]) (Scheduler[K, V], error)
}

// Option configures a Map at construction time.
type Option[K comparable, V any] func(*config[K, V])

// WithClock overrides the time source used to derive deadlines and
// decide lazy expiry. Intended for tests.
func WithClock[K comparable, V any](c Clock) Option[K, V] {
	return func(cfg *config[K, V]) { cfg.clock = c }
}

// WithQueue selects an explicit Eviction Queue implementation for the
// queue-based scheduler variants. Schedulers that don't use a queue
// (per-entry timer, no-op) ignore this choice.
func WithQueue[K comparable, V any](q Queue[K, V]) Option[K, V] {
	return func(cfg *config[K, V]) { cfg.queue = q }
}

// WithRadixQueue selects the sorted-by-deadline radix tree Eviction
// Queue (the default).
func WithRadixQueue[K comparable, V any]() Option[K, V] {
	return WithQueue[K, V](newRadixQueue[K, V]())
}

// WithHeapQueue selects the container/heap priority-queue Eviction
// Queue.
func WithHeapQueue[K comparable, V any]() Option[K, V] {
	return WithQueue[K, V](newHeapQueue[K, V]())
}

// WithScheduler selects an explicit, already-constructed Scheduler.
// Use this to share one Scheduler across several Map instances.
func WithScheduler[K comparable, V any](s Scheduler[K, V]) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.newScheduler = func(Queue[K, V]) (Scheduler[K, V], error) { return s, nil }
	}
}

// WithNoopScheduler selects the lazy-only eviction strategy: entries
// only expire when an operation happens to touch them.
func WithNoopScheduler[K comparable, V any]() Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.newScheduler = func(Queue[K, V]) (Scheduler[K, V], error) {
			return NewNoopScheduler[K, V](), nil
		}
	}
}

// WithPerEntryScheduler selects the per-entry time.AfterFunc strategy.
func WithPerEntryScheduler[K comparable, V any]() Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.newScheduler = func(Queue[K, V]) (Scheduler[K, V], error) {
			return NewPerEntryScheduler[K, V](), nil
		}
	}
}

// WithIntervalScheduler selects the regular-interval sweep strategy,
// draining the configured queue every delay.
func WithIntervalScheduler[K comparable, V any](delay time.Duration) Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.newScheduler = func(q Queue[K, V]) (Scheduler[K, V], error) {
			return NewIntervalScheduler[K, V](q, delay)
		}
	}
}

// WithDelayedScheduler selects the single-reprogrammed-timer strategy.
func WithDelayedScheduler[K comparable, V any]() Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.newScheduler = func(q Queue[K, V]) (Scheduler[K, V], error) {
			return NewDelayedScheduler[K, V](q), nil
		}
	}
}

// WithThreadScheduler selects the dedicated-worker-goroutine strategy.
func WithThreadScheduler[K comparable, V any]() Option[K, V] {
	return func(cfg *config[K, V]) {
		cfg.newScheduler = func(q Queue[K, V]) (Scheduler[K, V], error) {
			return NewThreadScheduler[K, V](q), nil
		}
	}
}

func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{
		clock: realClock{},
		queue: newRadixQueue[K, V](),
		newScheduler: func(q Queue[K, V]) (Scheduler[K, V], error) {
			return NewIntervalScheduler[K, V](q, time.Second)
		},
	}
}
