package evictor

import "time"

// Clock abstracts the monotonic time source used to derive entry
// deadlines and to decide whether an entry should be evicted. The
// default implementation wraps time.Now, which carries a monotonic
// reading on every platform Go supports; tests substitute a fake Clock
// to exercise lazy-expiry paths without real sleeps.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
