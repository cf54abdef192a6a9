package evictor

import "errors"

var (
	// ErrNegativeTTL is returned when a TTL-taking operation is given a
	// strictly negative duration.
	ErrNegativeTTL = errors.New("evictor: ttl must be non-negative")

	// ErrNilValue is returned when a value being stored is nil. Keys
	// follow the delegate's own nullability policy, which for the
	// built-in map delegate used here means a nil comparable key is
	// accepted like any other zero value.
	ErrNilValue = errors.New("evictor: value must not be nil")

	// ErrNonPositiveDelay is returned by NewIntervalScheduler when the
	// configured delay is not strictly positive.
	ErrNonPositiveDelay = errors.New("evictor: interval scheduler delay must be strictly positive")
)
