// Package evictor implements a concurrent associative container whose
// entries may carry a TTL. Entries past their deadline are removed
// either lazily, the next time some operation happens to touch them,
// or actively, by one of several pluggable Scheduler implementations
// backed by a time-ordered Eviction Queue.
package evictor
