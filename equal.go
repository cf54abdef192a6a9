package evictor

// Equal is the comparison used by the value-conditioned operations
// (ReplaceValue, RemoveValue, ContainsValue). It exists as a free
// function, rather than a Map method, because Go generics don't allow
// a single method to add a comparable constraint that the type's own
// V any parameter doesn't carry.
func Equal[V comparable](a, b V) bool { return a == b }
