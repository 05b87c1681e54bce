// Package pointer provides helpers for the optional (pointer typed) fields of the object model.
package pointer

// From returns a pointer to a copy of t.
func From[T any](t T) *T {
	return &t
}

// Value returns the pointed to value or the zero value of T when p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Equal reports whether a and b are both nil or point to equal values.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
