package ptr

import "fmt"

// NonNull is a Ptr whose address is known not to be zero
type NonNull[T any] struct {
	p Ptr[T]
}

// NewNonNull returns p as a NonNull, or false if p is null
func NewNonNull[T any](p Ptr[T]) (NonNull[T], bool) {
	if p.IsNull() {
		return NonNull[T]{}, false
	}

	return NonNull[T]{p: p}, true
}

// AsNonNull converts p to a NonNull without checking it.
//
// Safety: the address of p must not be zero.
func (p Ptr[T]) AsNonNull() NonNull[T] {
	if debugChecks && p.IsNull() {
		panic(fmt.Sprintf("AsNonNull called on null pointer %s", p))
	}

	return NonNull[T]{p: p}
}

// Ptr returns the underlying pointer with its provenance
func (n NonNull[T]) Ptr() Ptr[T] {
	return n.p
}

func (n NonNull[T]) Address() uintptr {
	return n.p.Address()
}

func (n NonNull[T]) Pointer() *T {
	return n.p.Pointer()
}

func (n NonNull[T]) String() string {
	return n.p.String()
}
