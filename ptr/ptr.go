package ptr

import (
	"unsafe"

	"github.com/vkngwrapper/rawptr/memutils"
	"golang.org/x/exp/constraints"
)

// Ptr is a raw address handle for values of type T. T is only used to size element arithmetic
// and to select how much memory is read or written; it has no runtime representation.
//
// The zero value is the null pointer. Use Equal and Compare rather than == to compare handles:
// == also compares the provenance a handle was derived from, so two handles with the same
// address are not necessarily ==.
type Ptr[T any] struct {
	// base is the live pointer this handle was derived from, or nil when the handle has no
	// provenance.
	base unsafe.Pointer
	// off is added to base with wrapping arithmetic. When base is nil it is the whole address.
	off uintptr
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func alignOf[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// Invalid creates a pointer with the given address and no provenance. It can be compared, hashed,
// and used as a sentinel or map key, but it must never be used to access memory.
func Invalid[T any](addr uintptr) Ptr[T] {
	return Ptr[T]{off: addr}
}

// Null creates a pointer with address zero and no provenance. It is the same as the zero value.
func Null[T any]() Ptr[T] {
	return Ptr[T]{}
}

// From creates a pointer that inherits the provenance of p. From(nil) is Null.
func From[T any](p *T) Ptr[T] {
	return Ptr[T]{base: unsafe.Pointer(p)}
}

// FromSlice creates a pointer to the first element of s with the provenance of its backing array
func FromSlice[T any](s []T) Ptr[T] {
	return Ptr[T]{base: unsafe.Pointer(unsafe.SliceData(s))}
}

// FromUnsafe creates a pointer that inherits the provenance of p. This is how memory obtained
// outside the Go heap (mmap, cgo) enters a Ptr.
func FromUnsafe[T any](p unsafe.Pointer) Ptr[T] {
	return Ptr[T]{base: p}
}

// Cast reinterprets p as a pointer to U. The address and provenance are unchanged; it is the
// caller's responsibility that later accesses are valid for U.
func Cast[U, T any](p Ptr[T]) Ptr[U] {
	return Ptr[U]{base: p.base, off: p.off}
}

// Address returns the numeric address of the pointer
func (p Ptr[T]) Address() uintptr {
	return uintptr(p.base) + p.off
}

// IsNull reports whether the address is zero. A non-null pointer is not necessarily valid.
func (p Ptr[T]) IsNull() bool {
	return p.Address() == 0
}

// HasProvenance reports whether p was derived from a live pointer rather than from a bare address
func (p Ptr[T]) HasProvenance() bool {
	return p.base != nil
}

// IsAligned reports whether the address is a multiple of T's alignment
func (p Ptr[T]) IsAligned() bool {
	return p.IsAlignedTo(alignOf[T]())
}

// IsAlignedTo reports whether the address is a multiple of align. The result is unspecified
// if align is not a power of two.
func (p Ptr[T]) IsAlignedTo(align uintptr) bool {
	memutils.DebugCheckPow2(align, "align")
	return p.Address()&(align-1) == 0
}

// WithAddress returns a pointer with the given address and the provenance of p. This is the
// only sound way to move a pointer to an arbitrary address, e.g. to strip tag bits.
func (p Ptr[T]) WithAddress(addr uintptr) Ptr[T] {
	return Ptr[T]{base: p.base, off: addr - uintptr(p.base)}
}

// Add offsets the pointer by n elements of T. The arithmetic wraps.
func (p Ptr[T]) Add(n int) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off + uintptr(n)*sizeOf[T]()}
}

// Sub offsets the pointer by -n elements of T. The arithmetic wraps.
func (p Ptr[T]) Sub(n int) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off - uintptr(n)*sizeOf[T]()}
}

// ByteAdd offsets the pointer by n bytes. The arithmetic wraps.
func (p Ptr[T]) ByteAdd(n int) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off + uintptr(n)}
}

// ByteSub offsets the pointer by -n bytes. The arithmetic wraps.
func (p Ptr[T]) ByteSub(n int) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off - uintptr(n)}
}

// Offset offsets p by n elements of T for any integer type. Negative values move backwards and
// all arithmetic wraps.
func Offset[T any, I constraints.Integer](p Ptr[T], n I) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off + uintptr(n)*sizeOf[T]()}
}

// ByteOffset offsets p by n bytes for any integer type. Negative values move backwards and
// all arithmetic wraps.
func ByteOffset[T any, I constraints.Integer](p Ptr[T], n I) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off + uintptr(n)}
}

// ByteDifference returns the wrapping difference between the addresses of p and other in bytes
func (p Ptr[T]) ByteDifference(other Ptr[T]) int {
	return int(p.Address() - other.Address())
}

// Difference returns the distance from other to p in elements of T, truncating any remainder.
// The wrapping byte difference is divided as an unsigned value, so the result is only the
// signed element count when p is at or above other. When T has size zero, the byte difference
// is returned.
func (p Ptr[T]) Difference(other Ptr[T]) int {
	size := sizeOf[T]()
	if size == 0 {
		return p.ByteDifference(other)
	}

	return int((p.Address() - other.Address()) / size)
}

// Mask clears every address bit that is not set in mask, preserving provenance. The cleared
// bits are subtracted from the offset instead of rebuilding the address.
func (p Ptr[T]) Mask(mask uintptr) Ptr[T] {
	return Ptr[T]{base: p.base, off: p.off - p.Address()&^mask}
}

// AlignDown rounds the address down to a multiple of align, which must be a power of two
func (p Ptr[T]) AlignDown(align uintptr) Ptr[T] {
	memutils.DebugCheckPow2(align, "align")
	return p.Mask(^(align - 1))
}

// AlignUp rounds the address up to a multiple of align, which must be a power of two. The
// arithmetic wraps.
func (p Ptr[T]) AlignUp(align uintptr) Ptr[T] {
	memutils.DebugCheckPow2(align, "align")
	return Ptr[T]{base: p.base, off: p.off + memutils.AlignPadding(p.Address(), align)}
}

// UnsafePointer converts p to an unsafe.Pointer. The result follows the unsafe.Pointer rules:
// it must point into (or one past the end of) the object p was derived from while that object
// is live.
func (p Ptr[T]) UnsafePointer() unsafe.Pointer {
	if p.base == nil {
		// No provenance: this is only ever valid for nil or foreign memory the caller vouches for
		return unsafe.Pointer(p.off)
	}

	return unsafe.Add(p.base, p.off)
}

// Pointer converts p to a *T. See UnsafePointer.
func (p Ptr[T]) Pointer() *T {
	return (*T)(p.UnsafePointer())
}

// Slice converts p to a slice of n elements starting at p.
//
// Safety: all n elements must be within the object p was derived from and stay live for as
// long as the slice is used.
func (p Ptr[T]) Slice(n int) []T {
	return unsafe.Slice(p.Pointer(), n)
}
