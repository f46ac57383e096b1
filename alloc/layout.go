package alloc

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/rawptr/memutils"
)

// ErrLayoutOverflow is returned when a layout's size, rounded up to its alignment, does not fit
// in an address
var ErrLayoutOverflow error = errors.New("layout size overflows when rounded up to alignment")

// Layout describes the size and alignment of a block of memory. Each Allocator call that takes
// a Layout must be given the same Layout that the memory was allocated with.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates and returns a Layout. align must be a power of two and size rounded up to
// align must not overflow.
func NewLayout(size, align uintptr) (Layout, error) {
	err := memutils.CheckPow2(align, "align")
	if err != nil {
		return Layout{}, err
	}

	if size > ^uintptr(0)-(align-1) {
		return Layout{}, cerrors.Wrapf(ErrLayoutOverflow, "size %d with alignment %d", size, align)
	}

	return Layout{Size: size, Align: align}, nil
}

// LayoutOf returns the layout of a single T
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// ArrayLayout returns the layout of n contiguous values of T
func ArrayLayout[T any](n int) (Layout, error) {
	element := LayoutOf[T]()
	if n < 0 {
		return Layout{}, cerrors.Newf("array length %d is negative", n)
	}

	if element.Size != 0 && uintptr(n) > ^uintptr(0)/element.Size {
		return Layout{}, cerrors.Wrapf(ErrLayoutOverflow, "%d elements of size %d", n, element.Size)
	}

	return NewLayout(element.Size*uintptr(n), element.Align)
}

// PaddedSize is Size rounded up to a multiple of Align
func (l Layout) PaddedSize() uintptr {
	return memutils.AlignUp(l.Size, l.Align)
}

// Validate returns an error if the layout could not have been produced by NewLayout
func (l Layout) Validate() error {
	_, err := NewLayout(l.Size, l.Align)
	return err
}
