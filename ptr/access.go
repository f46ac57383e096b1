package ptr

import (
	"fmt"
	"unsafe"
)

// Dropper is implemented by values that own resources which must be released by DropInPlace
type Dropper interface {
	Drop()
}

func (p Ptr[T]) checkAccess(op string, aligned bool) {
	if !debugChecks {
		return
	}

	if p.base == nil {
		panic(fmt.Sprintf("%s through pointer %s with no provenance", op, p))
	}

	if aligned && !p.IsAligned() {
		panic(fmt.Sprintf("%s through pointer %s which is not aligned to %d", op, p, alignOf[T]()))
	}
}

func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), sizeOf[T]())
}

// Read returns a copy of the value at p. The memory is left unchanged; if T owns resources the
// copy and the original now share them, and only one of them may be used afterwards.
//
// Safety: p must be valid for reads of T, properly aligned, and point at an initialized T.
func (p Ptr[T]) Read() T {
	p.checkAccess("Read", true)
	return *p.Pointer()
}

// ReadUnaligned is Read without the alignment requirement. The value is copied byte by byte.
//
// Safety: p must be valid for reads of T and point at an initialized T. T must not contain Go
// pointers.
func (p Ptr[T]) ReadUnaligned() T {
	p.checkAccess("ReadUnaligned", false)

	var value T
	copy(bytesOf(&value), unsafe.Slice((*byte)(p.UnsafePointer()), sizeOf[T]()))
	return value
}

// ReadVolatile is Read, but the load is never elided, merged or reordered with other volatile
// accesses by the compiler. It is intended for memory that may be changed by something other than
// the current program, such as device or shared memory. It is not atomic.
//
// Safety: see Read.
func (p Ptr[T]) ReadVolatile() T {
	p.checkAccess("ReadVolatile", true)
	return volatileLoad(p.Pointer())
}

// Write stores value at p without reading or dropping the previous contents.
//
// Safety: p must be valid for writes of T and properly aligned.
func (p Ptr[T]) Write(value T) {
	p.checkAccess("Write", true)
	*p.Pointer() = value
}

// WriteUnaligned is Write without the alignment requirement. The value is copied byte by byte.
//
// Safety: p must be valid for writes of T. T must not contain Go pointers.
func (p Ptr[T]) WriteUnaligned(value T) {
	p.checkAccess("WriteUnaligned", false)
	copy(unsafe.Slice((*byte)(p.UnsafePointer()), sizeOf[T]()), bytesOf(&value))
}

// WriteVolatile is Write, but the store is never elided, merged or reordered with other volatile
// accesses by the compiler. It is not atomic.
//
// Safety: see Write.
func (p Ptr[T]) WriteVolatile(value T) {
	p.checkAccess("WriteVolatile", true)
	volatileStore(p.Pointer(), value)
}

// Replace stores value at p and returns the value that was there before.
//
// Safety: p must be valid for reads and writes of T, properly aligned, and point at an initialized T.
func (p Ptr[T]) Replace(value T) T {
	p.checkAccess("Replace", true)

	target := p.Pointer()
	old := *target
	*target = value
	return old
}

// DropInPlace releases the value at p without freeing the memory it occupies. If *T or T implements
// Dropper, Drop is called on it. The memory is then zeroed.
//
// Safety: p must be valid for reads and writes of T, properly aligned, and point at an initialized
// T. The value must not be used again after it has been dropped.
func (p Ptr[T]) DropInPlace() {
	p.checkAccess("DropInPlace", true)

	target := p.Pointer()
	if dropper, ok := any(target).(Dropper); ok {
		dropper.Drop()
	} else if dropper, ok := any(*target).(Dropper); ok {
		dropper.Drop()
	}

	var zero T
	*target = zero
}

// CopyFromNonoverlapping copies count elements from src to p. See CopyNonoverlapping.
func (p Ptr[T]) CopyFromNonoverlapping(src Ptr[T], count int) {
	CopyNonoverlapping(src, p, count)
}

// WriteBytes sets count*sizeof(T) bytes starting at p to value.
//
// Safety: p must be valid for writes of count elements of T. The resulting bytes must form valid
// values of T before they are read as T; in particular, any nonzero value is invalid if T contains
// Go pointers.
func (p Ptr[T]) WriteBytes(value byte, count int) {
	size := count * int(sizeOf[T]())
	if size == 0 {
		return
	}
	p.checkAccess("WriteBytes", true)

	buf := unsafe.Slice((*byte)(p.UnsafePointer()), size)
	for i := range buf {
		buf[i] = value
	}
}

// CopyNonoverlapping copies count elements of T from src to dst. The copy is typed, so the garbage
// collector observes any Go pointers it moves.
//
// Safety: src must be valid for reads and dst valid for writes of count elements, both properly
// aligned, and the two regions must not overlap.
func CopyNonoverlapping[T any](src, dst Ptr[T], count int) {
	if count == 0 {
		return
	}
	src.checkAccess("CopyNonoverlapping", true)
	dst.checkAccess("CopyNonoverlapping", true)
	checkNonoverlapping("CopyNonoverlapping", src, dst, count)

	copy(dst.Slice(count), src.Slice(count))
}

// SwapNonoverlapping exchanges count elements of T between x and y.
//
// Safety: x and y must both be valid for reads and writes of count elements, properly aligned,
// and the two regions must not overlap.
func SwapNonoverlapping[T any](x, y Ptr[T], count int) {
	if count == 0 {
		return
	}
	x.checkAccess("SwapNonoverlapping", true)
	y.checkAccess("SwapNonoverlapping", true)
	checkNonoverlapping("SwapNonoverlapping", x, y, count)

	xs, ys := x.Slice(count), y.Slice(count)
	for i := range xs {
		xs[i], ys[i] = ys[i], xs[i]
	}
}

func checkNonoverlapping[T any](op string, x, y Ptr[T], count int) {
	if !debugChecks {
		return
	}

	size := uintptr(count) * sizeOf[T]()
	a, b := x.Address(), y.Address()
	if a > b {
		a, b = b, a
	}

	if b-a < size {
		panic(fmt.Sprintf("%s called with overlapping regions %s and %s of %d bytes", op, x, y, size))
	}
}
