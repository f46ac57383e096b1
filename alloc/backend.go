package alloc

import "unsafe"

//go:generate mockgen -source backend.go -destination mocks/backend.go -package mocks

// Backend is the system allocator that an Allocator draws memory from. A nil result from Alloc,
// AllocZeroed or Realloc means the request could not be satisfied; Backend implementations never
// report failure any other way. Implementations must be safe for concurrent use.
//
// Blocks are not scanned by the garbage collector, so pointers stored in them do not keep Go heap
// objects alive.
type Backend interface {
	// Alloc returns a block of at least layout.Size bytes aligned to layout.Align. The contents
	// are unspecified.
	Alloc(layout Layout) unsafe.Pointer
	// AllocZeroed is Alloc, but the block is zero-filled
	AllocZeroed(layout Layout) unsafe.Pointer
	// Dealloc returns a block to the backend. layout must be the layout the block was allocated with.
	Dealloc(p unsafe.Pointer, layout Layout)
	// Realloc resizes a block to newSize bytes, keeping layout.Align and the contents up to the
	// smaller of the two sizes. The block may move. On failure the original block is untouched.
	Realloc(p unsafe.Pointer, layout Layout, newSize uintptr) unsafe.Pointer
}
