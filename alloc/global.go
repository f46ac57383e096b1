package alloc

import (
	"sync/atomic"

	"github.com/vkngwrapper/rawptr/ptr"
)

var defaultAllocator atomic.Pointer[Allocator]

// Default returns the process-wide Allocator used by the package-level functions. Unless
// SetDefault has been called, it is backed by an unlimited HeapBackend and logs to slog.Default().
func Default() *Allocator {
	allocator := defaultAllocator.Load()
	if allocator != nil {
		return allocator
	}

	defaultAllocator.CompareAndSwap(nil, New(nil, NewHeapBackend(HeapBackendOptions{}), CreateOptions{}))
	return defaultAllocator.Load()
}

// SetDefault replaces the process-wide Allocator and returns the previous one. Memory must be
// deallocated through the Allocator that allocated it, so callers that swap the default must
// keep the previous Allocator around until its blocks are freed.
func SetDefault(allocator *Allocator) *Allocator {
	return defaultAllocator.Swap(allocator)
}

// Allocate calls Allocate on the Default allocator
func Allocate(layout Layout) ptr.Ptr[byte] {
	return Default().Allocate(layout)
}

// AllocateZeroed calls AllocateZeroed on the Default allocator
func AllocateZeroed(layout Layout) ptr.Ptr[byte] {
	return Default().AllocateZeroed(layout)
}

// Deallocate calls Deallocate on the Default allocator
func Deallocate(memory ptr.Ptr[byte], layout Layout) {
	Default().Deallocate(memory, layout)
}

// Reallocate calls Reallocate on the Default allocator
func Reallocate(memory ptr.Ptr[byte], layout Layout, newSize uintptr) ptr.Ptr[byte] {
	return Default().Reallocate(memory, layout, newSize)
}
