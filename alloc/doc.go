// Package alloc connects ptr.Ptr to a system allocator.
//
// An Allocator wraps a Backend (HeapBackend for the Go heap, MmapBackend for anonymous mappings on
// unix systems, or any other implementation) and exposes the four allocation lifecycle operations
// in terms of ptr.Ptr[byte]. Running out of memory is treated as an unrecoverable fault of the
// environment rather than an error value: there is no error result to check, and a failed request
// is handed to the allocator's OutOfMemoryHandler, which does not return.
//
// Memory handed out by an Allocator is not scanned by the garbage collector, whichever Backend
// serves it. A Go pointer written into a block does not keep its target alive: the block must
// never hold the only reference to an object on the Go heap. Store pointer-bearing values there
// only while the object is kept reachable by an ordinary Go reference as well.
//
// Programs that only need address handles import package ptr alone; nothing in this package is
// linked unless it is imported.
package alloc
