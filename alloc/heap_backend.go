package alloc

import (
	"unsafe"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/rawptr/internal/utils"
	"github.com/vkngwrapper/rawptr/memutils"
)

const maxHeapBlockSize = uintptr(^uint(0) >> 1)

// HeapBackendOptions contains optional settings when creating a HeapBackend
type HeapBackendOptions struct {
	// Limit is the maximum number of bytes that may be allocated at once. Requests that would
	// exceed it fail. Zero means no limit.
	Limit uintptr
	// ExternallySynchronized indicates the consumer guarantees the backend is only used from one
	// goroutine at a time, so it will not lock internally
	ExternallySynchronized bool
}

// HeapBackend serves allocations from the Go heap. Each block is a byte slice large enough to
// be aligned as requested; the slice is kept reachable until Dealloc so the garbage collector
// will not reclaim it while a Ptr refers to it.
//
// Blocks are always zero-filled, since the Go heap never hands out dirty memory. The slabs are
// byte slices, so the garbage collector does not look for pointers inside them.
type HeapBackend struct {
	mutex utils.OptionalMutex
	limit uintptr
	used  uintptr
	pins  *swiss.Map[uintptr, []byte]
}

var _ Backend = &HeapBackend{}

// NewHeapBackend creates a HeapBackend
func NewHeapBackend(options HeapBackendOptions) *HeapBackend {
	return &HeapBackend{
		mutex: utils.OptionalMutex{UseMutex: !options.ExternallySynchronized},
		limit: options.Limit,
		pins:  swiss.NewMap[uintptr, []byte](42),
	}
}

func (b *HeapBackend) Alloc(layout Layout) unsafe.Pointer {
	size := layout.Size
	if size == 0 {
		size = 1
	}

	overhead := uintptr(memutils.DebugMargin) + layout.Align - 1
	if overhead > maxHeapBlockSize || size > maxHeapBlockSize-overhead {
		return nil
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.limit > 0 && (layout.Size > b.limit || b.used > b.limit-layout.Size) {
		return nil
	}

	block := make([]byte, size+overhead)
	start := memutils.AlignPadding(uintptr(unsafe.Pointer(&block[0])), layout.Align)
	p := unsafe.Pointer(&block[start])

	memutils.WriteMagicValue(p, int(size))

	b.pins.Put(uintptr(p), block)
	b.used += layout.Size

	return p
}

func (b *HeapBackend) AllocZeroed(layout Layout) unsafe.Pointer {
	return b.Alloc(layout)
}

func (b *HeapBackend) Dealloc(p unsafe.Pointer, layout Layout) {
	size := layout.Size
	if size == 0 {
		size = 1
	}

	if !memutils.ValidateMagicValue(p, int(size)) {
		panic("memory corruption detected after the end of a heap allocation")
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	removed := b.pins.Delete(uintptr(p))
	memutils.DebugCheck(removed, "Dealloc called with %p, which is not a live heap allocation", p)

	if removed {
		b.used -= layout.Size
	}
}

func (b *HeapBackend) Realloc(p unsafe.Pointer, layout Layout, newSize uintptr) unsafe.Pointer {
	newPtr := b.Alloc(Layout{Size: newSize, Align: layout.Align})
	if newPtr == nil {
		return nil
	}

	copySize := layout.Size
	if newSize < copySize {
		copySize = newSize
	}
	copy(unsafe.Slice((*byte)(newPtr), copySize), unsafe.Slice((*byte)(p), copySize))

	b.Dealloc(p, layout)
	return newPtr
}

// LiveBlocks returns the number of blocks that have been allocated and not deallocated
func (b *HeapBackend) LiveBlocks() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.pins.Count()
}

// Used returns the number of bytes currently allocated, by requested size
func (b *HeapBackend) Used() uintptr {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.used
}
