//go:build unix

package alloc

import (
	"sync"
	"unsafe"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/rawptr/memutils"
	"golang.org/x/sys/unix"
)

// MmapBackend serves every allocation from its own anonymous private mapping. Sizes are rounded
// up to whole pages and blocks are always zero-filled. Alignments above the page size are
// satisfied by over-mapping; those mappings are remembered so they can be unmapped whole.
type MmapBackend struct {
	pageSize uintptr

	mutex       sync.Mutex
	overAligned *swiss.Map[uintptr, []byte]
}

var _ Backend = &MmapBackend{}

// NewMmapBackend creates an MmapBackend
func NewMmapBackend() *MmapBackend {
	return &MmapBackend{
		pageSize:    uintptr(unix.Getpagesize()),
		overAligned: swiss.NewMap[uintptr, []byte](8),
	}
}

// PageSize returns the granularity of mappings made by this backend
func (b *MmapBackend) PageSize() uintptr {
	return b.pageSize
}

func (b *MmapBackend) mappingLength(layout Layout) uintptr {
	size := layout.Size
	if size == 0 {
		size = 1
	}

	if size > ^uintptr(0)-(b.pageSize-1) {
		return 0
	}
	return memutils.AlignUp(size, b.pageSize)
}

func (b *MmapBackend) mmap(length uintptr) []byte {
	if length == 0 || length > uintptr(^uint(0)>>1) {
		return nil
	}

	data, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil
	}

	return data
}

func (b *MmapBackend) Alloc(layout Layout) unsafe.Pointer {
	length := b.mappingLength(layout)

	if layout.Align <= b.pageSize {
		data := b.mmap(length)
		if data == nil {
			return nil
		}

		return unsafe.Pointer(&data[0])
	}

	if length > ^uintptr(0)-layout.Align {
		return nil
	}
	data := b.mmap(length + layout.Align)
	if data == nil {
		return nil
	}

	start := memutils.AlignPadding(uintptr(unsafe.Pointer(&data[0])), layout.Align)
	p := unsafe.Pointer(&data[start])

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.overAligned.Put(uintptr(p), data)

	return p
}

func (b *MmapBackend) AllocZeroed(layout Layout) unsafe.Pointer {
	return b.Alloc(layout)
}

func (b *MmapBackend) Dealloc(p unsafe.Pointer, layout Layout) {
	var data []byte

	if layout.Align <= b.pageSize {
		data = unsafe.Slice((*byte)(p), b.mappingLength(layout))
	} else {
		b.mutex.Lock()
		mapping, ok := b.overAligned.Get(uintptr(p))
		if ok {
			b.overAligned.Delete(uintptr(p))
		}
		b.mutex.Unlock()

		memutils.DebugCheck(ok, "Dealloc called with %p, which is not a live mapping", p)
		if !ok {
			return
		}
		data = mapping
	}

	err := unix.Munmap(data)
	memutils.DebugCheck(err == nil, "failed to unmap %p: %v", p, err)
}

func (b *MmapBackend) Realloc(p unsafe.Pointer, layout Layout, newSize uintptr) unsafe.Pointer {
	newLayout := Layout{Size: newSize, Align: layout.Align}

	// Both sizes land in the same number of pages, so the mapping already fits
	if layout.Align <= b.pageSize && b.mappingLength(layout) == b.mappingLength(newLayout) {
		return p
	}

	newPtr := b.Alloc(newLayout)
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
