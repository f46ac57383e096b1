//go:build unix

package alloc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rawptr/alloc"
	"github.com/vkngwrapper/rawptr/ptr"
)

func TestMmapBackendPages(t *testing.T) {
	backend := alloc.NewMmapBackend()
	pageSize := backend.PageSize()
	require.NotZero(t, pageSize)

	layout := alloc.Layout{Size: 100, Align: 8}
	p := backend.AllocZeroed(layout)
	require.False(t, p == nil)
	require.Equal(t, uintptr(0), uintptr(p)%pageSize)

	// The whole page is mapped and zeroed
	page := unsafe.Slice((*byte)(p), pageSize)
	require.Equal(t, make([]byte, pageSize), page)
	page[pageSize-1] = 1

	backend.Dealloc(p, layout)
}

func TestMmapBackendRealloc(t *testing.T) {
	backend := alloc.NewMmapBackend()
	pageSize := backend.PageSize()

	layout := alloc.Layout{Size: 16, Align: 16}
	p := backend.Alloc(layout)
	copy(unsafe.Slice((*byte)(p), 16), "mapped contents!")

	// Still within the first page
	same := backend.Realloc(p, layout, pageSize)
	require.Equal(t, p, same)

	pageLayout := alloc.Layout{Size: pageSize, Align: 16}
	grown := backend.Realloc(same, pageLayout, pageSize*3)
	require.False(t, grown == nil)
	require.Equal(t, "mapped contents!", string(unsafe.Slice((*byte)(grown), 16)))
	unsafe.Slice((*byte)(grown), pageSize*3)[pageSize*3-1] = 1

	backend.Dealloc(grown, alloc.Layout{Size: pageSize * 3, Align: 16})
}

func TestMmapBackendOverAligned(t *testing.T) {
	backend := alloc.NewMmapBackend()
	align := backend.PageSize() * 4

	layout := alloc.Layout{Size: 64, Align: align}
	p := backend.Alloc(layout)
	require.False(t, p == nil)
	require.Equal(t, uintptr(0), uintptr(p)%align)

	moved := backend.Realloc(p, layout, align*2)
	require.False(t, moved == nil)
	require.Equal(t, uintptr(0), uintptr(moved)%align)

	backend.Dealloc(moved, alloc.Layout{Size: align * 2, Align: align})
}

func TestMmapBackendOversized(t *testing.T) {
	backend := alloc.NewMmapBackend()

	require.True(t, backend.Alloc(alloc.Layout{Size: ^uintptr(0) - 1, Align: 8}) == nil)
}

func TestAllocatorWithMmapBackend(t *testing.T) {
	backend := alloc.NewMmapBackend()
	allocator := alloc.New(testLogger(), backend, alloc.CreateOptions{})

	layout, err := alloc.ArrayLayout[int64](1024)
	require.NoError(t, err)

	values := ptr.Cast[int64](allocator.AllocateZeroed(layout))
	for i := 0; i < 1024; i++ {
		require.Equal(t, int64(0), values.Add(i).Read())
		values.Add(i).Write(int64(-i))
	}
	require.Equal(t, int64(-1023), values.Add(1023).Read())

	allocator.Deallocate(ptr.Cast[byte](values), layout)
}
