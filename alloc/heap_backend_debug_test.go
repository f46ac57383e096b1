//go:build debug_rawptr

package alloc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rawptr/alloc"
)

func TestHeapBackendDetectsOverrun(t *testing.T) {
	backend := alloc.NewHeapBackend(alloc.HeapBackendOptions{})

	layout := alloc.Layout{Size: 8, Align: 8}
	p := backend.Alloc(layout)

	// One byte past the end lands in the debug margin
	*(*byte)(unsafe.Add(p, 8)) = 0xFF

	require.Panics(t, func() {
		backend.Dealloc(p, layout)
	})
}

func TestHeapBackendDetectsDoubleFree(t *testing.T) {
	backend := alloc.NewHeapBackend(alloc.HeapBackendOptions{})

	layout := alloc.Layout{Size: 8, Align: 8}
	p := backend.Alloc(layout)
	backend.Dealloc(p, layout)

	require.Panics(t, func() {
		backend.Dealloc(p, layout)
	})
}
