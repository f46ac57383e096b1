package alloc

import "github.com/vkngwrapper/rawptr/ptr"

type AllocateMemoryCallback func(
	allocator *Allocator,
	memory ptr.Ptr[byte],
	layout Layout,
	userData interface{},
)

type FreeMemoryCallback func(
	allocator *Allocator,
	memory ptr.Ptr[byte],
	layout Layout,
	userData interface{},
)

// MemoryCallbackOptions are informational callbacks invoked as memory moves between an Allocator
// and its Backend. Allocate is called after a block is obtained and Free before a block is
// returned. A successful Reallocate is reported as a Free of the old block followed by an
// Allocate of the new one.
type MemoryCallbackOptions struct {
	Allocate AllocateMemoryCallback
	Free     FreeMemoryCallback
	UserData interface{}
}

type memoryCallbacks struct {
	Callbacks *MemoryCallbackOptions
	Allocator *Allocator
}

func (c *memoryCallbacks) Allocate(
	memory ptr.Ptr[byte],
	layout Layout,
) {
	if c.Callbacks != nil && c.Callbacks.Allocate != nil {
		c.Callbacks.Allocate(c.Allocator, memory, layout, c.Callbacks.UserData)
	}
}

func (c *memoryCallbacks) Free(
	memory ptr.Ptr[byte],
	layout Layout,
) {
	if c.Callbacks != nil && c.Callbacks.Free != nil {
		c.Callbacks.Free(c.Allocator, memory, layout, c.Callbacks.UserData)
	}
}
