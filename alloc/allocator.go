package alloc

import (
	"context"
	"fmt"
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/pkg/errors"
	"github.com/vkngwrapper/rawptr/internal/utils"
	"github.com/vkngwrapper/rawptr/memutils"
	"github.com/vkngwrapper/rawptr/ptr"
	"golang.org/x/exp/slog"
)

// ErrOutOfMemoryHandlerReturned is the panic value used when an OutOfMemoryHandler returns instead
// of terminating
var ErrOutOfMemoryHandlerReturned error = errors.New("out of memory handler returned")

// Allocator hands out Ptr values backed by a Backend. Allocation failure is not reported to the
// caller: it is passed to the OutOfMemoryHandler, which does not return, so the Ptr returned by
// Allocate, AllocateZeroed and Reallocate is never null.
//
// Allocator does not keep track of which blocks are live. Every block must be returned with
// Deallocate, passing the same Layout it was allocated with, and must not be used afterwards.
type Allocator struct {
	logger      *slog.Logger
	backend     Backend
	createFlags CreateFlags
	callbacks   *memoryCallbacks
	outOfMemory OutOfMemoryHandler

	statsMutex utils.OptionalRWMutex
	stats      memutils.Statistics
}

// Backend returns the Backend this allocator draws memory from
func (a *Allocator) Backend() Backend {
	return a.backend
}

// Allocate returns a block of layout.Size bytes aligned to layout.Align with unspecified contents.
//
// Safety: layout must satisfy NewLayout. Zero-sized layouts are not supported by every Backend.
// The block is not scanned by the garbage collector and must not hold the only reference to an
// object on the Go heap.
func (a *Allocator) Allocate(layout Layout) ptr.Ptr[byte] {
	a.logger.Debug("Allocator::Allocate", slog.Uint64("Size", uint64(layout.Size)), slog.Uint64("Align", uint64(layout.Align)))
	memutils.DebugValidate(layout)

	return a.finishAllocation(a.backend.Alloc(layout), layout)
}

// AllocateZeroed is Allocate, but the block is zero-filled. The same Safety rules apply: the
// garbage collector does not scan the block.
func (a *Allocator) AllocateZeroed(layout Layout) ptr.Ptr[byte] {
	a.logger.Debug("Allocator::AllocateZeroed", slog.Uint64("Size", uint64(layout.Size)), slog.Uint64("Align", uint64(layout.Align)))
	memutils.DebugValidate(layout)

	return a.finishAllocation(a.backend.AllocZeroed(layout), layout)
}

// Deallocate returns a block to the Backend.
//
// Safety: memory must have been returned by this allocator with the given layout and not yet
// deallocated. Neither memory nor any Ptr derived from it may be used afterwards.
func (a *Allocator) Deallocate(memory ptr.Ptr[byte], layout Layout) {
	a.logger.Debug("Allocator::Deallocate", slog.String("Memory", memory.String()), slog.Uint64("Size", uint64(layout.Size)))
	memutils.DebugCheck(!memory.IsNull(), "Deallocate called with a null pointer")

	a.callbacks.Free(memory, layout)
	a.backend.Dealloc(memory.UnsafePointer(), layout)

	a.statsMutex.Lock()
	defer a.statsMutex.Unlock()
	a.stats.RemoveAllocation(int(layout.Size))
}

// Reallocate resizes a block to newSize bytes with the same alignment, preserving its contents up
// to the smaller of the two sizes. The returned Ptr supersedes memory, which must not be used
// afterwards, even if the address did not change.
//
// Safety: memory must have been returned by this allocator with the given layout and not yet
// deallocated, and newSize rounded up to layout.Align must not overflow. As with the block it
// replaces, the new block is not scanned by the garbage collector.
func (a *Allocator) Reallocate(memory ptr.Ptr[byte], layout Layout, newSize uintptr) ptr.Ptr[byte] {
	a.logger.Debug("Allocator::Reallocate",
		slog.String("Memory", memory.String()),
		slog.Uint64("Size", uint64(layout.Size)),
		slog.Uint64("NewSize", uint64(newSize)),
	)
	newLayout := Layout{Size: newSize, Align: layout.Align}
	memutils.DebugValidate(newLayout)

	resized := a.backend.Realloc(memory.UnsafePointer(), layout, newSize)
	if resized == nil {
		a.handleAllocError(newLayout)
	}

	a.callbacks.Free(memory, layout)
	result := ptr.FromUnsafe[byte](resized)
	a.callbacks.Allocate(result, newLayout)

	a.statsMutex.Lock()
	defer a.statsMutex.Unlock()
	a.stats.ResizeAllocation(int(layout.Size), int(newSize))

	return result
}

func (a *Allocator) finishAllocation(memory unsafe.Pointer, layout Layout) ptr.Ptr[byte] {
	if memory == nil {
		a.handleAllocError(layout)
	}

	result := ptr.FromUnsafe[byte](memory)
	a.callbacks.Allocate(result, layout)

	a.statsMutex.Lock()
	defer a.statsMutex.Unlock()
	a.stats.AddAllocation(int(layout.Size))

	return result
}

func (a *Allocator) handleAllocError(layout Layout) {
	a.statsMutex.Lock()
	a.stats.AddFailure()
	a.statsMutex.Unlock()

	a.logger.LogAttrs(context.Background(), slog.LevelError, "[OUT OF MEMORY] allocation failed",
		slog.Uint64("size", uint64(layout.Size)),
		slog.Uint64("align", uint64(layout.Align)),
		slog.String("backend", fmt.Sprintf("%T", a.backend)),
	)

	a.outOfMemory(layout)

	panic(cerrors.Wrapf(ErrOutOfMemoryHandlerReturned, "allocating %d bytes with alignment %d", layout.Size, layout.Align))
}

// CalculateStatistics populates stats with the allocator's running counters
func (a *Allocator) CalculateStatistics(stats *memutils.Statistics) {
	a.statsMutex.RLock()
	defer a.statsMutex.RUnlock()

	*stats = a.stats
}

// BuildStatsString returns the allocator's configuration and running counters as a JSON document
func (a *Allocator) BuildStatsString() string {
	var stats memutils.Statistics
	a.CalculateStatistics(&stats)

	writer := jwriter.NewWriter()

	obj := writer.Object()
	obj.Name("Backend").String(fmt.Sprintf("%T", a.backend))
	obj.Name("Flags").String(a.createFlags.String())

	total := obj.Name("Total").Object()
	total.Name("AllocationCount").Int(stats.AllocationCount)
	total.Name("AllocationBytes").Int(stats.AllocationBytes)
	total.Name("PeakAllocationBytes").Int(stats.PeakAllocationBytes)
	total.Name("ReallocationCount").Int(stats.ReallocationCount)
	total.Name("FailureCount").Int(stats.FailureCount)
	if stats.AllocationSizeMax > 0 {
		total.Name("AllocationSizeMin").Int(stats.AllocationSizeMin)
		total.Name("AllocationSizeMax").Int(stats.AllocationSizeMax)
	}
	total.End()

	obj.End()

	return string(writer.Bytes())
}
