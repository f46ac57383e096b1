package alloc

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

const (
	// AllocatorCreateExternallySynchronized ensures that this allocator will not be synchronized
	// internally. The consumer must guarantee it is used from only one goroutine at a time or is
	// synchronized by some other mechanism. The Backend is still expected to be safe for
	// concurrent use on its own terms.
	AllocatorCreateExternallySynchronized CreateFlags = 1 << iota
)

var createFlagNames = map[CreateFlags]string{
	AllocatorCreateExternallySynchronized: "AllocatorCreateExternallySynchronized",
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for bit := CreateFlags(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit == 0 {
			continue
		}

		name, ok := createFlagNames[bit]
		if !ok {
			name = fmt.Sprintf("CreateFlags(0x%x)", int32(bit))
		}
		names = append(names, name)
	}

	return strings.Join(names, "|")
}

// OutOfMemoryHandler is called when the Backend cannot satisfy a request. It must not return:
// typical handlers terminate the process, or panic when the caller has arranged to recover.
//
// layout is the request that failed. For Reallocate that is the new size with the block's
// existing alignment, not the layout the block currently has.
type OutOfMemoryHandler func(layout Layout)

// exitProcess is replaced in tests
var exitProcess = os.Exit

// DefaultOutOfMemoryHandler reports the failed layout on stderr and terminates the process with
// exit status 2, the same status the Go runtime uses for fatal errors
func DefaultOutOfMemoryHandler(layout Layout) {
	fmt.Fprintf(os.Stderr, "fatal error: out of memory allocating %d bytes with alignment %d\n", layout.Size, layout.Align)
	exitProcess(2)
}

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags

	// MemoryCallbackOptions is an optional set of callbacks that will be executed when memory
	// is obtained from or returned to the Backend
	MemoryCallbackOptions *MemoryCallbackOptions

	// OutOfMemoryHandler is called when an allocation fails. If it is nil,
	// DefaultOutOfMemoryHandler is used.
	OutOfMemoryHandler OutOfMemoryHandler
}

// New creates a new Allocator
//
// logger - Receives debug messages for every call and an error when an allocation fails. If nil,
// slog.Default() is used.
//
// backend - The system allocator that memory is drawn from
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, backend Backend, options CreateOptions) *Allocator {
	if logger == nil {
		logger = slog.Default()
	}

	useMutex := options.Flags&AllocatorCreateExternallySynchronized == 0

	allocator := &Allocator{
		logger:      logger,
		backend:     backend,
		createFlags: options.Flags,
		outOfMemory: options.OutOfMemoryHandler,
	}
	allocator.statsMutex.UseMutex = useMutex
	allocator.callbacks = &memoryCallbacks{
		Callbacks: options.MemoryCallbackOptions,
		Allocator: allocator,
	}

	if allocator.outOfMemory == nil {
		allocator.outOfMemory = DefaultOutOfMemoryHandler
	}

	allocator.stats.Clear()

	return allocator
}
