package alloc

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type exitCalled int

func TestDefaultOutOfMemoryHandlerExits(t *testing.T) {
	previous := exitProcess
	defer func() { exitProcess = previous }()

	exitProcess = func(code int) {
		panic(exitCalled(code))
	}

	var logOutput bytes.Buffer
	allocator := New(slog.New(slog.NewJSONHandler(&logOutput, nil)), NewHeapBackend(HeapBackendOptions{Limit: 16}), CreateOptions{})

	require.PanicsWithValue(t, exitCalled(2), func() {
		allocator.Allocate(Layout{Size: 32, Align: 8})
	})
	require.Contains(t, logOutput.String(), "[OUT OF MEMORY]")
	require.Contains(t, logOutput.String(), `"size":32`)
}

func TestNewDefaults(t *testing.T) {
	allocator := New(nil, NewHeapBackend(HeapBackendOptions{}), CreateOptions{})

	require.Same(t, slog.Default(), allocator.logger)
	require.NotNil(t, allocator.outOfMemory)
	require.True(t, allocator.statsMutex.UseMutex)

	allocator = New(slog.New(slog.NewTextHandler(io.Discard, nil)), NewHeapBackend(HeapBackendOptions{}), CreateOptions{
		Flags: AllocatorCreateExternallySynchronized,
	})
	require.False(t, allocator.statsMutex.UseMutex)
}
