//go:build debug_rawptr

package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rawptr/ptr"
)

func TestDebugChecksPanic(t *testing.T) {
	forged := ptr.Invalid[uint64](0x1000)
	require.Panics(t, func() { forged.Read() })
	require.Panics(t, func() { forged.Write(1) })

	var values [2]uint64
	misaligned := ptr.FromSlice(values[:]).ByteAdd(1)
	require.Panics(t, func() { misaligned.Read() })
	require.NotPanics(t, func() { misaligned.ReadUnaligned() })

	require.Panics(t, func() { ptr.Null[int]().AsNonNull() })
	require.Panics(t, func() { ptr.Invalid[byte](0x40).IsAlignedTo(3) })

	var buf [4]uint64
	p := ptr.FromSlice(buf[:])
	require.Panics(t, func() { ptr.CopyNonoverlapping(p, p.Add(1), 2) })
	require.NotPanics(t, func() { ptr.CopyNonoverlapping(p, p.Add(2), 2) })
}
