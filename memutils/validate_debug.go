//go:build debug_rawptr

package memutils

import (
	"fmt"
	"unsafe"
)

const (
	// DebugMargin is the number of bytes of debug data that should be placed after allocations
	// handed out by backends that support corruption detection
	DebugMargin int = 16
	// corruptionDetectionMagicValue is a 4-byte pattern that should be copied into debug data placed
	// after allocations
	corruptionDetectionMagicValue uint32 = 0x7F84E666
)

// WriteMagicValue writes an easy-to-identify marker across DebugMargin bytes at the provided pointer and offset.
// This method no-ops unless the debug_rawptr build tag is present.
func WriteMagicValue(data unsafe.Pointer, offset int) {
	magic := corruptionDetectionMagicValue
	pattern := *(*[4]byte)(unsafe.Pointer(&magic))

	dest := unsafe.Add(data, offset)
	marginSize := DebugMargin / int(unsafe.Sizeof(uint32(0)))
	for i := 0; i < marginSize; i++ {
		// The margin is not guaranteed to be 4-byte aligned
		*(*[4]byte)(dest) = pattern
		dest = unsafe.Add(dest, unsafe.Sizeof(uint32(0)))
	}
}

// ValidateMagicValue verifies that the easy-to-identify marker written by WriteMagicValue is still present.
// It returns true if the value is still present and false otherwise.
// This method no-ops unless the debug_rawptr build tag is present.
func ValidateMagicValue(data unsafe.Pointer, offset int) bool {
	magic := corruptionDetectionMagicValue
	expected := *(*[4]byte)(unsafe.Pointer(&magic))

	source := unsafe.Add(data, offset)
	marginSize := DebugMargin / int(unsafe.Sizeof(uint32(0)))
	for i := 0; i < marginSize; i++ {
		if *(*[4]byte)(source) != expected {
			return false
		}
		source = unsafe.Add(source, unsafe.Sizeof(uint32(0)))
	}

	return true
}

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_rawptr build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugCheckPow2 will verify that the numerical value passed in is a power of two, and panics if it is not.
// This method no-ops unless the debug_rawptr build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
	err := CheckPow2[T](value, name)
	if err != nil {
		panic(err)
	}
}

// DebugCheck panics with the formatted message if condition is false.
// This method no-ops unless the debug_rawptr build tag is present.
func DebugCheck(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf(format, args...))
	}
}
