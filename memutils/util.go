package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint | ~uintptr
}

// CheckPow2 returns an error wrapping PowerOfTwoError if number is zero or is not a power of two
func CheckPow2[T Number](number T, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment, which must be a power of two.
// The addition wraps on overflow.
func AlignUp[T Number](value T, alignment T) T {
	return (value + alignment - 1) & ^(alignment - 1)
}

// AlignDown rounds value down to the previous multiple of alignment, which must be a power of two
func AlignDown[T Number](value T, alignment T) T {
	return value & ^(alignment - 1)
}

// AlignPadding is the number of bytes that must be added to value to reach the next multiple
// of alignment
func AlignPadding[T Number](value T, alignment T) T {
	return AlignUp(value, alignment) - value
}
