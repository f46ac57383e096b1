package ptr

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/dolthub/maphash"
)

const addressDigits = bits.UintSize / 4

// Equal reports whether p and other have the same address. Provenance is not compared.
func (p Ptr[T]) Equal(other Ptr[T]) bool {
	return p.Address() == other.Address()
}

// Compare orders pointers by address. It returns -1 if p is below other, +1 if it is above,
// and 0 if they are Equal.
func (p Ptr[T]) Compare(other Ptr[T]) int {
	a, b := p.Address(), other.Address()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (p Ptr[T]) Less(other Ptr[T]) bool {
	return p.Address() < other.Address()
}

// Key returns a value that can be used as a map key. Pointers with equal keys are Equal.
func (p Ptr[T]) Key() uintptr {
	return p.Address()
}

// Hasher hashes pointers by address, consistent with Equal
type Hasher[T any] struct {
	hasher maphash.Hasher[uintptr]
}

// NewHasher creates a Hasher with a random seed
func NewHasher[T any]() Hasher[T] {
	return Hasher[T]{hasher: maphash.NewHasher[uintptr]()}
}

func (h Hasher[T]) Hash(p Ptr[T]) uint64 {
	return h.hasher.Hash(p.Address())
}

// String formats the address as 0x followed by hexadecimal digits zero-padded to the width of
// an address
func (p Ptr[T]) String() string {
	return fmt.Sprintf("0x%0*x", addressDigits, p.Address())
}

// Format implements fmt.Formatter. %x and %X print the padded hexadecimal address without a prefix
// unless the # flag is given, %d prints it in decimal, and every other verb prints String.
func (p Ptr[T]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'x', 'X':
		prefix := ""
		if f.Flag('#') {
			prefix = "0x"
		}
		format := "%s%0*x"
		if verb == 'X' {
			format = "%s%0*X"
		}
		fmt.Fprintf(f, format, prefix, addressDigits, p.Address())
	case 'd':
		fmt.Fprintf(f, "%d", p.Address())
	default:
		_, _ = io.WriteString(f, p.String())
	}
}
