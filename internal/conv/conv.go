// Package conv provides checked integer narrowing for the glob compiler.
//
// The compiled instruction stream stores counts in single bytes. A count
// that does not fit indicates a compiler bug, so these helpers panic rather
// than silently truncate.
package conv

import "math"

// IntToUint8 converts n to a uint8.
// Panics if n < 0 or n > math.MaxUint8.
//
//go:inline
func IntToUint8(n int) uint8 {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of uint8 range")
	}
	return uint8(n)
}
