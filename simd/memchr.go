package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("report.txt"), '.')
//	// pos == 6
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasVector && len(haystack) >= vectorThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
//
// The matcher uses it for case-insensitive literal search, passing the
// lower and upper case forms of a letter.
//
// Example:
//
//	pos := simd.Memchr2([]byte("README.md"), 'm', 'M')
//	// pos == 4
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if needle1 == needle2 {
		return Memchr(haystack, needle1)
	}
	return memchr2SWAR(haystack, needle1, needle2)
}

// memchrSWAR searches 8 bytes at a time: XOR with the broadcast needle turns
// matching bytes into zero bytes, and the zero-byte test marks the high bit
// of each of them. The lowest marked byte is always a true match.
func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	mask := uint64(needle) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		x := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		if z := (x - lo8) & ^x & hi8; z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// memchr2SWAR is memchrSWAR with two broadcast needles OR-ed together.
func memchr2SWAR(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		x1 := chunk ^ mask1
		x2 := chunk ^ mask2
		z := ((x1 - lo8) & ^x1 & hi8) | ((x2 - lo8) & ^x2 & hi8)
		if z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if c := haystack[i]; c == needle1 || c == needle2 {
			return i
		}
	}
	return -1
}
