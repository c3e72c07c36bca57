// Package simd provides the byte search primitives used by the glob matcher
// and its prefilters.
//
// The matcher spends most of its time looking for the next position where a
// literal byte following a '*' can occur, and the prefilters look for
// required literals anywhere in the subject. Both reduce to memchr/memmem.
//
// On CPUs with vector units (AVX2/SSE4.2 on x86-64, ASIMD on arm64) the
// single-needle search hands off to bytes.IndexByte, whose runtime assembly
// is vectorized. Everywhere else, and for the two-needle search which has no
// stdlib counterpart, a SWAR (SIMD Within A Register) implementation is used
// that processes 8 bytes per iteration.
package simd

import "golang.org/x/sys/cpu"

// CPU feature detection flags set at package initialization.
var (
	// hasVector reports whether the runtime's IndexByte is vectorized on
	// this CPU.
	hasVector = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD
)

// vectorThreshold is the haystack length below which the SWAR loop beats
// the call overhead of the vectorized search.
const vectorThreshold = 32

// SWAR constants for zero-byte detection (Hacker's Delight).
const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// HasVector reports whether vectorized byte search is in use.
func HasVector() bool {
	return hasVector
}
