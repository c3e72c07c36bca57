package simd

import "bytes"

// longNeedle is the needle length from which Memmem defers to bytes.Index,
// whose Rabin-Karp fallback keeps long searches linear.
const longNeedle = 32

// Memmem returns the index of the first instance of needle in haystack, or
// -1 if needle is not present. An empty needle matches at 0.
//
// Short needles are located by scanning for their rarest byte with Memchr
// and verifying each candidate. Byte rarity is tuned for file names and
// paths, the usual subjects of glob patterns.
//
// Example:
//
//	pos := simd.Memmem([]byte("logs/2024/app.log"), []byte(".log"))
//	// pos == 13
func Memmem(haystack, needle []byte) int {
	m := len(needle)
	switch {
	case m == 0:
		return 0
	case m > len(haystack):
		return -1
	case m == 1:
		return Memchr(haystack, needle[0])
	case m >= longNeedle:
		return bytes.Index(haystack, needle)
	}

	rare, off := rareByte(needle)
	start := off
	for start < len(haystack) {
		p := Memchr(haystack[start:], rare)
		if p < 0 {
			return -1
		}
		cand := start + p - off
		if cand+m > len(haystack) {
			return -1
		}
		if bytes.Equal(haystack[cand:cand+m], needle) {
			return cand
		}
		start += p + 1
	}
	return -1
}

// rareByte picks the needle byte least likely to occur in a path-like
// haystack, and its offset in the needle. Ties go to the last occurrence.
func rareByte(needle []byte) (byte, int) {
	best, off := needle[0], 0
	for i := 1; i < len(needle); i++ {
		if byteRank(needle[i]) <= byteRank(best) {
			best, off = needle[i], i
		}
	}
	return best, off
}

// byteRank approximates how common b is in file names and paths. Lower is
// rarer.
func byteRank(b byte) int {
	switch {
	case b == '/' || b == '.':
		return 250
	case b == ' ' || b == '_' || b == '-':
		return 220
	case b == 'e' || b == 'a' || b == 'o' || b == 'i' || b == 's' || b == 't':
		return 210
	case b >= 'a' && b <= 'z':
		return 170
	case b >= '0' && b <= '9':
		return 150
	case b >= 'A' && b <= 'Z':
		return 100
	case b >= 0x21 && b <= 0x7e:
		return 50
	default:
		return 10
	}
}
