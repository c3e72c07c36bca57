package prog

import "math/bits"

// ByteSet is a set of byte values stored as a 256-bit bitmap.
//
// The compiler collects bracket class members in a ByteSet so that
// duplicates and overlapping ranges collapse before the class is
// serialized, and members come out sorted.
type ByteSet [4]uint64

// Add inserts b into the set.
func (s *ByteSet) Add(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// AddRange inserts every byte in [lo, hi].
func (s *ByteSet) AddRange(lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		s.Add(byte(c))
	}
}

// Contains reports whether b is in the set.
func (s *ByteSet) Contains(b byte) bool {
	return s[b>>6]&(1<<(b&63)) != 0
}

// Len returns the number of bytes in the set.
func (s *ByteSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) +
		bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// IsFull reports whether all 256 byte values are in the set.
func (s *ByteSet) IsFull() bool {
	return s[0]&s[1]&s[2]&s[3] == ^uint64(0)
}

// AppendMembers appends the members of the set to dst in ascending order.
func (s *ByteSet) AppendMembers(dst []byte) []byte {
	for w, word := range s {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			dst = append(dst, byte(w<<6+tz))
			word &= word - 1
		}
	}
	return dst
}

// isPrint reports whether c is printable in the C locale.
func isPrint(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

// fold maps ASCII upper case letters to lower case.
func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
