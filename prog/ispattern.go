package prog

// IsPattern reports whether pattern contains glob syntax that makes it
// worth treating as a pattern rather than a literal string.
//
// It is a heuristic scan that does not compile: it approves shapes the
// compiler may still reject. It returns true at the first *, ?, closed
// bracket class, non-leading | (AllowOr) or balanced (...) pair
// (AllowSave). It returns false on an unterminated class, a leading |, or
// unbalanced parentheses.
func IsPattern(pattern string, flags Flags) bool {
	n := len(pattern)
	escape := flags.Has(AllowEscape)
	open := false

	for i := 0; i < n; i++ {
		switch pattern[i] {
		case '*', '?':
			return true
		case '[':
			for i++; i < n && pattern[i] != ']'; i++ {
				if escape && pattern[i] == '\\' {
					i++
				}
			}
			return i < n
		case '|':
			if flags.Has(AllowOr) {
				return i > 0
			}
		case '(':
			if flags.Has(AllowSave) {
				if open {
					return false
				}
				open = true
			}
		case ')':
			if flags.Has(AllowSave) {
				return open
			}
		case '\\':
			if escape && i < n-1 {
				i++
			}
		}
	}
	return false
}
