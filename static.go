package coreglob

// Match reports whether pattern matches the whole subject under the default
// configuration. An invalid pattern matches nothing.
//
// Example:
//
//	coreglob.Match("cat|dog", "dog")  // true
//	coreglob.Match("cat|dog", "bird") // false
func Match(pattern, subject string) bool {
	p, err := Compile(pattern)
	if err != nil {
		return false
	}
	return p.MatchString(subject)
}

// Parse is Match with the arguments in subject, pattern order.
func Parse(subject, pattern string) bool {
	return Match(pattern, subject)
}

// ParseCaptures matches subject against pattern with capture groups
// enabled and returns the captured text.
//
// Example:
//
//	caps, ok := coreglob.ParseCaptures("report.txt", "(*).txt")
//	// caps == ["report"], ok == true
func ParseCaptures(subject, pattern string) (captures []string, ok bool) {
	config := DefaultConfig()
	config.AllowSave = true
	p, err := CompileWithConfig(pattern, config)
	if err != nil {
		return nil, false
	}
	return p.FindStringCaptures(subject)
}

// IsPattern reports whether s contains glob syntax under the default
// configuration: '*', '?', a closed bracket class, or a '|' that is not
// the first byte. It is a quick syntax sniff and does not compile s, so a
// pattern that looks like a glob may still fail to compile.
//
// Example:
//
//	coreglob.IsPattern("main.go") // false
//	coreglob.IsPattern("*.go")    // true
//	coreglob.IsPattern("[abc")    // false
func IsPattern(s string) bool {
	return isPattern(s, DefaultConfig())
}
