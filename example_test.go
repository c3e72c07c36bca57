package coreglob_test

import (
	"errors"
	"fmt"

	"github.com/coregx/coreglob"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	p, err := coreglob.Compile("*.go|go.mod")
	if err != nil {
		panic(err)
	}

	fmt.Println(p.MatchString("main.go"))
	fmt.Println(p.MatchString("go.sum"))
	// Output:
	// true
	// false
}

// ExampleMatch demonstrates the one-shot helper.
func ExampleMatch() {
	fmt.Println(coreglob.Match("[a-c]x", "bx"))
	fmt.Println(coreglob.Match("[^a-c]x", "bx"))
	// Output:
	// true
	// false
}

// ExamplePattern_FindStringCaptures demonstrates capture groups.
func ExamplePattern_FindStringCaptures() {
	config := coreglob.DefaultConfig()
	config.AllowSave = true
	p := coreglob.MustCompileWithConfig("(*)/(*).go", config)

	caps, ok := p.FindStringCaptures("cmd/main.go")
	fmt.Println(caps, ok)
	// Output: [cmd main] true
}

// ExampleParseCaptures demonstrates one-shot capture matching.
func ExampleParseCaptures() {
	caps, ok := coreglob.ParseCaptures("report.txt", "(*).txt")
	fmt.Println(caps, ok)
	// Output: [report] true
}

// ExampleGlob demonstrates the reconfigurable matcher.
func ExampleGlob() {
	g := coreglob.New("ABC")
	fmt.Println(g.MatchString("abc"))

	g.SetCaseSensitive(false)
	fmt.Println(g.MatchString("abc"))
	// Output:
	// false
	// true
}

// ExampleGlob_Capture demonstrates reading captures of the last match.
func ExampleGlob_Capture() {
	g := coreglob.New("(*).txt")
	g.SetAllowSave(true)

	if g.MatchString("report.txt") {
		name, _ := g.Capture(0)
		fmt.Println(name)
	}

	_, err := g.Capture(1)
	fmt.Println(errors.Is(err, coreglob.ErrCaptureIndex))
	// Output:
	// report
	// true
}

// ExampleError_Diagnostic demonstrates compile diagnostics.
func ExampleError_Diagnostic() {
	_, err := coreglob.Compile("[z-a]*")

	var e *coreglob.Error
	if errors.As(err, &e) {
		fmt.Println(e.Diagnostic())
	}
	// Output: range out of order : [z->a<]*
}

// ExampleQuoteMeta demonstrates escaping of glob metacharacters.
func ExampleQuoteMeta() {
	pattern := coreglob.QuoteMeta("file[1].txt")
	fmt.Println(pattern)
	fmt.Println(coreglob.Match(pattern, "file[1].txt"))
	// Output:
	// file\[1\].txt
	// true
}

// ExampleIsPattern demonstrates the syntax sniff.
func ExampleIsPattern() {
	fmt.Println(coreglob.IsPattern("main.go"))
	fmt.Println(coreglob.IsPattern("*.go"))
	// Output:
	// false
	// true
}
