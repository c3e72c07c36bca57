package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"v.io/x/lib/cmdline"
)

func runCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	env := &cmdline.Env{
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	}
	flag.CommandLine = flag.NewFlagSet("test", flag.ContinueOnError)
	err = cmdline.ParseAndRun(newCommand(), env, args)
	return out.String(), errOut.String(), err
}

func TestMatchArgs(t *testing.T) {
	out, _, err := runCommand(t, "", "*.go|*.mod", "main.go", "go.mod", "README")
	require.NoError(t, err)
	assert.Equal(t, "main.go\ngo.mod\n", out)
}

func TestMatchStdin(t *testing.T) {
	out, _, err := runCommand(t, "a.txt\nb.doc\nc.txt\n", "*.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nc.txt\n", out)
}

func TestNoMatchExitCode(t *testing.T) {
	out, _, err := runCommand(t, "", "*.go", "README")
	assert.Equal(t, cmdline.ErrExitCode(exitNoMatch), err)
	assert.Empty(t, out)
}

func TestVerbose(t *testing.T) {
	out, _, err := runCommand(t, "", "-v", "a*", "abc", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "+ abc\n- xyz\n", out)
}

func TestCaptures(t *testing.T) {
	out, _, err := runCommand(t, "", "-save", "(*)/(*).go", "cmd/main.go", "x.c")
	require.NoError(t, err)
	assert.Equal(t, "cmd/main.go\tcmd\tmain\n", out)
}

func TestIgnoreCase(t *testing.T) {
	out, _, err := runCommand(t, "", "-i", "*.JPG", "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg\n", out)
}

func TestSyntaxSwitches(t *testing.T) {
	out, _, err := runCommand(t, "", "-no-or", "a|b", "a|b", "a")
	require.NoError(t, err)
	assert.Equal(t, "a|b\n", out)

	out, _, err = runCommand(t, "", "-no-escape", `\*`, `\x`)
	require.NoError(t, err)
	assert.Equal(t, "\\x\n", out)
}

func TestInvalidPattern(t *testing.T) {
	out, errOut, err := runCommand(t, "", "[z-a]|[]", "x")
	assert.Equal(t, cmdline.ErrExitCode(exitInvalidPattern), err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error: range out of order : [z->a<]|[]\n")
	assert.Contains(t, errOut, "error: empty square brackets : [z-a]|>[<]\n")
}

func TestPrintableRejectsControlBytes(t *testing.T) {
	_, errOut, err := runCommand(t, "", "-printable", "a\tb", "a\tb")
	assert.Equal(t, cmdline.ErrExitCode(exitInvalidPattern), err)
	assert.Contains(t, errOut, "error: invalid character")
}

func TestCheck(t *testing.T) {
	out, _, err := runCommand(t, "", "-check", "*.go")
	require.NoError(t, err)
	assert.Equal(t, "pattern: \"*.go\"\nlooks like a glob: true\nvalid: true\n", out)

	out, _, err = runCommand(t, "", "-check", "[abc")
	assert.Equal(t, cmdline.ErrExitCode(exitInvalidPattern), err)
	assert.Contains(t, out, "looks like a glob: false\nvalid: false\n")
	assert.Contains(t, out, "error: no closing square bracket : [abc><\n")
}

func TestMissingPattern(t *testing.T) {
	_, _, err := runCommand(t, "")
	assert.Error(t, err)
}
