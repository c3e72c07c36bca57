// Command globmatch matches subjects against a glob pattern.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"v.io/x/lib/cmdline"
	"v.io/x/lib/vlog"

	"github.com/coregx/coreglob"
	"github.com/coregx/coreglob/internal/cli"
	"github.com/coregx/coreglob/simd"
)

// Exit codes besides 0 (some subject matched).
const (
	exitNoMatch        = 1
	exitInvalidPattern = 2
)

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCommand())
}

type options struct {
	syntax  cli.SyntaxFlags
	verbose bool
	check   bool
}

func newCommand() *cmdline.Command {
	opts := &options{}
	cmd := &cmdline.Command{
		Runner: cmdline.RunnerFunc(func(env *cmdline.Env, args []string) error {
			return run(env, args, opts)
		}),
		Name:  "globmatch",
		Short: "Match subjects against a glob pattern",
		Long: `
Command globmatch prints the subjects that match a glob pattern. Subjects are
taken from the arguments, or one per line from standard input when no subject
argument is given.

With -save, each matching subject is followed by its captures, tab separated.
With -v, every subject is printed, prefixed with "+ " if it matched and "- "
if it did not.

Exits with status 1 if no subject matched and 2 if the pattern is invalid.

Example:
 $ globmatch '*.go|*.mod' main.go go.mod README
 main.go
 go.mod
 $ find . | globmatch -save './(*)/(*).go'
`,
		ArgsName: "<pattern> [subject ...]",
		ArgsLong: `
<pattern> is the glob pattern. [subject ...] are the strings to match.
`,
	}
	opts.syntax.Register(&cmd.Flags)
	cmd.Flags.BoolVar(&opts.verbose, "v", false, "Print non-matching subjects too, with a +/- prefix.")
	cmd.Flags.BoolVar(&opts.check, "check", false, "Report whether the pattern looks like a glob and whether it compiles, then exit.")
	return cmd
}

func run(env *cmdline.Env, args []string, opts *options) error {
	if len(args) == 0 {
		return env.UsageErrorf("globmatch: missing <pattern>")
	}
	pattern, subjects := args[0], args[1:]
	config := opts.syntax.Config()

	p, err := coreglob.CompileWithConfig(pattern, config)
	if opts.check {
		return check(env.Stdout, pattern, config, err)
	}
	if err != nil {
		printDiagnostics(env.Stderr, err)
		return cmdline.ErrExitCode(exitInvalidPattern)
	}
	vlog.VI(1).Infof("globmatch: %q compiled, %d branches, strategy %s (%s)",
		pattern, p.NumBranches(), p.Strategy(), p.StrategyReason())
	vlog.VI(2).Infof("globmatch: program %s, vector search %v", p.Disassemble(), simd.HasVector())

	m := &matcher{pattern: p, out: env.Stdout, save: config.AllowSave, verbose: opts.verbose}
	if len(subjects) > 0 {
		for _, s := range subjects {
			m.match(s)
		}
	} else if err := m.matchLines(env.Stdin); err != nil {
		return err
	}

	stats := p.Stats()
	vlog.VI(1).Infof("globmatch: %d subjects, %d matched, %d rejected by prefilter, %d backtracking searches",
		stats.Searches, m.matched, stats.PrefilterRejects, stats.Backtracks)

	if m.matched == 0 {
		return cmdline.ErrExitCode(exitNoMatch)
	}
	return nil
}

// matcher prints match results for a stream of subjects.
type matcher struct {
	pattern *coreglob.Pattern
	out     io.Writer
	save    bool
	verbose bool
	matched int
}

func (m *matcher) match(subject string) {
	caps, ok := m.pattern.FindStringCaptures(subject)
	if ok {
		m.matched++
	}

	var line strings.Builder
	if m.verbose {
		if ok {
			line.WriteString("+ ")
		} else {
			line.WriteString("- ")
		}
	} else if !ok {
		return
	}
	line.WriteString(subject)
	if ok && m.save {
		for _, c := range caps {
			line.WriteByte('\t')
			line.WriteString(c)
		}
	}
	fmt.Fprintln(m.out, line.String())
}

func (m *matcher) matchLines(r io.Reader) error {
	if r == nil {
		return errors.New("globmatch: no subjects and no standard input")
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m.match(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("globmatch: reading subjects: %w", err)
	}
	return nil
}

// check reports the syntax sniff and the compile outcome of the pattern.
func check(w io.Writer, pattern string, config coreglob.Config, err error) error {
	g := coreglob.NewWithConfig(pattern, config)
	fmt.Fprintf(w, "pattern: %q\n", pattern)
	fmt.Fprintf(w, "looks like a glob: %v\n", g.IsPattern())
	fmt.Fprintf(w, "valid: %v\n", err == nil)
	if err != nil {
		printDiagnostics(w, err)
		return cmdline.ErrExitCode(exitInvalidPattern)
	}
	return nil
}

func printDiagnostics(w io.Writer, err error) {
	var list coreglob.ErrorList
	if !errors.As(err, &list) {
		fmt.Fprintf(w, "globmatch: %v\n", err)
		return
	}
	for _, e := range list {
		vlog.Infof("globmatch: %v", e)
		fmt.Fprintf(w, "error: %s\n", e.Diagnostic())
	}
}
