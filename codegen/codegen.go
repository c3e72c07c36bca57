// Package codegen generates Go source that declares pre-validated glob
// patterns.
//
// Every pattern is compiled while generating, so a syntax error surfaces at
// generation time with its diagnostic instead of as a panic when the
// generated package is initialized. For each entry the output declares a
// compiled pattern variable and a match function:
//
//	// SourceGlob matches "*.go|*.s".
//	var SourceGlob = coreglob.MustCompileWithConfig("*.go|*.s", coreglob.Config{...})
//
//	// MatchSource reports whether s matches "*.go|*.s".
//	func MatchSource(s string) bool {
//		return SourceGlob.MatchString(s)
//	}
//
// For a pattern with capture groups, a CapturesSource function is generated too.
package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/coreglob"
)

const globPkg = "github.com/coregx/coreglob"

// Entry names one pattern to generate.
type Entry struct {
	// Name is the exported identifier stem, e.g. "Source" generates
	// SourceGlob and MatchSource.
	Name string

	// Pattern is the glob source.
	Pattern string
}

// ParseEntry parses a "Name=pattern" specification. The pattern is
// everything after the first '='.
func ParseEntry(s string) (Entry, error) {
	name, pattern, ok := strings.Cut(s, "=")
	if !ok {
		return Entry{}, fmt.Errorf("codegen: entry %q: want Name=pattern", s)
	}
	return Entry{Name: name, Pattern: pattern}, nil
}

// Options configures code generation.
type Options struct {
	// Package is the Go package name of the generated file.
	Package string

	// OutputFile is the path WriteFile saves to.
	OutputFile string

	// Entries lists the patterns to generate, in output order.
	Entries []Entry

	// Config is the compile configuration shared by all entries.
	Config coreglob.Config
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Package == "" {
		return errors.New("package cannot be empty")
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not an identifier", o.Package)
	}
	if len(o.Entries) == 0 {
		return errors.New("no entries")
	}
	seen := make(map[string]bool, len(o.Entries))
	for _, e := range o.Entries {
		if !token.IsIdentifier(e.Name) || !token.IsExported(e.Name) {
			return fmt.Errorf("name %q is not an exported identifier", e.Name)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate name %q", e.Name)
		}
		seen[e.Name] = true
	}
	return o.Config.Validate()
}

// Generate compiles every entry and builds the output file. It fails if
// any pattern does not compile; the error joins one error per failing
// entry, each wrapping the pattern's coreglob.ErrorList.
func Generate(opts Options) (*jen.File, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("codegen: invalid options: %w", err)
	}

	var errs []error
	compiled := make([]*coreglob.Pattern, len(opts.Entries))
	for i, e := range opts.Entries {
		p, err := coreglob.CompileWithConfig(e.Pattern, opts.Config)
		if err != nil {
			errs = append(errs, &EntryError{Entry: e, Err: err})
			continue
		}
		compiled[i] = p
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by globgen. DO NOT EDIT.")

	for i, e := range opts.Entries {
		generateEntry(f, e, compiled[i])
	}
	return f, nil
}

// Render generates the file and writes it to w.
func Render(w io.Writer, opts Options) error {
	f, err := Generate(opts)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("codegen: render: %w", err)
	}
	return nil
}

// WriteFile generates the file and saves it to opts.OutputFile.
func WriteFile(opts Options) error {
	if opts.OutputFile == "" {
		return errors.New("codegen: output file cannot be empty")
	}
	f, err := Generate(opts)
	if err != nil {
		return err
	}
	if err := f.Save(opts.OutputFile); err != nil {
		return fmt.Errorf("codegen: failed to save file: %w", err)
	}
	return nil
}

func generateEntry(f *jen.File, e Entry, p *coreglob.Pattern) {
	varName := e.Name + "Glob"
	config := p.Config()

	f.Commentf("%s matches %q.", varName, e.Pattern)
	f.Var().Id(varName).Op("=").Qual(globPkg, "MustCompileWithConfig").Call(
		jen.Lit(e.Pattern),
		configLit(config),
	)
	f.Line()

	f.Commentf("Match%s reports whether s matches %q.", e.Name, e.Pattern)
	f.Func().Id("Match"+e.Name).
		Params(jen.Id("s").String()).
		Params(jen.Bool()).
		Block(jen.Return(jen.Id(varName).Dot("MatchString").Call(jen.Id("s"))))

	if p.HasCaptures() {
		f.Line()
		f.Commentf("Captures%s matches s against %q and returns the captured text.", e.Name, e.Pattern)
		f.Func().Id("Captures"+e.Name).
			Params(jen.Id("s").String()).
			Params(jen.Index().String(), jen.Bool()).
			Block(jen.Return(jen.Id(varName).Dot("FindStringCaptures").Call(jen.Id("s"))))
	}
}

// configLit renders config as a coreglob.Config composite literal with
// every field set.
func configLit(config coreglob.Config) *jen.Statement {
	return jen.Qual(globPkg, "Config").Values(jen.Dict{
		jen.Id("CaseSensitive"):     jen.Lit(config.CaseSensitive),
		jen.Id("AllowSave"):         jen.Lit(config.AllowSave),
		jen.Id("AllowOr"):           jen.Lit(config.AllowOr),
		jen.Id("AllowNonPrintable"): jen.Lit(config.AllowNonPrintable),
		jen.Id("AllowEscape"):       jen.Lit(config.AllowEscape),
		jen.Id("EnablePrefilter"):   jen.Lit(config.EnablePrefilter),
		jen.Id("MaxVisitedBits"):    jen.Lit(config.MaxVisitedBits),
	})
}

// EntryError reports a pattern that failed to compile.
type EntryError struct {
	Entry Entry
	Err   error
}

// Error implements the error interface. It lists the caret diagnostic of
// every syntax error in the pattern.
func (e *EntryError) Error() string {
	var list coreglob.ErrorList
	if !errors.As(e.Err, &list) {
		return fmt.Sprintf("codegen: %s: %v", e.Entry.Name, e.Err)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "codegen: %s: invalid pattern %q", e.Entry.Name, e.Entry.Pattern)
	for _, err := range list {
		sb.WriteString("\n\t")
		sb.WriteString(err.Diagnostic())
	}
	return sb.String()
}

// Unwrap returns the compile error.
func (e *EntryError) Unwrap() error {
	return e.Err
}
