// Command globgen generates Go source declaring pre-validated glob patterns.
package main

import (
	"v.io/x/lib/cmdline"
	"v.io/x/lib/vlog"

	"github.com/coregx/coreglob/codegen"
	"github.com/coregx/coreglob/internal/cli"
)

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCommand())
}

type options struct {
	syntax      cli.SyntaxFlags
	pkg         string
	output      string
	noPrefilter bool
}

func newCommand() *cmdline.Command {
	opts := &options{}
	cmd := &cmdline.Command{
		Runner: cmdline.RunnerFunc(func(env *cmdline.Env, args []string) error {
			return run(env, args, opts)
		}),
		Name:  "globgen",
		Short: "Generate Go declarations for glob patterns",
		Long: `
Command globgen compiles glob patterns and writes a Go file declaring, for
each Name=pattern entry, a compiled NameGlob variable and a MatchName
function. With -save, a CapturesName function is declared too.

Every pattern is compiled first; if any fails, nothing is written and the
diagnostics of every failing pattern are reported.

Example:
 $ globgen -package assets -o globs.go 'Image=*.png|*.jpg' 'Style=*.css'
`,
		ArgsName: "<Name=pattern> ...",
		ArgsLong: `
<Name=pattern> names an exported identifier stem and its glob pattern.
`,
	}
	opts.syntax.Register(&cmd.Flags)
	cmd.Flags.StringVar(&opts.pkg, "package", "main", "Package name of the generated file.")
	cmd.Flags.StringVar(&opts.output, "o", "", "Output file. Standard output if empty.")
	cmd.Flags.BoolVar(&opts.noPrefilter, "no-prefilter", false, "Disable literal prefilters in the generated patterns.")
	return cmd
}

func run(env *cmdline.Env, args []string, opts *options) error {
	if len(args) == 0 {
		return env.UsageErrorf("globgen: at least one <Name=pattern> is required")
	}

	genOpts := codegen.Options{
		Package:    opts.pkg,
		OutputFile: opts.output,
		Config:     opts.syntax.Config(),
	}
	genOpts.Config.EnablePrefilter = !opts.noPrefilter
	for _, arg := range args {
		e, err := codegen.ParseEntry(arg)
		if err != nil {
			return env.UsageErrorf("%v", err)
		}
		genOpts.Entries = append(genOpts.Entries, e)
	}

	if opts.output == "" {
		return codegen.Render(env.Stdout, genOpts)
	}
	if err := codegen.WriteFile(genOpts); err != nil {
		return err
	}
	vlog.Infof("globgen: wrote %d patterns to %s", len(genOpts.Entries), opts.output)
	return nil
}
