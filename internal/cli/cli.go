// Package cli holds the pattern syntax flags shared by the glob commands.
package cli

import (
	"flag"

	"github.com/coregx/coreglob"
)

// SyntaxFlags are the command-line switches selecting pattern syntax.
type SyntaxFlags struct {
	IgnoreCase bool
	Save       bool
	NoOr       bool
	NoEscape   bool
	Printable  bool
}

// Register binds the flags to fs.
func (f *SyntaxFlags) Register(fs *flag.FlagSet) {
	fs.BoolVar(&f.IgnoreCase, "i", false, "Match ASCII letters case-insensitively.")
	fs.BoolVar(&f.Save, "save", false, "Enable (...) capture groups.")
	fs.BoolVar(&f.NoOr, "no-or", false, "Treat | as a literal byte instead of alternation.")
	fs.BoolVar(&f.NoEscape, "no-escape", false, `Treat \ as a literal byte instead of an escape.`)
	fs.BoolVar(&f.Printable, "printable", false, "Reject patterns containing bytes outside 0x20-0x7e.")
}

// Config returns the compile configuration selected by the flags.
func (f *SyntaxFlags) Config() coreglob.Config {
	config := coreglob.DefaultConfig()
	config.CaseSensitive = !f.IgnoreCase
	config.AllowSave = f.Save
	config.AllowOr = !f.NoOr
	config.AllowEscape = !f.NoEscape
	config.AllowNonPrintable = !f.Printable
	return config
}
