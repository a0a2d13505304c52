// Released under an MIT license. See LICENSE.

// Package options parses mu's command-line arguments.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	command     string
	interactive bool
	script      string
	usage       = `mu

Usage:
  mu SCRIPT
  mu -c EXPR
  mu
  mu -h
  mu -v

Arguments:
  SCRIPT  Path to a mu_ source file to evaluate.
  EXPR    A mu_ expression to evaluate and print.

Options:
  -c, --command=EXPR  Evaluate EXPR instead of reading a script or
                       starting the read-eval-print loop.
  -h, --help           Display this help.
  -v, --version        Accepted, but no version is printed; mu then runs
                       as with no arguments.

With no SCRIPT and no --command, mu starts a read-eval-print loop if
stdin is a terminal. Every top-level expression, whether read from a
script, a --command string, or a REPL line, is evaluated in its own
empty environment: mu_ itself has no top-level definition form, only
the one a host embeds.
`
)

// Command returns the expression given via --command, if any.
func Command() string {
	return command
}

// Script returns the path given as SCRIPT, if any.
func Script() string {
	return script
}

// Interactive reports whether mu should start a read-eval-print loop:
// true when neither SCRIPT nor --command was given and stdin is a
// terminal.
func Interactive() bool {
	return interactive
}

// Parse parses os.Args (via docopt) into the package's accessors.
func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	command, _ = opts.String("--command")
	script, _ = opts.String("SCRIPT")

	interactive = script == "" && command == "" && isatty.IsTerminal(os.Stdin.Fd())
}
