// Released under an MIT license. See LICENSE.

// Command mu runs mu_ programs, either from a script file, a single
// --command expression, or an interactive read-eval-print loop.
package main

import (
	"fmt"
	"os"

	mu "github.com/BrickNumber5/mu"
	"github.com/BrickNumber5/mu/internal/system/options"
	"github.com/BrickNumber5/mu/internal/ui"
	"github.com/pkg/errors"
)

func main() {
	options.Parse()

	ip := mu.New()

	switch {
	case options.Script() != "":
		if err := runFile(ip, options.Script()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case options.Command() != "":
		runSource(ip, options.Command())
	case options.Interactive():
		ui.Run(ip)
	}
	// Neither a script, a command, nor an interactive terminal: mu_ has
	// no built-in I/O, so there is nothing further to do.
}

// runFile reads path and evaluates every top-level expression it
// contains in sequence, printing the value of the last one.
func runFile(ip *mu.Interpreter, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	runSource(ip, string(src))

	return nil
}

// runSource evaluates every top-level expression in src in sequence,
// each under the empty environment, and prints the last result. The
// trailing NUL tells the parser this is all the input there will ever
// be, so a trailing atom with nothing after it still parses.
func runSource(ip *mu.Interpreter, src string) {
	p := ip.IncrementalParser()
	p.Scan(src + "\x00")

	var result mu.Value

	for {
		expr, ok := p.Parse()
		if !ok {
			break
		}

		result = ip.Eval(expr, mu.Nil, ip.GCAnchor())
	}

	fmt.Println(ip.Print(result))
}
