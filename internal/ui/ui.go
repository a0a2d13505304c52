// Released under an MIT license. See LICENSE.

// Package ui provides a liner-backed read-eval-print loop for mu.
package ui

import (
	"fmt"
	"os"

	mu "github.com/BrickNumber5/mu"
	"github.com/peterh/liner"
)

// Run starts a read-eval-print loop against ip. Each complete top-level
// expression is evaluated in the empty environment and its result is
// printed in mu_'s surface syntax; a line may hold more than one
// expression, and an expression may span several lines.
func Run(ip *mu.Interpreter) {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	p := ip.IncrementalParser()

	for {
		line, err := cli.Prompt("mu> ")

		switch err {
		case nil:
			cli.AppendHistory(line)
		case liner.ErrPromptAborted:
			continue
		default:
			fmt.Fprintln(os.Stdout)

			return
		}

		p.Scan(line + "\n")

		for {
			expr, ok := p.Parse()
			if !ok {
				break
			}

			result := ip.Eval(expr, mu.Nil, ip.GCAnchor())

			fmt.Println(ip.Print(result))
		}
	}
}
