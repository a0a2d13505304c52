// Released under an MIT license. See LICENSE.

// Package printer renders mu_ values back into the textual surface
// syntax, for REPL echo and diagnostics. It is not part of the core: a
// host embedder is free to print values however it likes, but a
// readable form matching the parser's own grammar is the obvious
// choice for a command-line tool.
package printer

import (
	"strings"

	"github.com/BrickNumber5/mu/internal/adapted"
	"github.com/BrickNumber5/mu/internal/heap"
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/value"
)

// P prints values over a shared heap and internment table.
type P struct {
	heap  *heap.Heap
	table *intern.Table
}

// New creates a printer over the given heap and internment table.
func New(h *heap.Heap, t *intern.Table) *P {
	return &P{heap: h, table: t}
}

// String returns v's readable form.
func (p *P) String(v value.T) string {
	var b strings.Builder

	p.write(&b, v)

	return b.String()
}

func (p *P) write(b *strings.Builder, v value.T) {
	switch {
	case v.IsNil():
		b.WriteString("()")
	case v.IsAtom():
		p.writeAtom(b, v)
	default:
		b.WriteByte('(')
		p.writeList(b, v)
		b.WriteByte(')')
	}
}

func (p *P) writeAtom(b *strings.Builder, v value.T) {
	name := p.table.Name(v)
	if name == "" {
		// An unnamed atom: print its raw numeric value, which is the
		// only identity it has.
		b.WriteString(decimal(v.Raw()))

		return
	}

	if adapted.NeedsEscaping(name) {
		b.WriteString(adapted.CanonicalString(name))

		return
	}

	b.WriteString(name)
}

// writeList prints the elements of v (already known to be a cons) up
// to, but not including, its enclosing parentheses.
func (p *P) writeList(b *strings.Builder, v value.T) {
	p.write(b, p.heap.Head(v))

	tail := p.heap.Tail(v)

	switch {
	case tail.IsNil():
		return
	case tail.IsCons():
		b.WriteByte(' ')
		p.writeList(b, tail)
	default:
		b.WriteString(" . ")
		p.write(b, tail)
	}
}

func decimal(n int32) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0

	var digits [11]byte

	i := len(digits)

	u := uint32(n)
	if neg {
		u = uint32(-n)
	}

	for u > 0 {
		i--
		digits[i] = byte('0' + u%10)
		u /= 10
	}

	if neg {
		i--
		digits[i] = '-'
	}

	return string(digits[i:])
}
