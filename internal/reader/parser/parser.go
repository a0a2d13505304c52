// Released under an MIT license. See LICENSE.

// Package parser implements mu_'s S-expression grammar:
//
//	expr      := atom | '(' list_tail
//	list_tail := ws* ')'
//	          | ws* '.' ws* expr ws* ')'
//	          | ws* expr list_tail
//	atom      := one or more bytes not in { whitespace, '(', ')', '.' }
//
// The parser is permissive by design: malformed input (an unexpected
// close paren, a truncated list) is not reported as an error. It is
// simply absorbed, possibly producing an ill-formed value, matching the
// specification's own leniency.
package parser

import (
	"github.com/BrickNumber5/mu/internal/heap"
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/reader/lexer"
	"github.com/BrickNumber5/mu/internal/reader/token"
	"github.com/BrickNumber5/mu/internal/value"
	"github.com/BrickNumber5/mu/internal/yard"
)

// P parses mu_ source text into values, consing onto a shared heap and
// interning atoms into a shared table.
type P struct {
	heap   *heap.Heap
	table  *intern.Table
	yard   *yard.Yard
	lex    *lexer.T
	peeked *token.T
}

// New creates a parser over the given heap, internment table, and yard.
func New(h *heap.Heap, t *intern.Table, y *yard.Yard) *P {
	return &P{heap: h, table: t, yard: y, lex: lexer.New()}
}

// Scan feeds more source text to the parser's lexer. Used for REPL-style
// incremental parsing, where an expression may span several lines.
func (p *P) Scan(text string) {
	p.lex.Scan(text)
}

// Parse parses a single top-level expression, or returns ok == false if
// the buffered input is exhausted before one completes. A REPL should
// Scan more text and retry rather than treating ok == false as an
// error: the expression may simply continue on the next line.
func (p *P) Parse() (v value.T, ok bool) {
	// An incomplete expression rewinds the lexer and lookahead, so the
	// retry after more Scan calls starts again from its first token.
	lex, peeked := p.lex.Copy(), p.peeked

	t := p.next()
	if t == nil {
		return value.Nil, false
	}

	v, ok = p.expr(t)
	if !ok {
		p.lex, p.peeked = lex, peeked
	}

	return v, ok
}

// Parse parses a complete buffer in one shot; it is the direct
// implementation of the host interface's parse(offset, length) -> value.
// A trailing NUL is appended before scanning so that a trailing atom
// with no following delimiter (e.g. a bare "42") is still recognized
// as complete, per the grammar's byte-0-means-end-of-input rule; the
// incremental P.Scan/P.Parse pair used by a REPL deliberately does not
// do this, since there more input may always be on the way.
func Parse(h *heap.Heap, t *intern.Table, y *yard.Yard, src []byte) value.T {
	p := New(h, t, y)
	p.Scan(string(src) + "\x00")

	v, _ := p.Parse()

	return v
}

func (p *P) next() *token.T {
	if p.peeked != nil {
		t := p.peeked
		p.peeked = nil

		return t
	}

	return p.lex.Token()
}

func (p *P) peek() *token.T {
	if p.peeked == nil {
		p.peeked = p.lex.Token()
	}

	return p.peeked
}

// expr parses a single expression given its first token. ok is false
// only when the token stream ran out before an expression completed
// (the buffer needs more input, via Scan); a malformed-but-complete
// token stream (a stray ')' where an expression was wanted) is still
// absorbed leniently and reported as complete, per the grammar's
// stated tolerance for ill-formed output.
func (p *P) expr(t *token.T) (value.T, bool) {
	if t == nil {
		return value.Nil, false
	}

	switch t.Class() {
	case token.Atom:
		return p.internAtom(t.Value()), true
	case token.LParen:
		return p.listTail()
	default:
		return value.Nil, true
	}
}

// listTail parses the remainder of a list after its opening '('.
func (p *P) listTail() (value.T, bool) {
	t := p.peek()
	if t == nil {
		return value.Nil, false
	}

	switch t.Class() {
	case token.RParen:
		p.next()

		return value.Nil, true
	case token.Dot:
		p.next()

		tail, ok := p.expr(p.next())
		if !ok {
			return value.Nil, false
		}

		if c := p.next(); c == nil {
			return value.Nil, false
		}
		// A close paren is expected here; anything else is absorbed
		// without complaint, per the grammar's stated leniency.

		return tail, true
	default:
		head, ok := p.expr(p.next())
		if !ok {
			return value.Nil, false
		}

		tail, ok := p.listTail()
		if !ok {
			return value.Nil, false
		}

		return p.heap.Cons(head, tail), true
	}
}

// internAtom turns a scanned atom token into a value. A token made up
// entirely of decimal digits is read as a numeric literal and encoded
// directly as the unnamed atom equal to that number (mod 2^31); this is
// the parser's own special case, distinct from the internment table's
// inter(), which never treats digit strings specially. Anything else is
// interned as a name.
func (p *P) internAtom(s string) value.T {
	if n, ok := decimalLiteral(s); ok {
		return n
	}

	off := p.yard.WriteString(s)

	return p.table.Inter(off, uint32(len(s)))
}

func decimalLiteral(s string) (value.T, bool) {
	if s == "" {
		return value.Nil, false
	}

	var acc uint32

	for i := 0; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return value.Nil, false
		}

		acc = (acc*10 + uint32(d-'0')) & 0x7FFFFFFF
	}

	return value.FromInt(acc), true
}
