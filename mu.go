// Released under an MIT license. See LICENSE.

// Package mu implements mu_, a minimal homoiconic language in which
// every value is a tagged 32-bit signed integer: zero is the empty
// list, positive values are atoms, and negative values are references
// into a cons-cell heap.
//
// Interpreter is the embedding surface: it bundles the cons heap,
// string yard, internment table, system-operation table, parser, and
// evaluator that together make up one interpreter instance. Nothing in
// this package is safe for concurrent use by multiple goroutines; see
// the package's design notes on re-entrancy through system operations.
package mu

import (
	"github.com/BrickNumber5/mu/internal/eval"
	"github.com/BrickNumber5/mu/internal/heap"
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/printer"
	"github.com/BrickNumber5/mu/internal/reader/parser"
	"github.com/BrickNumber5/mu/internal/sysop"
	"github.com/BrickNumber5/mu/internal/value"
	"github.com/BrickNumber5/mu/internal/yard"
)

// Value is a mu_ value: nil, an atom, or a cons-cell reference.
type Value = value.T

// Nil is the empty list and the terminator of lists.
const Nil = value.Nil

// Handler is a host-supplied system operation, registered under a name
// atom and invoked through the ~~sys builtin. It receives its argument
// and the caller's environment unevaluated, and may call back into the
// interpreter that invoked it.
type Handler = sysop.Handler

// Interpreter is one mu_ interpreter instance: a cons heap, a string
// yard, an internment table, a system-operation table, and the parser
// and evaluator layered over them.
type Interpreter struct {
	heap  *heap.Heap
	yard  *yard.Yard
	table *intern.Table
	sys   *sysop.Table
	eval  *eval.Interp
	print *printer.P
	parse *parser.P
}

// New creates an interpreter with an empty heap and yard, and the
// sixteen builtin names pre-interned.
func New() *Interpreter {
	h := heap.New()
	y := yard.New()
	t := intern.New(y)

	in := &Interpreter{heap: h, yard: y, table: t}

	in.sys = sysop.New(t, in.reflectSystemOperations)
	in.eval = eval.New(h, t, y, in.sys)
	in.print = printer.New(h, t)
	in.parse = parser.New(h, t, y)

	return in
}

// Cons allocates a new cell and returns a reference to it.
func (in *Interpreter) Cons(head, tail Value) Value {
	return in.heap.Cons(head, tail)
}

// Head returns the head of a cons reference. Behavior is undefined if
// v is not a cons reference.
func (in *Interpreter) Head(v Value) Value {
	return in.heap.Head(v)
}

// Tail returns the tail of a cons reference. Behavior is undefined if
// v is not a cons reference.
func (in *Interpreter) Tail(v Value) Value {
	return in.heap.Tail(v)
}

// Lookup returns the value bound to sym in env, or sym itself if it is
// unbound.
func (in *Interpreter) Lookup(sym, env Value) Value {
	return in.eval.Lookup(sym, env)
}

// Match destructures val against pattern, extending env with whatever
// bindings the pattern's shape introduces.
func (in *Interpreter) Match(val, pattern, env Value) Value {
	return in.eval.Match(val, pattern, env)
}

// YardAlloc bump-allocates n bytes in the string yard and returns the
// offset the embedder should write them at.
func (in *Interpreter) YardAlloc(n uint32) uint32 {
	return in.yard.Alloc(n)
}

// YardBytes gives direct access to the yard's backing buffer, for an
// embedder writing strings in place or implementing its own printer.
func (in *Interpreter) YardBytes() []byte {
	return in.yard.Bytes()
}

// Inter interns the length bytes of the yard starting at offset,
// returning the atom denoting that name.
func (in *Interpreter) Inter(offset, length uint32) Value {
	return in.table.Inter(offset, length)
}

// InterString writes s into the yard and interns it in one step.
func (in *Interpreter) InterString(s string) Value {
	return in.table.InterString(s)
}

// LookupInterned undoes Inter, returning the byte range of an atom's
// name, or (-1, -1) if it does not resolve to a live record.
func (in *Interpreter) LookupInterned(atom Value) (offset, length int32) {
	return in.table.Lookup(atom)
}

// Parse parses the length bytes of the yard starting at offset as a
// single top-level expression.
func (in *Interpreter) Parse(offset, length uint32) Value {
	return parser.Parse(in.heap, in.table, in.yard, in.yard.Slice(offset, length))
}

// ParseString writes src into the yard and parses it as a single
// top-level expression. This is the convenient path for an embedder that
// already has source text in hand; Parse is the direct spec-level
// primitive.
func (in *Interpreter) ParseString(src string) Value {
	off := in.yard.WriteString(src)

	return in.Parse(off, uint32(len(src)))
}

// IncrementalParser returns a fresh parser.P sharing this interpreter's
// heap, table, and yard, for callers (such as a REPL) that need to feed
// source text across multiple reads before a complete expression is
// available.
func (in *Interpreter) IncrementalParser() *parser.P {
	return parser.New(in.heap, in.table, in.yard)
}

// Eval evaluates expr in env, reclaiming garbage above anchor on return
// except what is reachable from the result.
func (in *Interpreter) Eval(expr, env Value, anchor int32) Value {
	return in.eval.Eval(expr, env, anchor)
}

// GCAnchor returns the current allocation pointer, suitable for a later
// call to GCCollect.
func (in *Interpreter) GCAnchor() int32 {
	return in.heap.Top()
}

// GCCollect runs the anchored collector, reclaiming everything above
// anchor not reachable from preserve, and returns preserve's new
// reference.
func (in *Interpreter) GCCollect(preserve Value, anchor int32) Value {
	return in.heap.Collect(preserve, anchor)
}

// RegisterSystemOperation binds a fresh opcode to handler under name,
// making it reachable through (~~sys name arg).
func (in *Interpreter) RegisterSystemOperation(name Value, handler Handler) {
	in.sys.Register(name, handler)
}

// Print renders v in mu_'s textual surface syntax.
func (in *Interpreter) Print(v Value) string {
	return in.print.String(v)
}

// reflectSystemOperations implements system opcode 0: an association
// list from every registered operation's name atom to its opcode,
// represented as a plain numeric atom.
func (in *Interpreter) reflectSystemOperations(_, _ Value) Value {
	result := Nil

	in.sys.Each(func(name Value, opcode uint16) {
		pair := in.heap.Cons(name, value.Of(int32(opcode)))
		result = in.heap.Cons(pair, result)
	})

	return result
}
