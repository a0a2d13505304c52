// Released under an MIT license. See LICENSE.

// Package eval implements mu_'s evaluator: environment lookup, pattern
// matching, and the tail-recursive dispatch across the seventeen
// builtins and user-defined receivers.
package eval

import (
	"github.com/BrickNumber5/mu/internal/heap"
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/sysop"
	"github.com/BrickNumber5/mu/internal/value"
	"github.com/BrickNumber5/mu/internal/yard"
)

// Interp bundles the state an evaluation needs: the cons heap atoms and
// lists live on, the internment table atoms are named through, the
// string yard names live in, and the system-operation table ~~sys
// dispatches through.
type Interp struct {
	Heap *heap.Heap
	Yard *yard.Yard
	Sys  *sysop.Table

	table *intern.Table
	names [16]value.T // ~~true .. ~~sys, indexed builtin-1
}

// New creates an evaluator over the given components. The caller owns
// construction order: the internment table must already have the
// builtin names pre-interned (see intern.New).
func New(h *heap.Heap, t *intern.Table, y *yard.Yard, s *sysop.Table) *Interp {
	in := &Interp{Heap: h, Yard: y, Sys: s, table: t}

	for i, name := range intern.Names {
		in.names[i] = t.InterString(name)
	}

	return in
}

// Table returns the interpreter's internment table.
func (in *Interp) Table() *intern.Table {
	return in.table
}

// Anchor returns the current allocation pointer, suitable for passing to
// Eval or Collect.
func (in *Interp) Anchor() int32 {
	return in.Heap.Top()
}

// Collect runs the anchored collector, reclaiming everything above
// anchor that preserve does not reach.
func (in *Interp) Collect(preserve value.T, anchor int32) value.T {
	return in.Heap.Collect(preserve, anchor)
}

// Lookup walks env from head to tail looking for a binding of sym,
// returning sym itself if none is found (symbols are self-quoting in
// the empty environment).
func (in *Interp) Lookup(sym, env value.T) value.T {
	for env.IsCons() {
		binding := in.Heap.Head(env)
		if binding.IsCons() && in.Heap.Head(binding) == sym {
			return in.Heap.Tail(binding)
		}

		env = in.Heap.Tail(env)
	}

	return sym
}

// Match destructures val against pattern, extending env with the
// bindings introduced. It never rejects: mismatched shapes simply follow
// head/tail through whatever val happens to be.
//
//   - pattern == 0: env is returned unchanged. No structural check
//     against val is performed; see the spec's open question on this.
//   - pattern > 0: val is bound to the symbol pattern.
//   - pattern < 0: val and pattern are destructured in lockstep.
func (in *Interp) Match(val, pattern, env value.T) value.T {
	switch {
	case pattern.IsNil():
		return env
	case pattern.IsCons():
		env = in.Match(in.Heap.Head(val), in.Heap.Head(pattern), env)
		return in.Match(in.Heap.Tail(val), in.Heap.Tail(pattern), env)
	default:
		return in.Heap.Cons(in.Heap.Cons(pattern, val), env)
	}
}

// Eval evaluates expr in env. Every non-tail recursive call is given a
// fresh anchor so the collector can reclaim its intermediate garbage on
// return; the loop below is the trampoline the final, tail-position
// reduction runs through so that deep mu_ recursion does not grow the
// Go stack (see the spec's design notes on tail calls).
func (in *Interp) Eval(expr, env value.T, anchor int32) value.T {
	for {
		switch {
		case expr.IsNil():
			return value.Nil

		case expr.IsAtom():
			return in.Collect(in.Lookup(expr, env), anchor)

		default: // expr.IsCons(): an application.
			receiver := in.Eval(in.Heap.Head(expr), env, in.Heap.Top())
			args := in.Heap.Tail(expr)

			if receiver.IsCons() {
				next, nextEnv := in.applyReceiver(receiver, args, env, anchor)
				expr, env = next, nextEnv

				continue
			}

			idx := builtinIndex(receiver)

			switch idx {
			case 0: // quote
				return in.Collect(in.Heap.Head(args), anchor)
			case 1: // ~~true: evaluate and return the first argument, in tail position.
				expr = in.Heap.Head(args)
				continue
			case 2: // ~~false: evaluate and return the second argument, in tail position.
				expr = in.Heap.Head(in.Heap.Tail(args))
				continue
			default:
				return in.Collect(in.builtin(idx, args, env), anchor)
			}
		}
	}
}

// applyReceiver implements the non-quote, non-builtin branch of Eval:
// applying a user-defined receiver (pattern . (body . rest)) to args.
// It returns the body and environment the trampoline should continue
// evaluating, in tail position.
func (in *Interp) applyReceiver(receiver, args, env value.T, anchor int32) (value.T, value.T) {
	pattern := in.Heap.Head(receiver)
	bodyRest := in.Heap.Tail(receiver)
	body := in.Heap.Head(bodyRest)
	rest := in.Heap.Tail(bodyRest)

	if !rest.IsNil() {
		// Lexical function: evaluate arguments under the caller's
		// environment, then switch to the closure's captured one.
		args = in.evalList(args, env)
		env = in.Heap.Head(rest)
	}
	// Otherwise this is a macro-like receiver: arguments are passed
	// unevaluated and the call-site environment is reused.

	extended := in.Match(args, pattern, env)

	bundle := in.Collect(in.Heap.Cons(extended, body), anchor)

	return in.Heap.Tail(bundle), in.Heap.Head(bundle)
}

// evalList evaluates each element of a (possibly improper) list of
// unevaluated argument expressions under env, each with a fresh anchor.
func (in *Interp) evalList(list, env value.T) value.T {
	if !list.IsCons() {
		return list
	}

	head := in.Eval(in.Heap.Head(list), env, in.Heap.Top())
	tail := in.evalList(in.Heap.Tail(list), env)

	return in.Heap.Cons(head, tail)
}

// builtinIndex extracts the builtin dispatch index from an atom
// receiver: bits 3..28 of (receiver XOR nothing), i.e. the pre-interned
// builtin names' record index. Nil (the empty-list literal) decodes to
// index 0, quote, which has no name at all.
func builtinIndex(receiver value.T) int {
	return int((receiver.Raw() & 0x1FFFFFFF) >> 3)
}
