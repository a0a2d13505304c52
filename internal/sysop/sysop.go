// Released under an MIT license. See LICENSE.

// Package sysop implements mu_'s system-operation table: the sparse map
// from small opcodes to host-supplied handlers that ~~sys dispatches
// through.
package sysop

import (
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/value"
)

// Handler is a host-supplied system operation. It receives its argument
// unevaluated, along with the environment at the call site, and may call
// back into the interpreter (e.g. to evaluate or construct values).
type Handler func(arg, env value.T) value.T

// Table binds opcodes to handlers and keeps an intern.Table's sys_opcode
// fields in sync.
type Table struct {
	intern   *intern.Table
	handlers map[uint16]Handler
	next     uint16
}

// New creates a system-operation table bound to t. Opcode 0 is
// pre-registered and returns an association list of every registered
// operation's name to its opcode; reflect is the callback used to build
// that list, since doing so requires consing onto the interpreter's heap.
func New(t *intern.Table, reflect Handler) *Table {
	s := &Table{intern: t, handlers: map[uint16]Handler{}}

	s.handlers[0] = reflect

	return s
}

// Register binds a fresh opcode to handler and records it in name's
// internment record.
func (s *Table) Register(name value.T, handler Handler) {
	s.next++
	opcode := s.next

	s.handlers[opcode] = handler
	s.intern.SetSysOpcode(name, opcode)
}

// Dispatch invokes the handler bound to name's opcode. A name with no
// bound opcode (including nil, as in "(~~sys () ())") reports opcode 0
// and so reaches the reflection handler; no special case is involved.
// An opcode with no handler yields nil.
func (s *Table) Dispatch(name, arg, env value.T) value.T {
	opcode := s.intern.SysOpcode(name)

	h, ok := s.handlers[opcode]
	if !ok {
		return value.Nil
	}

	return h(arg, env)
}

// Each calls fn for every registered opcode and the name bound to it.
func (s *Table) Each(fn func(name value.T, opcode uint16)) {
	s.intern.Each(fn)
}
