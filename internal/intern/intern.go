// Released under an MIT license. See LICENSE.

// Package intern provides mu_'s internment table: the append-only array
// of name records shared between atoms and registered system operations.
package intern

import (
	"bytes"

	"github.com/BrickNumber5/mu/internal/value"
	"github.com/BrickNumber5/mu/internal/yard"
)

const (
	recordSize = 8 // yard_offset(u32) + length(u16) + sys_opcode(u16)
	tagBit     = 0x20000000
)

// record is one 8-byte entry: a name's byte range in the yard, plus an
// optional system opcode.
type record struct {
	offset    uint32
	length    uint16
	sysOpcode uint16
}

// Table is the internment table. Record index 0 is reserved padding: it
// keeps the pre-interned builtin names (see Names) landing on record
// indices 1..16, which is what lines their atom values up with builtin
// dispatch indices 1..16 once the low bits are unpacked.
type Table struct {
	yard    *yard.Yard
	records []record
}

// Names are mu_'s pre-interned builtin names, in builtin-index order
// (index 0, the empty-list literal, has no name and is not included).
var Names = [16]string{
	"~~true", "~~false", "~~head", "~~tail", "~~cons", "~~lte", "~~eq",
	"~~add", "~~sub", "~~and", "~~or", "~~not", "~~sl", "~~sr", "~~env", "~~sys",
}

// New creates a table over y with the builtin names pre-interned.
func New(y *yard.Yard) *Table {
	t := &Table{yard: y, records: []record{{}}}

	for _, name := range Names {
		off := y.WriteString(name)
		t.intern(off, uint32(len(name)))
	}

	return t
}

// Inter interns the length bytes of the yard starting at offset, returning
// the atom denoting that name. Two calls over byte-equal ranges always
// return the same atom.
func (t *Table) Inter(offset, length uint32) value.T {
	bs := t.yard.Slice(offset, length)

	for i := 1; i < len(t.records); i++ {
		r := t.records[i]
		if uint32(r.length) == length && bytes.Equal(t.yard.Slice(r.offset, uint32(r.length)), bs) {
			return t.atomFor(i)
		}
	}

	return t.intern(offset, length)
}

// InterString is a convenience that writes s into the yard and interns it.
func (t *Table) InterString(s string) value.T {
	off := t.yard.WriteString(s)

	return t.Inter(off, uint32(len(s)))
}

// Lookup undoes Inter: given an interned atom, it returns the byte range
// of its name in the yard, or (-1, -1) if atom does not resolve to a
// live record.
func (t *Table) Lookup(atom value.T) (offset, length int32) {
	idx := t.recordIndex(atom)
	if idx <= 0 || idx >= len(t.records) {
		return -1, -1
	}

	r := t.records[idx]

	return int32(r.offset), int32(r.length)
}

// Name returns the string an interned atom denotes, or "" if it does not
// resolve to a live record.
func (t *Table) Name(atom value.T) string {
	off, length := t.Lookup(atom)
	if off < 0 {
		return ""
	}

	return string(t.yard.Slice(uint32(off), uint32(length)))
}

// SysOpcode returns the system opcode bound to atom's record, or 0 if
// none is bound or atom is not interned.
func (t *Table) SysOpcode(atom value.T) uint16 {
	idx := t.recordIndex(atom)
	if idx <= 0 || idx >= len(t.records) {
		return 0
	}

	return t.records[idx].sysOpcode
}

// SetSysOpcode binds opcode to atom's record. It panics if atom is not an
// interned name; registration is only ever performed against names.
func (t *Table) SetSysOpcode(atom value.T, opcode uint16) {
	idx := t.recordIndex(atom)
	if idx <= 0 || idx >= len(t.records) {
		panic("intern: not an interned atom")
	}

	t.records[idx].sysOpcode = opcode
}

// Each calls fn for every interned record with a bound system opcode.
func (t *Table) Each(fn func(atom value.T, opcode uint16)) {
	for i := 1; i < len(t.records); i++ {
		if t.records[i].sysOpcode != 0 {
			fn(t.atomFor(i), t.records[i].sysOpcode)
		}
	}
}

func (t *Table) intern(offset, length uint32) value.T {
	t.records = append(t.records, record{offset: offset, length: uint16(length)})

	return t.atomFor(len(t.records) - 1)
}

func (t *Table) atomFor(index int) value.T {
	return value.Of(int32(index*recordSize) ^ tagBit)
}

func (t *Table) recordIndex(atom value.T) int {
	if !atom.IsAtom() {
		return -1
	}

	byteOffset := atom.Raw() ^ tagBit
	if byteOffset < 0 || byteOffset%recordSize != 0 {
		return -1
	}

	return int(byteOffset) / recordSize
}
