// Released under an MIT license. See LICENSE.

// Package value provides mu_'s tagged 32-bit value encoding.
//
// A T is never a sum type. It is an opaque wrapper around a signed 32-bit
// integer: the sign and magnitude of the wrapped integer carry the meaning.
// Positive values are atoms, zero is the empty list, and negative values
// are references to cons cells (the magnitude is the cell's byte offset,
// negated). Keeping T a plain integer lets the arithmetic builtins treat
// atoms as numbers directly, which is the whole point of the encoding.
package value

// T is a mu_ value: a tagged, signed 32-bit integer.
type T int32

// Nil is the empty list and the terminator of lists.
const Nil T = 0

// Sentinel is the forwarding sentinel the collector writes into a head
// slot mid-collection. It is negative, so never an atom; its appearance
// as an ordinary head word indicates heap exhaustion.
const Sentinel T = T(int32(-1 << 31))

// Of wraps a raw 32-bit word as a T without interpretation.
func Of(raw int32) T {
	return T(raw)
}

// Raw returns the underlying 32-bit word.
func (v T) Raw() int32 {
	return int32(v)
}

// IsNil reports whether v is the empty list.
func (v T) IsNil() bool {
	return v == Nil
}

// IsAtom reports whether v denotes an atom (including the case v == Nil,
// which the evaluator's builtin dispatch treats as atom index 0).
func (v T) IsAtom() bool {
	return v >= 0
}

// IsCons reports whether v is a reference to a cons cell.
func (v T) IsCons() bool {
	return v < 0
}

// Offset returns the byte offset of the cell v refers to. Only valid when
// v.IsCons().
func (v T) Offset() int32 {
	return -int32(v)
}

// FromOffset builds a cons reference to the cell at the given byte offset.
func FromOffset(offset int32) T {
	return T(-offset)
}

// Int returns v's numeric interpretation, used by the arithmetic builtins.
func (v T) Int() int32 {
	return int32(v)
}

// FromInt builds an atom from an arithmetic result, masking it into the
// modular-naturals range the builtins operate in (mod 2^31).
func FromInt(n uint32) T {
	return T(n & 0x7FFFFFFF)
}
