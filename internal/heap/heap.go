// Released under an MIT license. See LICENSE.

// Package heap implements mu_'s cons-cell arena and its anchored copying
// collector.
//
// Cells are never addressed by native Go pointers. The heap is a flat,
// append-only array of 32-bit words indexed by byte offset, and a cons
// reference is just the negated offset of a cell's head word. This
// mirrors the source specification directly: the collector's forwarding
// trick depends on being able to overwrite a cell's words in place, which
// an arena gives for free and a graph of *Cell pointers would not.
package heap

import "github.com/BrickNumber5/mu/internal/value"

// Heap is a growable arena of cons cells, indexed by byte offset.
type Heap struct {
	mem []int32 // flat head/tail words; the first two words are padding.
}

// New creates an empty heap. The first 8 bytes are reserved padding so
// that no live cell ever lands at offset 0, which would be indistinguishable
// from Nil.
func New() *Heap {
	return &Heap{mem: make([]int32, 2)}
}

// Top returns the current allocation pointer (cons_top), suitable for use
// as a collection anchor.
func (h *Heap) Top() int32 {
	return int32(len(h.mem)) * 4
}

// Cons appends a new cell and returns a reference to it. Cons never fails;
// it is bounded only by host memory, exhaustion of which is fatal.
func (h *Heap) Cons(head, tail value.T) value.T {
	offset := h.Top()

	h.mem = append(h.mem, head.Raw(), tail.Raw())

	return value.FromOffset(offset)
}

// Head returns the head word of the cell v refers to. The behavior is
// undefined if v is not a cons reference.
func (h *Heap) Head(v value.T) value.T {
	return value.Of(h.mem[wordIndex(v.Offset())])
}

// Tail returns the tail word of the cell v refers to. The behavior is
// undefined if v is not a cons reference.
func (h *Heap) Tail(v value.T) value.T {
	return value.Of(h.mem[wordIndex(v.Offset())+1])
}

// SetHead overwrites the head word of the cell v refers to.
func (h *Heap) SetHead(v, w value.T) {
	h.mem[wordIndex(v.Offset())] = w.Raw()
}

// SetTail overwrites the tail word of the cell v refers to.
func (h *Heap) SetTail(v, w value.T) {
	h.mem[wordIndex(v.Offset())+1] = w.Raw()
}

// Collect runs the anchored semispace compaction described in the spec:
// cells below anchor are untouched, and everything at or above it is
// reclaimed except what is reachable from preserve. It returns preserve's
// new reference.
//
// anchor2, recorded at entry, marks the top of the live region being
// collected. copy() recursively relocates preserve into the region above
// anchor2, writing a forwarding pair (Sentinel, newRef) into each cell's
// original slots so that shared structure is copied exactly once. Once
// preserve is fully copied, the freshly-copied region is shifted down to
// sit directly above anchor, and cons_top is adjusted to match.
func (h *Heap) Collect(preserve value.T, anchor int32) value.T {
	anchor2 := h.Top()

	result := h.copy(preserve, anchor, anchor2)

	grown := h.Top() - anchor2
	if grown > 0 {
		src := wordIndex(anchor2)
		dst := wordIndex(anchor)
		n := int(grown) / 4

		copy(h.mem[dst:dst+n], h.mem[src:src+n])
	}

	h.mem = h.mem[:wordIndex(anchor)+int(grown)/4]

	return result
}

// copy recursively relocates v into the region above anchor2, leaving a
// forwarding pair behind so that a cell reachable by more than one path
// is only ever copied once.
func (h *Heap) copy(v value.T, anchor, anchor2 int32) value.T {
	if v.IsAtom() || v.Offset() < anchor {
		return v
	}

	if h.Head(v) == value.Sentinel {
		return h.Tail(v)
	}

	head := h.copy(h.Head(v), anchor, anchor2)
	tail := h.copy(h.Tail(v), anchor, anchor2)

	fresh := h.Cons(head, tail)
	adjusted := value.FromOffset(fresh.Offset() - (anchor2 - anchor))

	h.SetHead(v, value.Sentinel)
	h.SetTail(v, adjusted)

	return adjusted
}

func wordIndex(offset int32) int {
	return int(offset / 4)
}
