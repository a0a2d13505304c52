package printer

import (
	"testing"

	"github.com/BrickNumber5/mu/internal/heap"
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/value"
	"github.com/BrickNumber5/mu/internal/yard"
)

func TestPrintNil(t *testing.T) {
	y := yard.New()
	tbl := intern.New(y)
	h := heap.New()
	p := New(h, tbl)

	if got := p.String(value.Nil); got != "()" {
		t.Fatalf("String(Nil) = %q, want %q", got, "()")
	}
}

func TestPrintNamedAtom(t *testing.T) {
	y := yard.New()
	tbl := intern.New(y)
	h := heap.New()
	p := New(h, tbl)

	a := tbl.InterString("foo")

	if got := p.String(a); got != "foo" {
		t.Fatalf("String(foo) = %q, want %q", got, "foo")
	}
}

func TestPrintUnnamedAtomAsDecimal(t *testing.T) {
	y := yard.New()
	tbl := intern.New(y)
	h := heap.New()
	p := New(h, tbl)

	if got := p.String(value.Of(42)); got != "42" {
		t.Fatalf("String(42) = %q, want %q", got, "42")
	}
}

func TestPrintProperList(t *testing.T) {
	y := yard.New()
	tbl := intern.New(y)
	h := heap.New()
	p := New(h, tbl)

	list := h.Cons(value.Of(1), h.Cons(value.Of(2), value.Nil))

	if got := p.String(list); got != "(1 2)" {
		t.Fatalf("String((1 2)) = %q, want %q", got, "(1 2)")
	}
}

func TestPrintDottedTail(t *testing.T) {
	y := yard.New()
	tbl := intern.New(y)
	h := heap.New()
	p := New(h, tbl)

	pair := h.Cons(value.Of(1), value.Of(2))

	if got := p.String(pair); got != "(1 . 2)" {
		t.Fatalf("String((1 . 2)) = %q, want %q", got, "(1 . 2)")
	}
}
