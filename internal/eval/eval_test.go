package eval

import (
	"testing"

	"github.com/BrickNumber5/mu/internal/heap"
	"github.com/BrickNumber5/mu/internal/intern"
	"github.com/BrickNumber5/mu/internal/reader/parser"
	"github.com/BrickNumber5/mu/internal/sysop"
	"github.com/BrickNumber5/mu/internal/value"
	"github.com/BrickNumber5/mu/internal/yard"
)

// fixture bundles a fresh interpreter core for a single test.
type fixture struct {
	h *heap.Heap
	y *yard.Yard
	t *intern.Table
	s *sysop.Table
	e *Interp
}

func setup() *fixture {
	h := heap.New()
	y := yard.New()
	tbl := intern.New(y)

	f := &fixture{h: h, y: y, t: tbl}

	f.s = sysop.New(tbl, f.reflect)
	f.e = New(h, tbl, y, f.s)

	return f
}

func (f *fixture) reflect(arg, env value.T) value.T {
	result := value.Nil

	f.s.Each(func(name value.T, opcode uint16) {
		result = f.h.Cons(f.h.Cons(name, value.Of(int32(opcode))), result)
	})

	return result
}

// parse parses a single top-level expression from src, appending a
// trailing NUL so a trailing atom is recognized as complete.
func (f *fixture) parse(src string) value.T {
	return parser.Parse(f.h, f.t, f.y, []byte(src))
}

func TestEvalNilIsNil(t *testing.T) {
	f := setup()

	if got := f.e.Eval(value.Nil, value.Nil, f.e.Anchor()); got != value.Nil {
		t.Fatalf("eval(0, env) = %v, want 0", got)
	}
}

func TestEvalUnboundSymbolIsSelfQuoting(t *testing.T) {
	f := setup()

	sym := f.t.InterString("unbound")

	if got := f.e.Eval(sym, value.Nil, f.e.Anchor()); got != sym {
		t.Fatalf("eval(unbound atom) = %v, want itself", got)
	}
}

func TestQuoteReturnsFirstArgumentUnevaluated(t *testing.T) {
	f := setup()

	expr := f.parse("(() (~~add 1 2))")

	got := f.e.Eval(expr, value.Nil, f.e.Anchor())
	want := f.h.Head(f.h.Tail(expr)) // the unevaluated (~~add 1 2)

	if got != want {
		t.Fatalf("quote did not return its argument unevaluated")
	}
}

func TestArithmeticOnDigitLiterals(t *testing.T) {
	f := setup()

	expr := f.parse("(~~add 2 3)")

	got := f.e.Eval(expr, value.Nil, f.e.Anchor())
	if got.Int() != 5 {
		t.Fatalf("eval((~~add 2 3)) = %d, want 5", got.Int())
	}
}

func TestEqReturnsTrueAtom(t *testing.T) {
	f := setup()

	expr := f.parse("(~~eq (~~add 2 3) 5)")

	got := f.e.Eval(expr, value.Nil, f.e.Anchor())
	if got != f.e.trueAtom() {
		t.Fatalf("eval((~~eq (~~add 2 3) 5)) did not return ~~true")
	}
}

func TestBooleanAtomsActAsConditionals(t *testing.T) {
	f := setup()

	a := f.t.InterString("a")
	b := f.t.InterString("b")

	trueExpr := f.h.Cons(f.e.trueAtom(), f.h.Cons(a, f.h.Cons(b, value.Nil)))
	falseExpr := f.h.Cons(f.e.falseAtom(), f.h.Cons(a, f.h.Cons(b, value.Nil)))

	if got := f.e.Eval(trueExpr, value.Nil, f.e.Anchor()); got != a {
		t.Fatalf("(~~true a b) = %v, want a", got)
	}

	if got := f.e.Eval(falseExpr, value.Nil, f.e.Anchor()); got != b {
		t.Fatalf("(~~false a b) = %v, want b", got)
	}
}

func TestHeadTailCons(t *testing.T) {
	f := setup()

	headExpr := f.parse("(~~head (~~cons 1 2))")
	tailExpr := f.parse("(~~tail (~~cons 1 2))")

	if got := f.e.Eval(headExpr, value.Nil, f.e.Anchor()); got.Int() != 1 {
		t.Fatalf("~~head ~~cons: got %d, want 1", got.Int())
	}

	if got := f.e.Eval(tailExpr, value.Nil, f.e.Anchor()); got.Int() != 2 {
		t.Fatalf("~~tail ~~cons: got %d, want 2", got.Int())
	}
}

func TestUserReceiverLexicalClosure(t *testing.T) {
	f := setup()

	// f := ((x . (y . ())) (~~add x y) baseEnv)
	x := f.t.InterString("x")
	y := f.t.InterString("y")
	pattern := f.h.Cons(x, f.h.Cons(y, value.Nil))
	body := f.parse("(~~add x y)")

	capture := f.t.InterString("env_capture")

	// captured env for the closure body: a one-binding environment
	// (env_capture bound to nil) that the body runs in instead of the
	// call-site environment.
	baseEnv := f.h.Cons(f.h.Cons(capture, value.Nil), value.Nil)

	receiver := f.h.Cons(pattern, f.h.Cons(body, f.h.Cons(baseEnv, value.Nil)))

	fSym := f.t.InterString("f")
	callEnv := f.h.Cons(f.h.Cons(fSym, receiver), value.Nil)

	expr := f.h.Cons(fSym, f.h.Cons(f.parse("3"), f.h.Cons(f.parse("4"), value.Nil)))

	got := f.e.Eval(expr, callEnv, f.e.Anchor())
	if got.Int() != 7 {
		t.Fatalf("(f 3 4) = %d, want 7", got.Int())
	}
}

func TestMacroLikeReceiverReceivesUnevaluatedArgs(t *testing.T) {
	f := setup()

	x := f.t.InterString("x")
	pattern := f.h.Cons(x, value.Nil)
	body := f.t.InterString("x") // returns whatever x is bound to: the unevaluated arg

	receiver := f.h.Cons(pattern, f.h.Cons(body, value.Nil)) // rest == nil: macro-like

	mSym := f.t.InterString("m")
	env := f.h.Cons(f.h.Cons(mSym, receiver), value.Nil)

	arg := f.parse("(~~add 1 2)") // deliberately not reducible by accident

	expr := f.h.Cons(mSym, f.h.Cons(arg, value.Nil))

	got := f.e.Eval(expr, env, f.e.Anchor())
	if got != arg {
		t.Fatal("macro-like receiver should see its argument unevaluated")
	}
}

func TestSysDispatchesToRegisteredHandler(t *testing.T) {
	f := setup()

	logName := f.t.InterString("log")

	var observed value.T

	f.s.Register(logName, func(arg, env value.T) value.T {
		observed = arg

		return f.e.Eval(arg, env, f.e.Anchor())
	})

	expr := f.parse("(~~sys log (~~add 1 1))")

	got := f.e.Eval(expr, value.Nil, f.e.Anchor())
	if got.Int() != 2 {
		t.Fatalf("(~~sys log (~~add 1 1)) = %d, want 2", got.Int())
	}

	if observed.Int() != 0 && !observed.IsCons() {
		t.Fatal("handler should have observed a cons expression, not a reduced value")
	}
}

func TestMatchPatternNilLeavesEnvUnchanged(t *testing.T) {
	f := setup()

	env := f.h.Cons(f.h.Cons(f.t.InterString("x"), value.Of(1)), value.Nil)

	got := f.e.Match(value.Of(99), value.Nil, env)
	if got != env {
		t.Fatal("match with pattern == 0 must leave env unchanged")
	}
}

func TestMatchPatternSymbolBinds(t *testing.T) {
	f := setup()

	sym := f.t.InterString("x")

	env := f.e.Match(value.Of(42), sym, value.Nil)

	if got := f.e.Lookup(sym, env); got.Int() != 42 {
		t.Fatalf("Lookup(x) after match = %d, want 42", got.Int())
	}
}
