// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T, config ...lisp.Config) (*lisp.LEnv, *lisp.Heap) {
	h := lisp.NewHeap()
	env, _ := lisptest.NewEnv(t, append([]lisp.Config{lisp.WithHeap(h)}, config...)...)
	return env, h
}

// sexpr builds a tracked S-expression from Go values: int for numbers,
// string for symbols and *lisp.LVal for anything else.
func sexpr(h *lisp.Heap, cells ...interface{}) *lisp.LVal {
	return fill(h, h.SExpr(), cells)
}

func qexpr(h *lisp.Heap, cells ...interface{}) *lisp.LVal {
	return fill(h, h.QExpr(), cells)
}

func fill(h *lisp.Heap, v *lisp.LVal, cells []interface{}) *lisp.LVal {
	for _, c := range cells {
		switch c := c.(type) {
		case int:
			v.Append(h.Int(int64(c)))
		case string:
			v.Append(h.Symbol(c))
		case *lisp.LVal:
			v.Append(c)
		default:
			panic("bad cell")
		}
	}
	return v
}

func TestEval_Literals(t *testing.T) {
	env, h := newTestEnv(t)
	literals := []*lisp.LVal{
		h.Int(42),
		h.Symbol("head"),
		qexpr(h, "+", 1, sexpr(h, "/", 1, 0)),
		h.Error(lisp.CondTypeError, "boom"),
	}
	for _, v := range literals {
		expect := v.String()
		r := env.Eval(v)
		assert.Same(t, v, r)
		assert.Equal(t, expect, r.String())
		r.Release()
	}
	assert.EqualValues(t, 0, h.Live())
}

func TestEval_SingletonCollapse(t *testing.T) {
	env, h := newTestEnv(t)
	inner := qexpr(h, 1, 2)
	r := env.Eval(sexpr(h, inner))
	assert.Same(t, inner, r)
	assert.Equal(t, "{1 2}", r.String())
	r.Release()

	r = env.Eval(sexpr(h, sexpr(h, "+", 1, 2)))
	assert.Equal(t, "3", r.String())
	r.Release()

	r = env.Eval(sexpr(h, "list"))
	assert.Equal(t, lisp.LSymbol, r.Type)
	r.Release()
	assert.EqualValues(t, 0, h.Live())
}

func TestEval_Empty(t *testing.T) {
	env, h := newTestEnv(t)
	v := h.SExpr()
	r := env.Eval(v)
	assert.Same(t, v, r)
	assert.Equal(t, "()", r.String())
	r.Release()
	assert.EqualValues(t, 0, h.Live())
}

func TestEval_ErrorDominance(t *testing.T) {
	env, h := newTestEnv(t)

	// The first error in left-to-right order wins regardless of siblings.
	r := env.Eval(sexpr(h, "+",
		sexpr(h, "fnord", 1),
		sexpr(h, "/", 1, 0),
		sexpr(h, "head", qexpr(h))))
	require.Equal(t, lisp.LError, r.Type)
	assert.Equal(t, lisp.CondUnknownFunction, r.Cond)
	assert.Equal(t, "Error: Unknown function 'fnord'", r.String())
	r.Release()

	r = env.Eval(sexpr(h, 1, 2, sexpr(h, "/", 1, 0)))
	assert.Equal(t, lisp.CondDivideByZero, r.Cond)
	r.Release()

	r = env.Eval(sexpr(h, "head", h.Error(lisp.CondBadNumber, "invalid number")))
	assert.Equal(t, "Error: invalid number", r.String())
	r.Release()
	assert.EqualValues(t, 0, h.Live())
}

func TestEval_NotASymbol(t *testing.T) {
	env, h := newTestEnv(t)
	r := env.Eval(sexpr(h, 1, 2, 3))
	assert.Equal(t, lisp.CondNotASymbol, r.Cond)
	assert.Equal(t, "Error: S-expression does not start with symbol", r.String())
	r.Release()

	r = env.Eval(sexpr(h, qexpr(h, "+"), 1))
	assert.Equal(t, lisp.CondNotASymbol, r.Cond)
	r.Release()
	assert.EqualValues(t, 0, h.Live())
}

// The scenarios below must release every value exactly once on success and
// error paths alike.
func TestEval_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		build  func(h *lisp.Heap) *lisp.LVal
		result string
	}{
		{"sum", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "+", 1, 2, 3) }, "6"},
		{"negate", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "-", 5) }, "-5"},
		{"divide by zero", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "/", 10, 0) }, "Error: Division by zero"},
		{"eval", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "eval", qexpr(h, "+", 1, 2)) }, "3"},
		{"head", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "head", qexpr(h, 1, 2, 3)) }, "{1}"},
		{"tail", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "tail", qexpr(h, 1, 2, 3)) }, "{2 3}"},
		{"head empty", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "head", qexpr(h)) }, "Error: Function 'head' passed empty qexpr"},
		{"join", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "join", qexpr(h, 1, 2), qexpr(h, 3)) }, "{1 2 3}"},
		{"join type", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "join", qexpr(h, 1, 2), 3, qexpr(h, 4)) }, "Error: Function 'join' passed incorrect type: number"},
		{"unknown", func(h *lisp.Heap) *lisp.LVal { return sexpr(h, "fnord", qexpr(h, 1, 2), 3) }, "Error: Unknown function 'fnord'"},
		{"nested", func(h *lisp.Heap) *lisp.LVal {
			return sexpr(h, "eval", sexpr(h, "join", qexpr(h, "*"), sexpr(h, "tail", qexpr(h, 0, 6, 7))))
		}, "42"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			env, h := newTestEnv(t)
			v := test.build(h)
			allocs := h.Allocs()
			r := env.Eval(v)
			assert.Equal(t, test.result, r.String())
			r.Release()
			assert.EqualValues(t, 0, h.Live(), "%s", h)
			assert.GreaterOrEqual(t, h.Frees(), allocs)
		})
	}
}

func TestEval_MaxDepth(t *testing.T) {
	env, h := newTestEnv(t, lisp.WithMaxDepth(3))
	r := env.EvalString("test", "((((1))))")
	assert.Equal(t, lisp.CondDepthExceeded, r.Cond)
	assert.Equal(t, "Error: maximum expression depth exceeded (3)", r.String())
	r.Release()
	assert.EqualValues(t, 0, h.Live())
	assert.Equal(t, 0, env.Runtime.Depth())

	r = env.EvalString("test", "((1))")
	assert.Equal(t, "1", r.String())
	r.Release()

	// eval re-enters the evaluator and counts toward the depth.
	r = env.EvalString("test", "(eval {eval {eval {+ 1 2}}})")
	assert.Equal(t, lisp.CondDepthExceeded, r.Cond)
	r.Release()
	assert.EqualValues(t, 0, h.Live())
}

func TestEval_Context(t *testing.T) {
	env, h := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := env.Read("test", strings.NewReader("(+ 1 2)"))
	require.NoError(t, err)
	r := env.EvalContext(ctx, v)
	assert.Equal(t, lisp.CondContextCancelled, r.Cond)
	assert.Equal(t, "Error: evaluation interrupted: context canceled", r.String())
	r.Release()
	assert.EqualValues(t, 0, h.Live())

	// The context only applies to the EvalContext call.
	r = env.EvalString("test", "(+ 1 2)")
	assert.Equal(t, "3", r.String())
	r.Release()
}

func TestEval_WithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	env, _ := newTestEnv(t, lisp.WithContext(ctx))
	r := env.EvalString("test", "(+ 1 2)")
	assert.Equal(t, "3", r.String())
	cancel()
	r = env.EvalString("test", "(+ 1 2)")
	assert.Equal(t, lisp.CondContextCancelled, r.Cond)
}

func TestEvalString(t *testing.T) {
	env, h := newTestEnv(t)
	r := env.EvalString("test", "(+ 1")
	assert.Equal(t, lisp.CondBadSyntax, r.Cond)
	r.Release()

	r = env.EvalString("test", "")
	assert.Equal(t, "()", r.String())
	r.Release()
	assert.EqualValues(t, 0, h.Live())

	noreader := lisp.NewEnv()
	r = noreader.EvalString("test", "1")
	assert.Equal(t, "Error: no reader for the environment runtime", r.String())
}

type countingProfiler struct {
	enabled bool
	calls   []string
	ended   int
}

func (p *countingProfiler) IsEnabled() bool { return p.enabled }
func (p *countingProfiler) Enable() error   { p.enabled = true; return nil }
func (p *countingProfiler) Complete() error { return nil }
func (p *countingProfiler) Start(name string) func() {
	p.calls = append(p.calls, name)
	return func() { p.ended++ }
}

func TestEval_Profiler(t *testing.T) {
	p := &countingProfiler{}
	env, _ := newTestEnv(t, lisp.WithProfiler(p))
	assert.True(t, p.IsEnabled())
	r := env.EvalString("test", "(add 1 (* 2 3) (- 0))")
	assert.Equal(t, "7", r.String())
	assert.Equal(t, []string{"*", "-", "+"}, p.calls)
	assert.Equal(t, 3, p.ended)

	r = env.EvalString("test", "(fnord 1)")
	assert.Equal(t, lisp.CondUnknownFunction, r.Cond)
	assert.Len(t, p.calls, 3)
}

func TestEvalSuite(t *testing.T) {
	tests := lisptest.TestSuite{
		{"literals", lisptest.TestSequence{
			{"42", "42"},
			{"head", "head"},
			{"{1 2 (+ 1 2)}", "{1 2 (+ 1 2)}"},
			{"{}", "{}"},
			{"", "()"},
			{"()", "()"},
			{"(())", "()"},
		}},
		{"singletons", lisptest.TestSequence{
			{"(5)", "5"},
			{"((((5))))", "5"},
			{"((+ 1 2))", "3"},
			{"(list)", "list"},
		}},
		{"errors", lisptest.TestSequence{
			{"(1 2 3)", "Error: S-expression does not start with symbol"},
			{"((head {1 2}) 3)", "Error: S-expression does not start with symbol"},
			{"(fnord 1)", "Error: Unknown function 'fnord'"},
			{"(+ (fnord 1) (/ 1 0))", "Error: Unknown function 'fnord'"},
			{"(+ (/ 1 0) (fnord 1))", "Error: Division by zero"},
			{"99999999999999999999", "Error: invalid number"},
			{"(+ 1 1.5)", "Error: invalid number"},
			{"{1 99999999999999999999}", "{1 Error: invalid number}"},
		}},
		{"top level", lisptest.TestSequence{
			{"+ 1 2", "3"},
			{"head {1 2}", "{1}"},
			{"1 2", "Error: S-expression does not start with symbol"},
		}},
		{"symbol boundaries", lisptest.TestSequence{
			{"(+1 2)", "3"},
			{"(-1)", "-1"},
			{"(- 1-2)", "3"},
			{"(list 5abc)", "{5 abc}"},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
