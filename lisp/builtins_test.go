// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisptest"
	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	tests := lisptest.TestSuite{
		{"fold", lisptest.TestSequence{
			{"(+ 1 2 3)", "6"},
			{"+ 1 2", "3"},
			{"(* 2 3 4)", "24"},
			{"(- 10 1 2)", "7"},
			{"(/ 100 5 2)", "10"},
			{"(+ 1 (* 2 3) (- 10 4))", "13"},
		}},
		{"unary minus", lisptest.TestSequence{
			{"(- 5)", "-5"},
			{"(- -5)", "5"},
			{"(- 5 3)", "2"},
			{"(+ 5)", "5"},
		}},
		{"aliases", lisptest.TestSequence{
			{"(add 1 2)", "3"},
			{"(sub 1)", "-1"},
			{"(mul 2 3)", "6"},
			{"(mult 2 3)", "6"},
			{"(div 9 3)", "3"},
			{"(mod 9 4)", "1"},
			{"(exp 3 3)", "27"},
		}},
		{"truncation", lisptest.TestSequence{
			{"(/ 7 2)", "3"},
			{"(/ -7 2)", "-3"},
			{"(% 7 3)", "1"},
			{"(% -7 2)", "-1"},
			{"(% 7 -1)", "0"},
		}},
		{"exponent", lisptest.TestSequence{
			{"(^ 2 10)", "1024"},
			{"(^ 2 0)", "1"},
			{"(^ -2 3)", "-8"},
			{"(^ 2 3 2)", "64"},
			{"(^ 2 62)", "4611686018427387904"},
			{"(^ 2 -1)", "0"},
			{"(^ 1 -5)", "1"},
			{"(^ -1 -3)", "-1"},
			{"(^ -1 -2)", "1"},
			{"(^ 0 -1)", "Error: Division by zero"},
			{"(^ 2 63)", "Error: Integer overflow"},
		}},
		{"divide by zero", lisptest.TestSequence{
			{"(/ 10 0)", "Error: Division by zero"},
			{"(/ 10 0 5)", "Error: Division by zero"},
			{"(% 10 0)", "Error: Division by zero"},
			{"(+ 1 (/ 1 0))", "Error: Division by zero"},
		}},
		{"overflow", lisptest.TestSequence{
			{"(+ 9223372036854775807 1)", "Error: Integer overflow"},
			{"(- -9223372036854775808 1)", "Error: Integer overflow"},
			{"(- -9223372036854775808)", "Error: Integer overflow"},
			{"(* 4611686018427387904 2)", "Error: Integer overflow"},
			{"(* -4611686018427387904 2)", "-9223372036854775808"},
			{"(/ -9223372036854775808 -1)", "Error: Integer overflow"},
			{"(+ 9223372036854775807 -1)", "9223372036854775806"},
		}},
		{"type errors", lisptest.TestSequence{
			{"(+ 1 {2})", "Error: Cannot operate on non-number: qexpr"},
			{"(* 1 head)", "Error: Cannot operate on non-number: symbol"},
			{"(- {} 1)", "Error: Cannot operate on non-number: qexpr"},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestListBuiltins(t *testing.T) {
	tests := lisptest.TestSuite{
		{"list", lisptest.TestSequence{
			{"(list 1 2 (+ 1 2))", "{1 2 3}"},
			{"(list 1 {2})", "{1 {2}}"},
			{"(list list)", "{list}"},
		}},
		{"head", lisptest.TestSequence{
			{"(head {1 2 3})", "{1}"},
			{"(head {(+ 1 2) 4})", "{(+ 1 2)}"},
			{"(head {})", "Error: Function 'head' passed empty qexpr"},
			{"(head {1} {2})", "Error: Function 'head' passed too many arguments"},
			{"(head 1)", "Error: Function 'head' passed incorrect type: number"},
		}},
		{"tail", lisptest.TestSequence{
			{"(tail {1 2 3})", "{2 3}"},
			{"(tail {1})", "{}"},
			{"(tail {})", "Error: Function 'tail' passed empty qexpr"},
			{"(tail {1} {2})", "Error: Function 'tail' passed too many arguments"},
			{"(tail (+ 1 2))", "Error: Function 'tail' passed incorrect type: number"},
		}},
		{"join", lisptest.TestSequence{
			{"(join {1 2} {3})", "{1 2 3}"},
			{"(join {1} {} {2 3} {4})", "{1 2 3 4}"},
			{"(join {} {})", "{}"},
			{"(join {1} 2)", "Error: Function 'join' passed incorrect type: number"},
			{"(join 1 {2})", "Error: Function 'join' passed incorrect type: number"},
		}},
		{"eval", lisptest.TestSequence{
			{"(eval {+ 1 2})", "3"},
			{"(eval {})", "()"},
			{"(eval {head {1 2}})", "{1}"},
			{"(eval (head {(+ 1 2) (+ 10 20)}))", "3"},
			{"(eval (tail {tail tail {5 6 7}}))", "{6 7}"},
			{"(eval 1)", "Error: Function 'eval' passed incorrect type: number"},
			{"(eval {1} {2})", "Error: Function 'eval' passed too many arguments"},
			{"(eval {/ 1 0})", "Error: Division by zero"},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestLookupBuiltin(t *testing.T) {
	for _, name := range []string{"+", "add", "-", "sub", "*", "mul", "mult", "/", "div", "%", "mod", "^", "exp", "list", "head", "tail", "join", "eval"} {
		b, ok := lisp.LookupBuiltin(name)
		if assert.True(t, ok, name) {
			assert.NotEqual(t, lisp.BuiltinInvalid, b)
			assert.NotEmpty(t, b.Doc(), name)
			assert.NotEmpty(t, b.Formals(), name)
		}
	}
	_, ok := lisp.LookupBuiltin("fnord")
	assert.False(t, ok)

	b, _ := lisp.LookupBuiltin("mult")
	assert.Equal(t, lisp.BuiltinMul, b)
	assert.Equal(t, "*", b.String())
	assert.Equal(t, []string{"mul", "mult"}, b.Aliases())

	assert.Len(t, lisp.Builtins(), 11)
	assert.Len(t, lisp.BuiltinNames(), 18)
	assert.Equal(t, "INVALID", lisp.Builtin(99).String())
}

func TestApplyConsumesOperands(t *testing.T) {
	h := lisp.NewHeap()
	env := lisp.NewEnv()
	assert.NoError(t, lisp.GoError(lisp.InitializeEnv(env, lisp.WithHeap(h))))

	for _, b := range lisp.Builtins() {
		// A number operand is a type error for every builtin but list.
		args := h.SExpr().Append(h.Int(1)).Append(h.Symbol("x"))
		r := env.Apply(b, args)
		assert.True(t, args.Released() || r == args, b.String())
		r.Release()
		assert.EqualValues(t, 0, h.Live(), b.String())
	}

	args := h.SExpr().Append(h.Int(1))
	r := env.Apply(lisp.BuiltinInvalid, args)
	assert.Equal(t, "Error: Unknown function 'INVALID'", r.String())
	r.Release()
	assert.EqualValues(t, 0, h.Live())
}

func TestApplyNoOperands(t *testing.T) {
	env := lisp.NewEnv()
	tests := []struct {
		b      lisp.Builtin
		result string
	}{
		{lisp.BuiltinAdd, "Error: Function '+' passed no arguments"},
		{lisp.BuiltinList, "{}"},
		{lisp.BuiltinHead, "Error: Function 'head' passed too few arguments"},
		{lisp.BuiltinTail, "Error: Function 'tail' passed too few arguments"},
		{lisp.BuiltinJoin, "Error: Function 'join' passed no arguments"},
		{lisp.BuiltinEval, "Error: Function 'eval' passed too few arguments"},
	}
	for _, test := range tests {
		r := env.Apply(test.b, lisp.SExpr())
		assert.Equal(t, test.result, r.String(), test.b.String())
	}
}
