// Copyright © 2018 The ELPS authors

package lisp

import (
	"math"
	"sort"
)

// Builtin identifies a primitive operation.  The set of builtins is closed;
// a symbol is resolved to a Builtin once, by LookupBuiltin, and Apply
// dispatches over every value.
type Builtin uint

// Builtin values.  BuiltinInvalid (0) names no operation.
const (
	BuiltinInvalid Builtin = iota
	BuiltinAdd
	BuiltinSub
	BuiltinMul
	BuiltinDiv
	BuiltinMod
	BuiltinExp
	BuiltinList
	BuiltinHead
	BuiltinTail
	BuiltinJoin
	BuiltinEval
	builtinMax
)

type builtinDef struct {
	name    string
	aliases []string
	formals string
	doc     string
}

var builtinDefs = []builtinDef{
	BuiltinInvalid: {name: "INVALID"},
	BuiltinAdd: {"+", []string{"add"}, "(+ x &rest ys)",
		`Returns the sum of its arguments, folded left to right.`},
	BuiltinSub: {"-", []string{"sub"}, "(- x &rest ys)",
		`Subtracts each of ys from x, left to right.  Given exactly one
		argument returns its negation.`},
	BuiltinMul: {"*", []string{"mul", "mult"}, "(* x &rest ys)",
		`Returns the product of its arguments, folded left to right.`},
	BuiltinDiv: {"/", []string{"div"}, "(/ x &rest ys)",
		`Divides x by each of ys, left to right, truncating toward zero.
		Division by zero is an error.`},
	BuiltinMod: {"%", []string{"mod"}, "(% x &rest ys)",
		`Returns the remainder of truncated division of x by each of ys, left
		to right.  The result has the sign of the dividend.`},
	BuiltinExp: {"^", []string{"exp"}, "(^ x &rest ys)",
		`Raises x to the power of each of ys, left to right.  Negative
		exponents produce the integer part of the fractional result.`},
	BuiltinList: {"list", nil, "(list &rest xs)",
		`Returns a q-expression containing its arguments.`},
	BuiltinHead: {"head", nil, "(head q)",
		`Returns a q-expression containing only the first element of the
		non-empty q-expression q.`},
	BuiltinTail: {"tail", nil, "(tail q)",
		`Returns the non-empty q-expression q without its first element.`},
	BuiltinJoin: {"join", nil, "(join q &rest qs)",
		`Returns a q-expression containing the elements of each argument in
		order.  Every argument must be a q-expression.`},
	BuiltinEval: {"eval", nil, "(eval q)",
		`Evaluates the q-expression q as an s-expression.`},
}

var builtinNames = func() map[string]Builtin {
	names := make(map[string]Builtin)
	for b := BuiltinInvalid + 1; b < builtinMax; b++ {
		names[builtinDefs[b].name] = b
		for _, alias := range builtinDefs[b].aliases {
			names[alias] = b
		}
	}
	return names
}()

// LookupBuiltin returns the builtin with the given name or alias.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinNames[name]
	return b, ok
}

// Builtins returns every valid Builtin in declaration order.
func Builtins() []Builtin {
	bs := make([]Builtin, 0, builtinMax-1)
	for b := BuiltinInvalid + 1; b < builtinMax; b++ {
		bs = append(bs, b)
	}
	return bs
}

// BuiltinNames returns every name and alias resolving to a builtin, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinNames))
	for name := range builtinNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b Builtin) def() *builtinDef {
	if b >= builtinMax {
		return &builtinDefs[BuiltinInvalid]
	}
	return &builtinDefs[b]
}

// String returns the canonical name of b.
func (b Builtin) String() string {
	return b.def().name
}

// Aliases returns the alternate names of b.
func (b Builtin) Aliases() []string {
	return b.def().aliases
}

// Formals returns a usage form for b.
func (b Builtin) Formals() string {
	return b.def().formals
}

// Doc returns the documentation for b.
func (b Builtin) Doc() string {
	return b.def().doc
}

// Apply calls builtin b with the operand container args.  Apply takes
// ownership of args on every path, success or failure.
func (env *LEnv) Apply(b Builtin, args *LVal) *LVal {
	switch b {
	case BuiltinAdd, BuiltinSub, BuiltinMul, BuiltinDiv, BuiltinMod, BuiltinExp:
		return builtinOp(env, b, args)
	case BuiltinList:
		return builtinList(env, args)
	case BuiltinHead:
		return builtinHead(env, args)
	case BuiltinTail:
		return builtinTail(env, args)
	case BuiltinJoin:
		return builtinJoin(env, args)
	case BuiltinEval:
		return builtinEval(env, args)
	case BuiltinInvalid, builtinMax:
	}
	args.Release()
	return env.Errorf(CondUnknownFunction, "Unknown function '%s'", b)
}

// lassert releases args and returns an error when cond is false.  It returns
// nil when cond holds.
func lassert(env *LEnv, args *LVal, cond bool, c Condition, format string, v ...interface{}) *LVal {
	if cond {
		return nil
	}
	args.Release()
	return env.Errorf(c, format, v...)
}

// assertSingleQExpr checks the operands of builtins taking exactly one
// q-expression.
func assertSingleQExpr(env *LEnv, b Builtin, args *LVal) *LVal {
	if len(args.Cells) > 1 {
		return lassert(env, args, false, CondArityError, "Function '%s' passed too many arguments", b)
	}
	if lerr := lassert(env, args, len(args.Cells) == 1, CondArityError, "Function '%s' passed too few arguments", b); lerr != nil {
		return lerr
	}
	return lassert(env, args, args.Cells[0].Type == LQExpr, CondTypeError,
		"Function '%s' passed incorrect type: %s", b, args.Cells[0].Type)
}

func builtinOp(env *LEnv, op Builtin, args *LVal) *LVal {
	for _, c := range args.Cells {
		if c.Type != LInt {
			args.Release()
			return env.Errorf(CondTypeError, "Cannot operate on non-number: %s", c.Type)
		}
	}
	if len(args.Cells) == 0 {
		args.Release()
		return env.Errorf(CondArityError, "Function '%s' passed no arguments", op)
	}

	x := args.Pop(0)
	if op == BuiltinSub && len(args.Cells) == 0 {
		if x.Int == math.MinInt64 {
			x.Release()
			args.Release()
			return env.Errorf(CondOverflow, "Integer overflow")
		}
		x.Int = -x.Int
	}

	for len(args.Cells) > 0 {
		y := args.Pop(0)
		n, cond := arith(op, x.Int, y.Int)
		y.Release()
		if cond != CondNone {
			x.Release()
			args.Release()
			return env.Errorf(cond, "%s", arithMessage(cond))
		}
		x.Int = n
	}
	args.Release()
	return x
}

func arithMessage(cond Condition) string {
	switch cond {
	case CondDivideByZero:
		return "Division by zero"
	case CondOverflow:
		return "Integer overflow"
	default:
		return "Arithmetic error"
	}
}

// arith computes x op y.  A condition other than CondNone is returned if the
// result is not representable.
func arith(op Builtin, x, y int64) (int64, Condition) {
	switch op {
	case BuiltinAdd:
		return addInt(x, y)
	case BuiltinSub:
		return subInt(x, y)
	case BuiltinMul:
		return mulInt(x, y)
	case BuiltinDiv:
		if y == 0 {
			return 0, CondDivideByZero
		}
		if x == math.MinInt64 && y == -1 {
			return 0, CondOverflow
		}
		return x / y, CondNone
	case BuiltinMod:
		if y == 0 {
			return 0, CondDivideByZero
		}
		if y == -1 {
			return 0, CondNone
		}
		return x % y, CondNone
	case BuiltinExp:
		return expInt(x, y)
	default:
		return 0, CondUnknownFunction
	}
}

func addInt(x, y int64) (int64, Condition) {
	if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
		return 0, CondOverflow
	}
	return x + y, CondNone
}

func subInt(x, y int64) (int64, Condition) {
	if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
		return 0, CondOverflow
	}
	return x - y, CondNone
}

func mulInt(x, y int64) (int64, Condition) {
	if x == 0 || y == 0 {
		return 0, CondNone
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, CondOverflow
	}
	r := x * y
	if r/y != x {
		return 0, CondOverflow
	}
	return r, CondNone
}

func expInt(x, y int64) (int64, Condition) {
	if y < 0 {
		switch x {
		case 0:
			return 0, CondDivideByZero
		case 1:
			return 1, CondNone
		case -1:
			if y%2 == 0 {
				return 1, CondNone
			}
			return -1, CondNone
		default:
			return 0, CondNone
		}
	}
	result := int64(1)
	base := x
	for y > 0 {
		var cond Condition
		if y&1 == 1 {
			result, cond = mulInt(result, base)
			if cond != CondNone {
				return 0, cond
			}
		}
		y >>= 1
		if y > 0 {
			base, cond = mulInt(base, base)
			if cond != CondNone {
				return 0, cond
			}
		}
	}
	return result, CondNone
}

func builtinList(env *LEnv, args *LVal) *LVal {
	args.Type = LQExpr
	return args
}

func builtinHead(env *LEnv, args *LVal) *LVal {
	if lerr := assertSingleQExpr(env, BuiltinHead, args); lerr != nil {
		return lerr
	}
	if lerr := lassert(env, args, args.Cells[0].Len() != 0, CondEmptyList, "Function 'head' passed empty qexpr"); lerr != nil {
		return lerr
	}
	v := args.Take(0)
	for _, c := range v.Cells[1:] {
		c.Release()
	}
	clear(v.Cells[1:])
	v.Cells = v.Cells[:1]
	return v
}

func builtinTail(env *LEnv, args *LVal) *LVal {
	if lerr := assertSingleQExpr(env, BuiltinTail, args); lerr != nil {
		return lerr
	}
	if lerr := lassert(env, args, args.Cells[0].Len() != 0, CondEmptyList, "Function 'tail' passed empty qexpr"); lerr != nil {
		return lerr
	}
	v := args.Take(0)
	v.Pop(0).Release()
	return v
}

func builtinJoin(env *LEnv, args *LVal) *LVal {
	if lerr := lassert(env, args, len(args.Cells) > 0, CondArityError, "Function 'join' passed no arguments"); lerr != nil {
		return lerr
	}
	for _, c := range args.Cells {
		if c.Type != LQExpr {
			args.Release()
			return env.Errorf(CondTypeError, "Function 'join' passed incorrect type: %s", c.Type)
		}
	}
	x := args.Pop(0)
	for len(args.Cells) > 0 {
		x = Join(x, args.Pop(0))
	}
	args.Release()
	return x
}

func builtinEval(env *LEnv, args *LVal) *LVal {
	if lerr := assertSingleQExpr(env, BuiltinEval, args); lerr != nil {
		return lerr
	}
	x := args.Take(0)
	x.Type = LSExpr
	return env.Eval(x)
}
