// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// LType is the type of an LVal
type LType uint

// Possible LValType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LInt values store a signed 64-bit integer in the LVal.Int field.
	LInt
	// LError values store a message in the LVal.Str field and their
	// condition in LVal.Cond.  Errors never have Cells.
	LError
	// LSymbol values store the symbol name in the LVal.Str field.
	LSymbol
	// LSExpr values are expressions to be evaluated and store their values in
	// LVal.Cells.
	LSExpr
	// LQExpr values are literal lists.  Evaluation does not descend into
	// them.  They store their values in LVal.Cells.
	LQExpr
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LInt:     "number",
	LError:   "error",
	LSymbol:  "symbol",
	LSExpr:   "sexpr",
	LQExpr:   "qexpr",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value.
//
// An LVal exclusively owns every value in Cells.  Values are moved between
// containers (Pop, Take, Join) and never shared, so the values reachable
// from a root always form a tree.
type LVal struct {
	// Str used by LSymbol (name) and LError (message) values
	Str string

	// Cells used by LSExpr and LQExpr values.
	Cells []*LVal

	// heap accounts for the value's release, if non-nil.
	heap *Heap

	// Type is the native type for a value in lisp.
	Type LType

	// Cond classifies LError values.
	Cond Condition

	// Int is the value of an LInt.
	Int int64

	released bool
}

// Int returns an LVal representing the number x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Symbol returns an LVal representing the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// SExpr returns an LVal representing an empty S-expression, a symbolic
// expression.
func SExpr() *LVal {
	return &LVal{
		Type: LSExpr,
	}
}

// QExpr returns an LVal representing an empty Q-expression, a quoted
// expression.
func QExpr() *LVal {
	return &LVal{
		Type: LQExpr,
	}
}

// Error returns an LError with the given condition and message.
func Error(cond Condition, msg string) *LVal {
	return &LVal{
		Type: LError,
		Cond: cond,
		Str:  msg,
	}
}

// Errorf returns an LError with the given condition and a formatted error
// message.
func Errorf(cond Condition, format string, v ...interface{}) *LVal {
	return Error(cond, fmt.Sprintf(format, v...))
}

// Len returns the number of cells in a list value and zero for all other
// types.
func (v *LVal) Len() int {
	switch v.Type {
	case LSExpr, LQExpr:
		return len(v.Cells)
	default:
		return 0
	}
}

// IsList returns true if v is an LSExpr or an LQExpr.
func (v *LVal) IsList() bool {
	return v.Type == LSExpr || v.Type == LQExpr
}

// Released returns true if v has been released by its owner.
func (v *LVal) Released() bool {
	return v.released
}

// Equal returns true if v and other have the same type, payload and
// children.  Equal does not consume either value.
func (v *LVal) Equal(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LInt:
		return v.Int == other.Int
	case LError:
		return v.Cond == other.Cond && v.Str == other.Str
	case LSymbol:
		return v.Str == other.Str
	case LSExpr, LQExpr:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v as text.  String does not consume v.
func (v *LVal) String() string {
	switch v.Type {
	case LInt:
		return strconv.FormatInt(v.Int, 10)
	case LError:
		return "Error: " + v.Str
	case LSymbol:
		return v.Str
	case LSExpr:
		return exprString(v, "(", ")")
	case LQExpr:
		return exprString(v, "{", "}")
	default:
		return fmt.Sprintf("#<%s>", v.Type)
	}
}

// Fprint writes the rendering of v to w.
func Fprint(w io.Writer, v *LVal) (int, error) {
	return io.WriteString(w, v.String())
}

// Fprintln writes the rendering of v to w followed by a newline.
func Fprintln(w io.Writer, v *LVal) (int, error) {
	return io.WriteString(w, v.String()+"\n")
}

func exprString(v *LVal, left string, right string) string {
	if len(v.Cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
