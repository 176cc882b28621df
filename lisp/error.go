// Copyright © 2018 The ELPS authors

package lisp

import "fmt"

// Condition classifies an LError value.
type Condition uint

// Condition values.  CondNone (0) is not a valid condition.
const (
	CondNone Condition = iota
	// CondBadNumber signals a numeric literal that does not fit in an int64.
	CondBadNumber
	// CondTypeError signals an operand of the wrong type.
	CondTypeError
	// CondArityError signals the wrong number of operands.
	CondArityError
	// CondEmptyList signals head or tail of an empty list.
	CondEmptyList
	// CondDivideByZero signals division or modulo by zero.
	CondDivideByZero
	// CondNotASymbol signals an expression whose operator is not a symbol.
	CondNotASymbol
	// CondUnknownFunction signals an operator naming no builtin.
	CondUnknownFunction
	// CondOverflow signals integer overflow.
	CondOverflow
	// CondDepthExceeded signals an expression nested deeper than the
	// configured maximum.
	CondDepthExceeded
	// CondContextCancelled signals that evaluation was cancelled.
	CondContextCancelled
	// CondBadSyntax signals source text or a syntax node that cannot be
	// read.
	CondBadSyntax
	// CondConfigError signals an invalid environment configuration.
	CondConfigError
)

var conditionStrings = []string{
	CondNone:             "none",
	CondBadNumber:        "bad-number",
	CondTypeError:        "type-error",
	CondArityError:       "arity-error",
	CondEmptyList:        "empty-list",
	CondDivideByZero:     "divide-by-zero",
	CondNotASymbol:       "not-a-symbol",
	CondUnknownFunction:  "unknown-function",
	CondOverflow:         "overflow",
	CondDepthExceeded:    "depth-exceeded",
	CondContextCancelled: "context-cancelled",
	CondBadSyntax:        "bad-syntax",
	CondConfigError:      "config-error",
}

func (c Condition) String() string {
	if int(c) >= len(conditionStrings) {
		return "invalid-condition"
	}
	return conditionStrings[c]
}

// ErrorVal implements the error interface so that errors can be first class
// lisp objects and be returned to Go callers.
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return fmt.Sprintf("%s: %s", e.Cond, e.Str)
}

// Condition returns the error condition name (e.g. "type-error").
func (e *ErrorVal) Condition() string {
	return e.Cond.String()
}

// ErrorMessage returns the underlying message in the error.
func (e *ErrorVal) ErrorMessage() string {
	return e.Str
}

// GoError returns an error that represents v.  If v is not LError then nil
// is returned.
func GoError(v *LVal) error {
	if v == nil || v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}
