// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"strconv"

	"github.com/luthersystems/lispy/parser/ast"
)

// Append moves child onto the end of v and returns v.  The receiver must be
// a list (LSExpr or LQExpr).
func (v *LVal) Append(child *LVal) *LVal {
	if !v.IsList() {
		panic(fmt.Sprintf("lisp: append to non-list %s", v.Type))
	}
	v.Cells = append(v.Cells, child)
	return v
}

// Pop removes the cell at index i from v and returns it.  Subsequent cells
// shift left by one.  The caller becomes the owner of the returned value.
// An index out of range is a programming error and panics.
func (v *LVal) Pop(i int) *LVal {
	if i < 0 || i >= len(v.Cells) {
		panic(fmt.Sprintf("lisp: pop index %d out of range [0, %d)", i, len(v.Cells)))
	}
	x := v.Cells[i]
	copy(v.Cells[i:], v.Cells[i+1:])
	v.Cells[len(v.Cells)-1] = nil
	v.Cells = v.Cells[:len(v.Cells)-1]
	return x
}

// Take pops the cell at index i from v and releases v along with all of its
// remaining cells.
func (v *LVal) Take(i int) *LVal {
	x := v.Pop(i)
	v.Release()
	return x
}

// Join moves every cell of y onto the end of x, in order, and releases the
// emptied y.  The result is x and keeps its type.
func Join(x, y *LVal) *LVal {
	if !x.IsList() || !y.IsList() {
		panic(fmt.Sprintf("lisp: join of %s and %s", x.Type, y.Type))
	}
	x.Cells = append(x.Cells, y.Cells...)
	y.Cells = nil
	y.Release()
	return x
}

// Build converts the syntax tree rooted at n into a value tracked by h.
// Numeric literals which do not fit in an int64 produce a bad-number error
// value in place of the number.
func Build(h *Heap, n *ast.Node) *LVal {
	switch n.Kind {
	case ast.Number:
		return buildNumber(h, n.Text)
	case ast.Symbol:
		return h.Symbol(n.Text)
	}

	var x *LVal
	switch n.Kind {
	case ast.Root, ast.SExpr:
		x = h.SExpr()
	case ast.QExpr:
		x = h.QExpr()
	default:
		return h.Errorf(CondBadSyntax, "unexpected syntax node: %s", n.Kind)
	}
	for _, c := range n.Children {
		switch c.Kind {
		case ast.Delim, ast.Aux:
			continue
		}
		x.Append(Build(h, c))
	}
	return x
}

func buildNumber(h *Heap, text string) *LVal {
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return h.Error(CondBadNumber, "invalid number")
	}
	return h.Int(x)
}
