// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"sync/atomic"
)

// Heap accounts for the allocation and release of values.  Every value
// created through a Heap, or adopted by one, is counted as live until it is
// released.  A Heap makes the single-owner discipline observable: after a
// top-level result is released the heap must report zero live values.
//
// A nil *Heap is valid.  Its constructors return untracked values.
type Heap struct {
	allocs atomic.Int64
	frees  atomic.Int64
}

// NewHeap returns a Heap with no live values.
func NewHeap() *Heap {
	return &Heap{}
}

// Allocs returns the number of values created or adopted by h.
func (h *Heap) Allocs() int64 {
	if h == nil {
		return 0
	}
	return h.allocs.Load()
}

// Frees returns the number of values belonging to h that were released.
func (h *Heap) Frees() int64 {
	if h == nil {
		return 0
	}
	return h.frees.Load()
}

// Live returns the number of values belonging to h that have not been
// released.
func (h *Heap) Live() int64 {
	return h.Allocs() - h.Frees()
}

func (h *Heap) String() string {
	return fmt.Sprintf("heap(allocs=%d frees=%d live=%d)", h.Allocs(), h.Frees(), h.Live())
}

func (h *Heap) track(v *LVal) *LVal {
	if h == nil {
		return v
	}
	v.heap = h
	h.allocs.Add(1)
	return v
}

// Adopt tracks every untracked value in the tree rooted at v and returns v.
// Values already belonging to a heap are left alone.
func (h *Heap) Adopt(v *LVal) *LVal {
	if h == nil {
		return v
	}
	if v.heap == nil && !v.released {
		h.track(v)
	}
	for _, c := range v.Cells {
		h.Adopt(c)
	}
	return v
}

// Int returns a tracked LInt.
func (h *Heap) Int(x int64) *LVal {
	return h.track(Int(x))
}

// Symbol returns a tracked LSymbol.
func (h *Heap) Symbol(s string) *LVal {
	return h.track(Symbol(s))
}

// SExpr returns a tracked empty LSExpr.
func (h *Heap) SExpr() *LVal {
	return h.track(SExpr())
}

// QExpr returns a tracked empty LQExpr.
func (h *Heap) QExpr() *LVal {
	return h.track(QExpr())
}

// Error returns a tracked LError.
func (h *Heap) Error(cond Condition, msg string) *LVal {
	return h.track(Error(cond, msg))
}

// Errorf returns a tracked LError with a formatted message.
func (h *Heap) Errorf(cond Condition, format string, v ...interface{}) *LVal {
	return h.track(Errorf(cond, format, v...))
}

// Release gives up ownership of v.  All cells still owned by v are released
// first.  Releasing a value twice is a programming error and panics.
func (v *LVal) Release() {
	if v.released {
		panic(fmt.Sprintf("lisp: %s value released twice", v.Type))
	}
	for _, c := range v.Cells {
		c.Release()
	}
	v.Cells = nil
	v.released = true
	if v.heap != nil {
		v.heap.frees.Add(1)
	}
}
