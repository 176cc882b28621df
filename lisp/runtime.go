// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"io"
	"os"

	"github.com/luthersystems/lispy/parser/ast"
)

// Reader reads lisp source text into a syntax tree.  The root of the
// returned tree has kind ast.Root and holds every expression read.
type Reader interface {
	Read(name string, r io.Reader) (*ast.Node, error)
}

// Runtime is the shared state of an LEnv.
type Runtime struct {
	Stderr   io.Writer
	Reader   Reader
	Heap     *Heap
	Profiler Profiler

	// MaxDepth limits the nesting of S-expression reduction.  A value of
	// zero means unlimited.
	MaxDepth int

	ctx   context.Context
	depth int
}

// StandardRuntime returns a new Runtime with Stderr set to os.Stderr.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stderr: os.Stderr,
	}
}

// Depth returns the current S-expression nesting depth of evaluation.
func (r *Runtime) Depth() int {
	return r.depth
}
