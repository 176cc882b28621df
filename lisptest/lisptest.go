// Copyright © 2018 The ELPS authors

// Package lisptest runs table driven lisp expression tests.
package lisptest

import (
	"io"
	"strings"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns an environment reading with the standard parser and
// accounting for values in a fresh heap.  Stderr is logged through t and
// flushed when the test completes.
func NewEnv(t testing.TB, config ...lisp.Config) (*lisp.LEnv, *Logger) {
	logger := NewLogger(t)
	t.Cleanup(logger.Flush)
	env := lisp.NewEnv()
	config = append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithHeap(lisp.NewHeap()),
		lisp.WithStderr(logger),
	}, config...)
	err := lisp.GoError(lisp.InitializeEnv(env, config...))
	if err != nil {
		t.Fatalf("failed to initialize lisp environment: %v", err)
	}
	return env, logger
}

// Eval reads and evaluates src in env, returning the rendered result.  The
// result is released.  Parse errors fail the test.
func Eval(t testing.TB, env *lisp.LEnv, src string) string {
	t.Helper()
	v, err := env.Read("test", strings.NewReader(src))
	if err != nil {
		t.Errorf("parse error: %v", err)
		return ""
	}
	r := env.Eval(v)
	s := r.String()
	r.Release()
	return s
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
// After every expression the environment heap must hold no live values.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Logf("test %d -- %s", i, test.Name)
		logger := NewLogger(t)
		heap := lisp.NewHeap()
		env := lisp.NewEnv()
		err := lisp.GoError(lisp.InitializeEnv(env,
			lisp.WithMaxDepth(10000),
			lisp.WithReader(parser.NewReader()),
			lisp.WithHeap(heap),
			lisp.WithStderr(logger),
		))
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			v, err := env.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			r := env.Eval(v)
			result := r.String()
			r.Release()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if heap.Live() != 0 {
				t.Errorf("test %d %q: expr %d: %d values not released (%s)", i, test.Name, j, heap.Live(), heap)
			}
		}
		logger.Flush()
	}
}

// RunBenchmark runs a standard benchmark that evaluates the expressions in
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	root, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env := lisp.NewEnv()
		err := lisp.GoError(lisp.InitializeEnv(env,
			lisp.WithReader(p),
			lisp.WithStderr(io.Discard),
		))
		if err != nil {
			b.Fatal(err)
		}
		v := lisp.Build(nil, root)
		b.StartTimer()
		r := env.Eval(v)
		b.StopTimer()
		if r.Type == lisp.LError {
			b.Fatalf("benchmark: %v", r)
		}
		r.Release()
	}
}
