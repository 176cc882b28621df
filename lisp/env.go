// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LEnv is an evaluation environment.  The language has no bindings so an
// LEnv only carries its Runtime.  An LEnv must not be used by multiple
// goroutines concurrently.
type LEnv struct {
	Runtime *Runtime
}

// NewEnv returns a new LEnv with a standard runtime.
func NewEnv() *LEnv {
	return NewEnvRuntime(nil)
}

// NewEnvRuntime returns a new LEnv using rt.  A nil rt is replaced by
// StandardRuntime().
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{Runtime: rt}
}

// InitializeEnv applies config to env in order.  The first LError returned
// by a Config is returned, otherwise nil.
func InitializeEnv(env *LEnv, config ...Config) *LVal {
	for _, fn := range config {
		lerr := fn(env)
		if GoError(lerr) != nil {
			return lerr
		}
	}
	return nil
}

func (env *LEnv) heap() *Heap {
	return env.Runtime.Heap
}

// Read parses source text from r using the runtime Reader and builds the
// root expression, an LSExpr holding every expression read.
func (env *LEnv) Read(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, errors.New("no reader for the environment runtime")
	}
	root, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return Build(env.heap(), root), nil
}

// EvalString reads, builds and evaluates the source text src.  Reader
// failures are returned as bad-syntax errors.
func (env *LEnv) EvalString(name string, src string) *LVal {
	v, err := env.Read(name, strings.NewReader(src))
	if err != nil {
		return env.heap().Errorf(CondBadSyntax, "%v", err)
	}
	return env.Eval(v)
}

// EvalContext evaluates v, checking ctx before each S-expression is reduced.
func (env *LEnv) EvalContext(ctx context.Context, v *LVal) *LVal {
	prev := env.Runtime.ctx
	env.Runtime.ctx = ctx
	defer func() { env.Runtime.ctx = prev }()
	return env.Eval(v)
}

// Eval evaluates v and returns the result.  Eval takes ownership of v: the
// caller must not use v afterwards and owns the returned value instead.
// Values other than S-expressions evaluate to themselves.
func (env *LEnv) Eval(v *LVal) *LVal {
	if v.Type != LSExpr {
		return v
	}
	return env.evalSExpr(v)
}

func (env *LEnv) evalSExpr(v *LVal) *LVal {
	rt := env.Runtime
	if rt.MaxDepth > 0 && rt.depth >= rt.MaxDepth {
		v.Release()
		return env.heap().Errorf(CondDepthExceeded, "maximum expression depth exceeded (%d)", rt.MaxDepth)
	}
	if rt.ctx != nil {
		if err := rt.ctx.Err(); err != nil {
			v.Release()
			return env.heap().Errorf(CondContextCancelled, "evaluation interrupted: %v", err)
		}
	}
	rt.depth++
	defer func() { rt.depth-- }()

	for i, c := range v.Cells {
		v.Cells[i] = env.Eval(c)
	}
	for i, c := range v.Cells {
		if c.Type == LError {
			return v.Take(i)
		}
	}

	switch len(v.Cells) {
	case 0:
		return v
	case 1:
		return v.Take(0)
	}

	f := v.Pop(0)
	if f.Type != LSymbol {
		f.Release()
		v.Release()
		return env.heap().Error(CondNotASymbol, "S-expression does not start with symbol")
	}
	r := env.call(f.Str, v)
	f.Release()
	return r
}

// call dispatches the operand container args to the builtin named by name.
// The builtin takes ownership of args.
func (env *LEnv) call(name string, args *LVal) *LVal {
	b, ok := LookupBuiltin(name)
	if !ok {
		args.Release()
		return env.heap().Errorf(CondUnknownFunction, "Unknown function '%s'", name)
	}
	if p := env.Runtime.Profiler; p != nil && p.IsEnabled() {
		defer p.Start(b.String())()
	}
	return env.Apply(b, args)
}

// Errorf returns an LError tracked by the environment's heap.
func (env *LEnv) Errorf(cond Condition, format string, v ...interface{}) *LVal {
	return env.heap().Errorf(cond, format, v...)
}

func (env *LEnv) String() string {
	return fmt.Sprintf("env(depth=%d %s)", env.Runtime.depth, env.heap())
}
