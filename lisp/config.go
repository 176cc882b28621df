// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"io"
)

// Config is a function that configures an environment or its runtime.  A
// Config returns an LError to signal failure.
type Config func(env *LEnv) *LVal

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithHeap returns a Config that makes environments account for every value
// they build or synthesize in h.
func WithHeap(h *Heap) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Heap = h
		return nil
	}
}

// WithMaxDepth returns a Config that will prevent an environment from
// reducing S-expressions nested deeper than n.  A value of zero removes the
// limit.
func WithMaxDepth(n int) Config {
	return func(env *LEnv) *LVal {
		if n < 0 {
			return Errorf(CondConfigError, "negative maximum depth: %d", n)
		}
		env.Runtime.MaxDepth = n
		return nil
	}
}

// WithProfiler returns a Config that attaches p to the runtime.  The
// profiler is enabled if it is not already.
func WithProfiler(p Profiler) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Profiler = p
		if p.IsEnabled() {
			return nil
		}
		err := p.Enable()
		if err != nil {
			return Errorf(CondConfigError, "profiler: %v", err)
		}
		return nil
	}
}

// WithContext returns a Config that sets the context.Context used by Eval.
// The context is checked before each S-expression is reduced.  For per-call
// control use EvalContext instead.
func WithContext(ctx context.Context) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.ctx = ctx
		return nil
	}
}
