// Copyright © 2018 The ELPS authors

// Package profiler provides lisp.Profiler implementations which annotate
// builtin calls with tracing spans.
package profiler

import (
	"fmt"

	"github.com/luthersystems/lispy/lisp"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

// SkipFilter returns true for builtin names which should not be traced.
type SkipFilter func(name string) bool

// FunLabeler returns the span label for a builtin name.  An empty label
// falls back to the builtin name.
type FunLabeler func(name string) string

type Option func(*profiler)

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithSkipBuiltins skips spans for the named builtins.  Aliases are resolved
// to their builtin.
func WithSkipBuiltins(names ...string) Option {
	skip := make(map[string]bool, len(names))
	for _, name := range names {
		if b, ok := lisp.LookupBuiltin(name); ok {
			skip[b.String()] = true
		}
	}
	return WithSkipFilter(func(name string) bool {
		return skip[name]
	})
}

// WithFunLabeler sets the function used to label spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// Complete has nothing to flush.  Spans end as each call returns.
func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(name string) func() {
	return func() {}
}

func (p *profiler) skipTrace(name string) bool {
	if !p.enabled {
		return true
	}
	return p.skipFilter != nil && p.skipFilter(name)
}

// prettyFunName returns the span label for a builtin name.
func (p *profiler) prettyFunName(name string) string {
	if p.funLabeler == nil {
		return name
	}
	label := p.funLabeler(name)
	if label == "" {
		return name
	}
	return label
}
