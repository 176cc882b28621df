// Copyright © 2018 The ELPS authors

package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/lispy/lisp"
	"go.opencensus.io/trace"
)

var _ lisp.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

// NewOpenCensusAnnotator returns a lisp.Profiler which starts an OpenCensus
// span for every builtin call as a child of parentContext.
func NewOpenCensusAnnotator(parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &ocAnnotator{
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Start(name string) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, p.prettyFunName(name))
	p.currentSpan.AddAttributes(trace.StringAttribute(string(BuiltinAttributeKey), name))
	return func() {
		p.currentSpan.End()
		// And pop the current context back
		n := len(p.contexts) - 1
		p.currentContext = p.contexts[n]
		p.contexts = p.contexts[:n]
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
