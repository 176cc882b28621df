// Copyright © 2018 The ELPS authors

package lisp

// Profiler observes builtin calls made by an environment.
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session and flush any pending output
	Complete() error
	// Start marks the start of a call to the named builtin.  The returned
	// function marks the end of the call.
	Start(name string) func()
}
