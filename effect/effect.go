// Package effect provides a process-wide counter that observably
// side-effecting built-ins bump, so the #pure decorator (spec.md §4.3) can
// detect whether a function body it wraps performed any I/O without the
// evaluator and the builtin registry needing to share a richer interface.
package effect

import "sync/atomic"

var counter int64

// Mark records one observable side effect (print, file I/O and similar).
// Called by the builtins that perform them; channel send does not mark.
func Mark() { atomic.AddInt64(&counter, 1) }

// Snapshot returns the current count, comparable across a call to detect
// whether anything was marked in between.
func Snapshot() int64 { return atomic.LoadInt64(&counter) }
