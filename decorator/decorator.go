// Package decorator implements Lea's built-in decorators (spec.md §4.3): a
// decorator is a function-to-function transform applied once at function
// definition time. Grounded on the registry idiom the retrieval pack's
// opal-lang-opal uses for its decorator set (a name -> transform map looked
// up by the evaluator at definition time) and on the teacher's std.Package
// registration pattern for the "register once, look up by name" shape.
package decorator

import (
	"fmt"
	"io"
	"os"

	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// ParallelLimitContext is the reserved context name #parallel(n) pushes a
// concurrency limit under; builtin map and flatMap resolve it via the
// same *env.Registry to decide how many workers to run (spec.md §4.5's
// "any map-shaped call ... with up to n concurrent workers").
const ParallelLimitContext = "__lea_parallel_limit__"

// Info carries the per-definition context a decorator needs beyond the
// wrapped call itself: the function's declared name (for #log/#trace/#time
// output), its parameter list (for #validate), the shared context registry
// (for #parallel), and the output sink diagnostics/logging decorators
// write to.
type Info struct {
	Name       string
	Params     []string
	TypeAnns   []string
	ReturnType string
	Registry   *env.Registry
	Out      io.Writer
	Depth    *int // shared call-depth counter for #trace
}

// Applier builds the wrapped call given the decorator's evaluated argument
// list and the call it wraps. Decorator arguments are evaluated once, in
// the function's definition environment, before Applier runs (spec.md
// §4.3: "argument list is itself parsed and evaluated in the definition
// environment").
type Applier func(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error)

var registry = map[string]Applier{
	"log":      applyLog,
	"memo":     applyMemo,
	"time":     applyTime,
	"retry":    applyRetry,
	"timeout":  applyTimeout,
	"validate": applyValidate,
	"pure":     applyPure,
	"async":    applyAsync,
	"trace":    applyTrace,
	"spawn":    applySpawn,
	"parallel": applyParallel,
}

// Get looks up a built-in decorator by name.
func Get(name string) (Applier, bool) {
	a, ok := registry[name]
	return a, ok
}

// DefaultOut is the fallback sink for #log/#time/#trace when the evaluator
// was not configured with an explicit writer.
var DefaultOut io.Writer = os.Stdout

func writer(info Info) io.Writer {
	if info.Out != nil {
		return info.Out
	}
	return DefaultOut
}

func logf(info Info, format string, args ...interface{}) {
	fmt.Fprintf(writer(info), format, args...)
}
