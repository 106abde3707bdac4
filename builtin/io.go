package builtin

import (
	"fmt"
	"io"

	"github.com/leadotlang/lea/effect"
	"github.com/leadotlang/lea/value"
)

// ioBuiltins implements `print` (spec.md §4.5: "print returns its first
// argument, enabling value /> print /> continueChain"). Grounded on the
// teacher's std/io.go Builtin{Name, Callback} shape, here writing to the
// package-level sink set by SetOutput instead of taking a writer per call.
func ioBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("print", 1, -1, func(args []value.Value) (value.Value, error) {
			effect.Mark()
			parts := make([]interface{}, len(args))
			for i, a := range args {
				parts[i] = a.String()
			}
			fmt.Fprintln(defaultOut, parts...)
			return args[0], nil
		}),
	}
}

// defaultOut is where print writes. It discards output until SetOutput is
// called; eval.New always calls SetOutput with the evaluator's writer
// (os.Stdout unless WithOutput supplies another).
var defaultOut io.Writer = io.Discard

// SetOutput redirects `print` to w.
func SetOutput(w io.Writer) { defaultOut = w }
