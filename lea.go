// Package lea implements the Lea scripting language: lexer, parser, and
// tree-walk evaluator for a small pipe-oriented, mostly-functional
// language (spec.md §1). This file is the package's public entry point,
// grounded on the teacher's main.go run-a-source-file convenience
// wrapper (Lex -> Parse -> Eval, collecting diagnostics at each stage).
package lea

import (
	"io"
	"os"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/eval"
	"github.com/leadotlang/lea/lexer"
	"github.com/leadotlang/lea/parser"
	"github.com/leadotlang/lea/token"
	"github.com/leadotlang/lea/value"
)

// Lex tokenizes source, returning every diagnostic the lexer accumulates
// rather than stopping at the first one (spec.md §6).
func Lex(source string) ([]token.Token, []*diagnostic.Diagnostic) {
	return lexer.Lex(source)
}

// Parse builds a Program from source. Lexer diagnostics are returned
// alongside parser diagnostics so callers see the whole picture.
func Parse(source string) (*ast.Program, []*diagnostic.Diagnostic) {
	return parser.Parse(source)
}

// RunOption configures an Evaluate/Run call.
type RunOption = eval.Option

// WithOutput redirects the program's `print` output and decorator
// logging (#log, #time, #trace) to w.
func WithOutput(w io.Writer) RunOption { return eval.WithOutput(w) }

// Evaluate runs an already-parsed Program and returns its final value.
// A fresh Evaluator (and so a fresh global frame and context registry)
// is created for each call; use NewEvaluator directly to reuse state
// across multiple Evaluate calls (e.g. a REPL).
func Evaluate(prog *ast.Program, opts ...RunOption) (value.Value, *diagnostic.Diagnostic) {
	e := eval.New(opts...)
	return e.Run(prog)
}

// NewEvaluator exposes the underlying evaluator for callers (the REPL)
// that need to evaluate multiple programs against one persistent global
// frame and context registry.
func NewEvaluator(opts ...RunOption) *eval.Evaluator {
	return eval.New(opts...)
}

// Frame re-exports env.Frame for callers building host bindings.
type Frame = env.Frame

// Run lexes, parses, and evaluates source in one call. It stops and
// returns at the first stage that produces diagnostics.
func Run(source string, opts ...RunOption) (value.Value, []*diagnostic.Diagnostic) {
	prog, diags := Parse(source)
	if len(diags) > 0 {
		return value.TheNull, diags
	}
	val, err := Evaluate(prog, opts...)
	if err != nil {
		return value.TheNull, []*diagnostic.Diagnostic{err}
	}
	return val, nil
}

// RunFile reads path and runs it, writing output to os.Stdout.
func RunFile(path string) (value.Value, []*diagnostic.Diagnostic) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return value.TheNull, []*diagnostic.Diagnostic{
			diagnostic.New(diagnostic.Runtime, 0, 0, "%v", readErr),
		}
	}
	return Run(string(data), WithOutput(os.Stdout))
}
