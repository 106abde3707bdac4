// Package eval implements Lea's tree-walking evaluator (spec.md §4.3).
// Grounded on the teacher's eval/evaluator.go + eval_*.go split — one file
// per node family — and on its functional-options constructor idiom where
// the teacher has one (the evaluator takes eval.Option rather than a
// config struct, since the teacher has no config layer beyond constructor
// parameters; the builtin registry takes only the context registry).
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/builtin"
	"github.com/leadotlang/lea/decorator"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// Evaluator walks a parsed Program, holding the process-scoped context
// registry (§3.5) and built-in registry (§4.5) that every call and pipe
// dispatch shares.
type Evaluator struct {
	Registry *env.Registry
	Builtins map[string]*value.Builtin
	Out      io.Writer
	Global   *env.Frame
	depth    int
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithOutput redirects #log/#time/#trace and the `print` builtin to w
// instead of os.Stdout — used by the REPL and by tests that capture
// output.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.Out = w }
}

// New builds an Evaluator with a fresh global frame, context registry, and
// the full built-in library registered.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		Registry: env.NewRegistry(),
		Out:      os.Stdout,
		Global:   env.New(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Registry.Define(decorator.ParallelLimitContext, value.TheNull)
	decorator.DefaultOut = e.Out
	builtin.SetOutput(e.Out)
	e.Builtins = builtin.NewRegistry(e.Registry)
	return e
}

// Run evaluates an already-parsed Program against the evaluator's global
// frame, returning the value of the final top-level expression (or Null)
// plus any diagnostic raised (spec.md §6 `lea.Run`).
func (e *Evaluator) Run(prog *ast.Program) (value.Value, *diagnostic.Diagnostic) {
	val, _, err := e.execStatements(prog.Statements, e.Global)
	if err != nil {
		return value.TheNull, toDiagnostic(err)
	}
	return val, nil
}

// Eval evaluates a single expression node against fr, the dispatcher every
// eval_*.go file's handlers are reached through.
func (e *Evaluator) Eval(expr ast.Expr, fr *env.Frame) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.NumberLit:
		return e.evalNumberLit(n)
	case *ast.StringLit:
		return &value.String{Value: n.Value}, nil
	case *ast.BoolLit:
		return &value.Bool{Value: n.Value}, nil
	case *ast.NullLit:
		return value.TheNull, nil
	case *ast.Placeholder:
		return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "placeholder `_` used outside a pipe/call argument position")
	case *ast.InputRef:
		return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "`input` used outside a pipe/call argument position")
	case *ast.TemplateString:
		return e.evalTemplateString(n, fr)
	case *ast.ListLit:
		return e.evalListLit(n, fr)
	case *ast.RecordLit:
		return e.evalRecordLit(n, fr)
	case *ast.Identifier:
		return e.evalIdentifier(n, fr)
	case *ast.UnaryExpr:
		return e.evalUnary(n, fr)
	case *ast.BinaryExpr:
		return e.evalBinary(n, fr)
	case *ast.TernaryExpr:
		return e.evalTernary(n, fr)
	case *ast.AssignExpr:
		return e.evalAssign(n, fr)
	case *ast.FunctionLit:
		return e.evalFunctionLit(n, fr)
	case *ast.CallExpr:
		return e.evalCall(n, fr)
	case *ast.PipeExpr:
		return e.evalPipe(n, fr)
	case *ast.FanOutExpr:
		return e.evalFanOut(n, fr)
	case *ast.IndexExpr:
		return e.evalIndex(n, fr)
	case *ast.MemberExpr:
		return e.evalMember(n, fr)
	case *ast.AwaitExpr:
		return e.evalAwait(n, fr)
	case *ast.MatchExpr:
		return e.evalMatch(n, fr)
	}
	return nil, fmt.Errorf("eval: unsupported expression %T", expr)
}

func (e *Evaluator) evalNumberLit(n *ast.NumberLit) (value.Value, error) {
	if n.IsFloat {
		return &value.Float{Value: n.Float}, nil
	}
	return &value.Int{Value: n.Int}, nil
}

func runtimeErr(pos ast.Pos, code, format string, args ...interface{}) error {
	return diagnostic.New(diagnostic.Runtime, pos.Line, pos.Column, format, args...).WithCode(code)
}

// toDiagnostic normalizes any error surfaced from Eval into a Diagnostic:
// errors already in that shape (from decorators, runtimeErr, or the
// builtin registry) pass through; anything else becomes an uncoded
// Runtime diagnostic (spec.md §7: "an uncaught Runtime error at the top
// level is emitted as a diagnostic").
func toDiagnostic(err error) *diagnostic.Diagnostic {
	if d, ok := err.(*diagnostic.Diagnostic); ok {
		return d
	}
	return diagnostic.New(diagnostic.Runtime, 0, 0, "%v", err)
}
