package eval

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

func (e *Evaluator) evalCall(n *ast.CallExpr, fr *env.Frame) (value.Value, error) {
	return e.evalCallExpr(n, fr, nil)
}

func isPlaceholderExpr(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Placeholder, *ast.InputRef:
		return true
	}
	return false
}

// evalCallExpr evaluates a call expression. When piped is non-nil, the
// first `_`/`input` placeholder among the arguments is substituted with
// *piped; if no placeholder is present, *piped is prepended as the first
// argument (§4.2 pipe rule (b)). When piped is nil, a placeholder appearing
// here is a use of `_`/`input` outside a pipe, which is a Runtime error.
func (e *Evaluator) evalCallExpr(call *ast.CallExpr, fr *env.Frame, piped *value.Value) (value.Value, error) {
	calleeVal, err := e.Eval(call.Callee, fr)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, 0, len(call.Args)+1)
	substituted := false
	for _, a := range call.Args {
		if isPlaceholderExpr(a) && !substituted {
			if piped == nil {
				return nil, runtimeErr(a.Position(), diagnostic.CodeTypeMismatch, "placeholder used outside a pipe")
			}
			args = append(args, *piped)
			substituted = true
			continue
		}
		v, err := e.Eval(a, fr)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if piped != nil && !substituted {
		args = append([]value.Value{*piped}, args...)
	}
	return e.callValue(calleeVal, args, call.Position())
}

func (e *Evaluator) callValue(callee value.Value, args []value.Value, pos ast.Pos) (value.Value, error) {
	if _, ok := callee.(value.Callable); !ok {
		return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "value of kind %s is not callable", callee.Kind())
	}
	result, err := value.Apply(callee, args)
	if err != nil {
		if d, ok := err.(*diagnostic.Diagnostic); ok {
			return nil, d
		}
		return nil, runtimeErr(pos, diagnostic.CodeArityMismatch, "%v", err)
	}
	return result, nil
}
