package eval

import (
	"fmt"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/decorator"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// evalFunctionLit captures the defining frame into a closure and builds
// the decorator-wrapped call entry point once, up front, so repeated
// invocations don't re-apply decorators (§4.3 "Function definition").
// Decorator arguments are evaluated in the definition environment, and
// decorators wrap outermost-last: the first declared decorator ends up as
// the innermost wrapper around the raw call.
func (e *Evaluator) evalFunctionLit(n *ast.FunctionLit, fr *env.Frame) (value.Value, error) {
	fn := &value.Function{
		Name:        n.Name,
		Params:      n.Params,
		Body:        n.Body,
		Decorators:  n.Decorators,
		Attachments: n.Attachments,
		Closure:     fr,
	}

	wrapped := value.BuiltinFunc(func(args []value.Value) (value.Value, error) {
		return e.invoke(fn, args)
	})

	depth := 0
	for _, dec := range n.Decorators {
		applier, ok := decorator.Get(dec.Name)
		if !ok {
			return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "unknown decorator #%s", dec.Name)
		}
		declArgs := make([]value.Value, len(dec.Args))
		for i, a := range dec.Args {
			v, err := e.Eval(a, fr)
			if err != nil {
				return nil, err
			}
			declArgs[i] = v
		}
		info := decorator.Info{
			Name:       fn.CallableName(),
			Params:     paramNames(n.Params),
			TypeAnns:   paramTypeAnns(n.Params),
			ReturnType: n.TypeAnn,
			Registry:   e.Registry,
			Out:        e.Out,
			Depth:      &depth,
		}
		next, err := applier(declArgs, wrapped, info)
		if err != nil {
			return nil, err
		}
		wrapped = next
	}
	fn.SetCall(wrapped)
	return fn, nil
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func paramTypeAnns(params []ast.Param) []string {
	anns := make([]string, len(params))
	for i, p := range params {
		anns[i] = p.TypeAnn
	}
	return anns
}

// invoke runs the state machine of a call (§4.3) past decorator entry:
// parameter binding, attachment injection, body execution, return
// capture.
func (e *Evaluator) invoke(fn *value.Function, args []value.Value) (value.Value, error) {
	closureFrame, ok := fn.Closure.(*env.Frame)
	if !ok {
		return nil, fmt.Errorf("internal: function closure is not an *env.Frame")
	}
	callFrame := closureFrame.Child()

	if len(args) > len(fn.Params) {
		return nil, diagnostic.New(diagnostic.Runtime, 0, 0,
			"%s: expected at most %d arguments, got %d", fn.CallableName(), len(fn.Params), len(args)).WithCode(diagnostic.CodeArityMismatch)
	}
	for i, p := range fn.Params {
		var v value.Value
		switch {
		case i < len(args):
			v = args[i]
		case p.Default != nil:
			dv, err := e.Eval(p.Default, callFrame)
			if err != nil {
				return nil, err
			}
			v = dv
		default:
			return nil, diagnostic.New(diagnostic.Runtime, 0, 0,
				"%s: missing argument %q", fn.CallableName(), p.Name).WithCode(diagnostic.CodeArityMismatch)
		}
		if err := callFrame.Bind(p.Name, v, false); err != nil {
			return nil, err
		}
	}

	for _, name := range fn.Attachments {
		v, err := e.Registry.Resolve(name)
		if err != nil {
			return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "%v", err).WithCode(diagnostic.CodeUnknownContext)
		}
		if err := callFrame.Bind(name, v, false); err != nil {
			return nil, err
		}
	}

	return e.callBody(fn.Body, callFrame)
}
