package eval

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/concurrent"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// evalPipe dispatches the six pipe-family operators (§4.2). `\>` fan-out
// is parsed into a separate FanOutExpr node (consecutive `\>` stages
// grouped by the parser) rather than PipeExpr, and is handled by
// evalFanOut/fanOutResults below; a PipeForward whose left is a FanOutExpr
// additionally destructures the fan-out's results as positional arguments
// to the right side, per §4.2's fan-in rule.
func (e *Evaluator) evalPipe(n *ast.PipeExpr, fr *env.Frame) (value.Value, error) {
	if n.Kind == ast.PipeReverse {
		rv, err := e.Eval(n.Right, fr)
		if err != nil {
			return nil, err
		}
		rv, err = e.maybeAwait(rv)
		if err != nil {
			return nil, err
		}
		return e.pipeForward(rv, n.Left, fr)
	}

	if n.Kind == ast.PipeForward {
		if fanOut, ok := n.Left.(*ast.FanOutExpr); ok {
			elems, err := e.fanOutResults(fanOut, fr)
			if err != nil {
				return nil, err
			}
			return e.pipeForwardMulti(elems, n.Right, fr)
		}
	}

	left, err := e.Eval(n.Left, fr)
	if err != nil {
		return nil, err
	}
	if n.Kind != ast.PipeCompose {
		left, err = e.maybeAwait(left)
		if err != nil {
			return nil, err
		}
	}

	switch n.Kind {
	case ast.PipeForward:
		return e.pipeForward(left, n.Right, fr)
	case ast.PipeSpread:
		return e.pipeSpread(left, n.Right, fr)
	case ast.PipeCompose:
		return e.pipeCompose(left, n.Right, fr)
	case ast.PipeTap:
		return e.pipeTap(left, n.Right, fr)
	}
	return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "unsupported pipe kind %s", n.Kind)
}

// pipeForward implements rule (a)/(b)/(c) of §4.2 for a single piped
// value: an identifier or function literal on the right is called with
// the piped value as its sole argument; a call expression substitutes the
// piped value at a placeholder, or prepends it if none is present.
func (e *Evaluator) pipeForward(piped value.Value, right ast.Expr, fr *env.Frame) (value.Value, error) {
	if call, ok := right.(*ast.CallExpr); ok {
		return e.evalCallExpr(call, fr, &piped)
	}
	callee, err := e.Eval(right, fr)
	if err != nil {
		return nil, err
	}
	return e.callValue(callee, []value.Value{piped}, right.Position())
}

// pipeForwardMulti is pipeForward's fan-in counterpart: elems are applied
// as separate positional arguments instead of being wrapped into one.
func (e *Evaluator) pipeForwardMulti(elems []value.Value, right ast.Expr, fr *env.Frame) (value.Value, error) {
	if call, ok := right.(*ast.CallExpr); ok {
		calleeVal, err := e.Eval(call.Callee, fr)
		if err != nil {
			return nil, err
		}
		args := make([]value.Value, 0, len(call.Args)+len(elems))
		substituted := false
		for _, a := range call.Args {
			if isPlaceholderExpr(a) && !substituted {
				args = append(args, elems...)
				substituted = true
				continue
			}
			v, err := e.Eval(a, fr)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		if !substituted {
			full := make([]value.Value, 0, len(elems)+len(args))
			full = append(full, elems...)
			full = append(full, args...)
			args = full
		}
		return e.callValue(calleeVal, args, call.Position())
	}
	callee, err := e.Eval(right, fr)
	if err != nil {
		return nil, err
	}
	return e.callValue(callee, elems, right.Position())
}

func (e *Evaluator) pipeSpread(left value.Value, right ast.Expr, fr *env.Frame) (value.Value, error) {
	list, ok := left.(*value.List)
	if !ok {
		return nil, runtimeErr(right.Position(), diagnostic.CodeTypeMismatch, "/>>> expects a list on the left")
	}
	results := make([]value.Value, len(list.Elements))
	for i, el := range list.Elements {
		v, err := e.pipeForward(el, right, fr)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return &value.List{Elements: results}, nil
}

// pipeCompose builds an opaque Pipeline without invoking either side,
// flattening a left-associative chain of `</>` into one Pipeline rather
// than nesting pipelines of pipelines.
func (e *Evaluator) pipeCompose(left value.Value, right ast.Expr, fr *env.Frame) (value.Value, error) {
	rv, err := e.Eval(right, fr)
	if err != nil {
		return nil, err
	}
	if p, ok := left.(*value.Pipeline); ok {
		stages := append(append([]value.Value{}, p.Stages...), rv)
		return &value.Pipeline{Stages: stages}, nil
	}
	return &value.Pipeline{Stages: []value.Value{left, rv}}, nil
}

func (e *Evaluator) pipeTap(left value.Value, right ast.Expr, fr *env.Frame) (value.Value, error) {
	if _, err := e.pipeForward(left, right, fr); err != nil {
		return nil, err
	}
	return left, nil
}

// fanOutResults evaluates a FanOutExpr's input once and runs its stages
// concurrently (§5: "launched in syntactic order; completion order is
// non-deterministic; the resulting list preserves syntactic order").
func (e *Evaluator) fanOutResults(n *ast.FanOutExpr, fr *env.Frame) ([]value.Value, error) {
	input, err := e.Eval(n.Input, fr)
	if err != nil {
		return nil, err
	}
	input, err = e.maybeAwait(input)
	if err != nil {
		return nil, err
	}
	stages := make([]value.Value, len(n.Stages))
	for i, s := range n.Stages {
		v, err := e.Eval(s, fr)
		if err != nil {
			return nil, err
		}
		stages[i] = v
	}
	return concurrent.FanOut(input, stages)
}

func (e *Evaluator) evalFanOut(n *ast.FanOutExpr, fr *env.Frame) (value.Value, error) {
	results, err := e.fanOutResults(n, fr)
	if err != nil {
		return nil, err
	}
	return &value.List{Elements: results}, nil
}
