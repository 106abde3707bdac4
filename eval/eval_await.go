package eval

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

func (e *Evaluator) evalAwait(n *ast.AwaitExpr, fr *env.Frame) (value.Value, error) {
	v, err := e.Eval(n.Inner, fr)
	if err != nil {
		return nil, err
	}
	return e.maybeAwait(v)
}

// maybeAwait implicitly awaits v if it is a Promise (§4.3), otherwise
// returns it unchanged. Shared by AwaitExpr and the `/>` family's
// promise-aware left-operand rule (§4.2).
func (e *Evaluator) maybeAwait(v value.Value) (value.Value, error) {
	p, ok := v.(*value.Promise)
	if !ok {
		return v, nil
	}
	result, err := p.Await()
	if err != nil {
		if d, ok := err.(*diagnostic.Diagnostic); ok {
			return nil, d
		}
		return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "%v", err).WithCode(diagnostic.CodeAsyncRejection)
	}
	return result, nil
}
