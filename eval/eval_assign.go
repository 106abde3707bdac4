package eval

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// evalAssign reassigns a `maybe`-bound name (§3.4). The assignment
// expression's value is the newly assigned value, matching C-family
// assignment-as-expression semantics the memoization testable scenario
// relies on (`calls = calls + 1` used as a statement, discarding its
// value).
func (e *Evaluator) evalAssign(n *ast.AssignExpr, fr *env.Frame) (value.Value, error) {
	id, ok := n.Target.(*ast.Identifier)
	if !ok {
		return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "invalid assignment target")
	}
	v, err := e.Eval(n.Value, fr)
	if err != nil {
		return nil, err
	}
	if err := fr.Assign(id.Name, v); err != nil {
		return nil, runtimeErr(n.Position(), diagnostic.CodeRebind, "%v", err)
	}
	return v, nil
}
