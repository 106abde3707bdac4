package eval

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// evalIdentifier resolves a name per §3.5's three-step order. Step 1
// (function-local `@Name` attachment) needs no special case here: an
// attachment is injected as a plain frame binding at call entry (see
// invoke in eval_function.go), so fr.LookUp already finds it before this
// function ever consults the registry. Steps 2-3 (context stack top, then
// declared default) are exactly env.Registry.Resolve.
func (e *Evaluator) evalIdentifier(id *ast.Identifier, fr *env.Frame) (value.Value, error) {
	if v, ok := fr.LookUp(id.Name); ok {
		return v, nil
	}
	if e.Registry.Defined(id.Name) {
		v, err := e.Registry.Resolve(id.Name)
		if err != nil {
			return nil, runtimeErr(id.Position(), diagnostic.CodeUnknownContext, "%v", err)
		}
		return v, nil
	}
	if b, ok := e.Builtins[id.Name]; ok {
		return b, nil
	}
	return nil, runtimeErr(id.Position(), diagnostic.CodeUndefinedName, "undefined name %q", id.Name)
}
