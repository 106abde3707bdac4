package eval

import (
	"fmt"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// execStatements runs a statement list in source order, returning the
// value of the last evaluated statement (Program/block "last expression
// wins" rule, §4.3), whether a ReturnStmt fired, and any error. Unscoped
// `provide NAME EXPR` statements (no trailing block) push onto the context
// stack for "the enclosing statement's remainder" by collecting their pop
// functions and running them in LIFO order when this statement list ends,
// on every exit path including an early return or error.
func (e *Evaluator) execStatements(stmts []ast.Stmt, fr *env.Frame) (value.Value, bool, error) {
	var pops []func()
	defer func() {
		for i := len(pops) - 1; i >= 0; i-- {
			pops[i]()
		}
	}()

	result := value.Value(value.TheNull)
	for _, stmt := range stmts {
		if ps, ok := stmt.(*ast.ProvideStmt); ok && ps.Scope == nil {
			v, err := e.Eval(ps.Value, fr)
			if err != nil {
				return nil, false, err
			}
			pop, err := e.Registry.Push(ps.Name, v)
			if err != nil {
				return nil, false, runtimeErr(ps.Position(), diagnostic.CodeUnknownContext, "%v", err)
			}
			pops = append(pops, pop)
			result = value.TheNull
			continue
		}
		v, isReturn, err := e.evalStmt(stmt, fr)
		if err != nil {
			return nil, false, err
		}
		result = v
		if isReturn {
			return result, true, nil
		}
	}
	return result, false, nil
}

func (e *Evaluator) evalStmt(stmt ast.Stmt, fr *env.Frame) (value.Value, bool, error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := e.Eval(s.Value, fr)
		if err != nil {
			return nil, false, err
		}
		if err := fr.Bind(s.Name, v, s.Mutable); err != nil {
			return nil, false, runtimeErr(s.Position(), diagnostic.CodeRebind, "%v", err)
		}
		return value.TheNull, false, nil

	case *ast.ExprStmt:
		v, err := e.Eval(s.Expression, fr)
		if err != nil {
			return nil, false, err
		}
		return v, false, nil

	case *ast.ContextDefStmt:
		def := value.Value(value.TheNull)
		if s.Default != nil {
			v, err := e.Eval(s.Default, fr)
			if err != nil {
				return nil, false, err
			}
			def = v
		}
		e.Registry.Define(s.Name, def)
		return value.TheNull, false, nil

	case *ast.ProvideStmt:
		// Scope != nil here; the unscoped form is handled in execStatements.
		v, err := e.Eval(s.Value, fr)
		if err != nil {
			return nil, false, err
		}
		pop, err := e.Registry.Push(s.Name, v)
		if err != nil {
			return nil, false, runtimeErr(s.Position(), diagnostic.CodeUnknownContext, "%v", err)
		}
		defer pop()
		result, _, err := e.execStatements(s.Scope.Statements, fr.Child())
		if err != nil {
			return nil, false, err
		}
		return result, false, nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return value.TheNull, true, nil
		}
		v, err := e.Eval(s.Value, fr)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	return nil, false, fmt.Errorf("eval: unsupported statement %T", stmt)
}

// callBody evaluates a function body, which is either a bare expression or
// a block; the block case discards the isReturn flag here since invoke
// already unwound past it — a return inside a block simply supplies the
// call's result.
func (e *Evaluator) callBody(body ast.Node, fr *env.Frame) (value.Value, error) {
	switch b := body.(type) {
	case *ast.BlockBody:
		v, _, err := e.execStatements(b.Statements, fr)
		return v, err
	case ast.Expr:
		return e.Eval(b, fr)
	}
	return nil, fmt.Errorf("eval: invalid function body %T", body)
}
