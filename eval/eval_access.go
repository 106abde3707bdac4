package eval

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

func (e *Evaluator) evalMember(n *ast.MemberExpr, fr *env.Frame) (value.Value, error) {
	target, err := e.Eval(n.Target, fr)
	if err != nil {
		return nil, err
	}
	rec, ok := target.(*value.Record)
	if !ok {
		return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "cannot access member %q on %s", n.Name, target.Kind())
	}
	v, ok := rec.Get(n.Name)
	if !ok {
		return nil, runtimeErr(n.Position(), diagnostic.CodeUndefinedName, "record has no field %q", n.Name)
	}
	return v, nil
}

func (e *Evaluator) evalIndex(n *ast.IndexExpr, fr *env.Frame) (value.Value, error) {
	target, err := e.Eval(n.Target, fr)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index, fr)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *value.List:
		i, ok := idx.(*value.Int)
		if !ok {
			return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "list index must be an int, got %s", idx.Kind())
		}
		pos := int(i.Value)
		if pos < 0 {
			pos += len(t.Elements)
		}
		if pos < 0 || pos >= len(t.Elements) {
			return nil, runtimeErr(n.Position(), diagnostic.CodeBadIndex, "index %d out of range for list of length %d", i.Value, len(t.Elements))
		}
		return t.Elements[pos], nil
	case *value.Record:
		key, ok := idx.(*value.String)
		if !ok {
			return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "record index must be a string, got %s", idx.Kind())
		}
		v, ok := t.Get(key.Value)
		if !ok {
			return nil, runtimeErr(n.Position(), diagnostic.CodeBadIndex, "record has no key %q", key.Value)
		}
		return v, nil
	case *value.String:
		i, ok := idx.(*value.Int)
		if !ok {
			return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "string index must be an int, got %s", idx.Kind())
		}
		runes := []rune(t.Value)
		pos := int(i.Value)
		if pos < 0 {
			pos += len(runes)
		}
		if pos < 0 || pos >= len(runes) {
			return nil, runtimeErr(n.Position(), diagnostic.CodeBadIndex, "index %d out of range for string of length %d", i.Value, len(runes))
		}
		return &value.String{Value: string(runes[pos])}, nil
	}
	return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "cannot index into %s", target.Kind())
}
