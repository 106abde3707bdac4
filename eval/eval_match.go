package eval

import (
	"fmt"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// evalMatch evaluates the scrutinee once and tests arms in declared
// order; the first pattern that matches and whose guard (if any) is
// truthy wins (§4.3).
func (e *Evaluator) evalMatch(n *ast.MatchExpr, fr *env.Frame) (value.Value, error) {
	scrutinee, err := e.Eval(n.Scrutinee, fr)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		armFrame := fr.Child()
		matched, err := e.matchPattern(arm.Pattern, scrutinee, armFrame)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		if arm.Guard != nil {
			g, err := e.Eval(arm.Guard, armFrame)
			if err != nil {
				return nil, err
			}
			if !value.Truthy(g) {
				continue
			}
		}
		return e.Eval(arm.Body, armFrame)
	}
	return nil, runtimeErr(n.Position(), diagnostic.CodeNoMatch, "no match arm matched value %s", scrutinee.String())
}

// matchPattern tests pat against v, binding any identifier/rest binders
// into fr on success. A partial match that binds some names before
// failing is harmless: armFrame is scoped to one arm attempt and discarded
// if the arm doesn't fire.
func (e *Evaluator) matchPattern(pat ast.Pattern, v value.Value, fr *env.Frame) (bool, error) {
	switch p := pat.(type) {
	case ast.WildcardPattern:
		return true, nil

	case ast.IdentPattern:
		if err := fr.Bind(p.Name, v, false); err != nil {
			return false, err
		}
		return true, nil

	case ast.LiteralPattern:
		lv, err := e.Eval(p.Value, fr)
		if err != nil {
			return false, err
		}
		return valuesEqual(lv, v), nil

	case ast.TypeTagPattern:
		return string(v.Kind()) == toKindName(p.Tag), nil

	case ast.ListPattern:
		list, ok := v.(*value.List)
		if !ok {
			return false, nil
		}
		if p.Rest == "" {
			if len(list.Elements) != len(p.Elements) {
				return false, nil
			}
		} else if len(list.Elements) < len(p.Elements) {
			return false, nil
		}
		for i, elemPat := range p.Elements {
			ok, err := e.matchPattern(elemPat, list.Elements[i], fr)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		if p.Rest != "" {
			rest := append([]value.Value{}, list.Elements[len(p.Elements):]...)
			if err := fr.Bind(p.Rest, &value.List{Elements: rest}, false); err != nil {
				return false, err
			}
		}
		return true, nil

	case ast.RecordPattern:
		rec, ok := v.(*value.Record)
		if !ok {
			return false, nil
		}
		matched := make(map[string]bool, len(p.Fields))
		for _, field := range p.Fields {
			fv, ok := rec.Get(field.Key)
			if !ok {
				return false, nil
			}
			ok2, err := e.matchPattern(field.Pattern, fv, fr)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
			matched[field.Key] = true
		}
		if p.Rest != "" {
			restRec := value.NewRecord()
			for _, k := range rec.Keys {
				if !matched[k] {
					rv, _ := rec.Get(k)
					restRec.Set(k, rv)
				}
			}
			if err := fr.Bind(p.Rest, restRec, false); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, fmt.Errorf("eval: unsupported pattern %T", pat)
}

// toKindName lowercases a type-tag pattern name to match value.Kind's
// string constants (Int -> "int", List -> "list", ...).
func toKindName(tag string) string {
	b := []byte(tag)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
