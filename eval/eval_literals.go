package eval

import (
	"strings"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

func (e *Evaluator) evalTemplateString(t *ast.TemplateString, fr *env.Frame) (value.Value, error) {
	var sb strings.Builder
	for _, part := range t.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Lit)
			continue
		}
		v, err := e.Eval(part.Expr, fr)
		if err != nil {
			return nil, err
		}
		sb.WriteString(v.String())
	}
	return &value.String{Value: sb.String()}, nil
}

func (e *Evaluator) evalListLit(n *ast.ListLit, fr *env.Frame) (value.Value, error) {
	elems := make([]value.Value, len(n.Items))
	for i, item := range n.Items {
		v, err := e.Eval(item, fr)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &value.List{Elements: elems}, nil
}

func (e *Evaluator) evalRecordLit(n *ast.RecordLit, fr *env.Frame) (value.Value, error) {
	rec := value.NewRecord()
	for _, entry := range n.Entries {
		v, err := e.Eval(entry.Value, fr)
		if err != nil {
			return nil, err
		}
		rec.Set(entry.Key, v)
	}
	return rec, nil
}
