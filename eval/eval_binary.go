package eval

import (
	"math"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/token"
	"github.com/leadotlang/lea/value"
)

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, fr *env.Frame) (value.Value, error) {
	v, err := e.Eval(n.Operand, fr)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.MINUS:
		switch t := v.(type) {
		case *value.Int:
			return &value.Int{Value: -t.Value}, nil
		case *value.Float:
			return &value.Float{Value: -t.Value}, nil
		}
		return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "unary - expects a number, got %s", v.Kind())
	case token.NOT:
		return &value.Bool{Value: !value.Truthy(v)}, nil
	}
	return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "unsupported unary operator %s", n.Op)
}

func (e *Evaluator) evalTernary(n *ast.TernaryExpr, fr *env.Frame) (value.Value, error) {
	cond, err := e.Eval(n.Cond, fr)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return e.Eval(n.Then, fr)
	}
	return e.Eval(n.Else, fr)
}

// evalBinary evaluates operands left-to-right (§4.3) with numeric
// promotion, short-circuiting `and`/`or`/`??` before the right operand is
// ever touched.
func (e *Evaluator) evalBinary(n *ast.BinaryExpr, fr *env.Frame) (value.Value, error) {
	switch n.Op {
	case token.AND, token.OR:
		left, err := e.Eval(n.Left, fr)
		if err != nil {
			return nil, err
		}
		truthy := value.Truthy(left)
		if (n.Op == token.AND && !truthy) || (n.Op == token.OR && truthy) {
			return left, nil
		}
		return e.Eval(n.Right, fr)
	case token.NULLCO:
		left, err := e.Eval(n.Left, fr)
		if err != nil {
			return nil, err
		}
		if _, isNull := left.(*value.Null); !isNull {
			return left, nil
		}
		return e.Eval(n.Right, fr)
	}

	left, err := e.Eval(n.Left, fr)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, fr)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.DIVINT, token.MODKW:
		return arithValues(n.Op, left, right, n.Position())
	case token.CONCAT:
		return concatValues(left, right, n.Position())
	case token.RANGE:
		return rangeValues(left, right, n.Position())
	case token.EQ:
		return &value.Bool{Value: valuesEqual(left, right)}, nil
	case token.NEQ:
		return &value.Bool{Value: !valuesEqual(left, right)}, nil
	case token.LT, token.GT, token.LE, token.GE:
		return compareValues(n.Op, left, right, n.Position())
	}
	return nil, runtimeErr(n.Position(), diagnostic.CodeTypeMismatch, "unsupported operator %s", n.Op)
}

func asFloat(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case *value.Int:
		return float64(t.Value), true
	case *value.Float:
		return t.Value, true
	}
	return 0, false
}

func arithValues(op token.Kind, l, r value.Value, pos ast.Pos) (value.Value, error) {
	li, lIsInt := l.(*value.Int)
	ri, rIsInt := r.(*value.Int)
	bothInt := lIsInt && rIsInt
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "operator %s expects numbers, got %s and %s", op, l.Kind(), r.Kind())
	}

	switch op {
	case token.PLUS:
		if bothInt {
			return &value.Int{Value: li.Value + ri.Value}, nil
		}
		return &value.Float{Value: lf + rf}, nil
	case token.MINUS:
		if bothInt {
			return &value.Int{Value: li.Value - ri.Value}, nil
		}
		return &value.Float{Value: lf - rf}, nil
	case token.STAR:
		if bothInt {
			return &value.Int{Value: li.Value * ri.Value}, nil
		}
		return &value.Float{Value: lf * rf}, nil
	case token.SLASH:
		if rf == 0 {
			return nil, runtimeErr(pos, diagnostic.CodeDivisionByZero, "division by zero")
		}
		return &value.Float{Value: lf / rf}, nil
	case token.PERCENT, token.MODKW:
		if rf == 0 {
			return nil, runtimeErr(pos, diagnostic.CodeDivisionByZero, "division by zero")
		}
		if bothInt {
			return &value.Int{Value: li.Value % ri.Value}, nil
		}
		return &value.Float{Value: math.Mod(lf, rf)}, nil
	case token.DIVINT:
		if rf == 0 {
			return nil, runtimeErr(pos, diagnostic.CodeDivisionByZero, "division by zero")
		}
		return &value.Int{Value: int64(lf) / int64(rf)}, nil
	}
	return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "unsupported arithmetic operator %s", op)
}

func concatValues(l, r value.Value, pos ast.Pos) (value.Value, error) {
	switch lt := l.(type) {
	case *value.String:
		rt, ok := r.(*value.String)
		if !ok {
			return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "++ expects two strings or two lists")
		}
		return &value.String{Value: lt.Value + rt.Value}, nil
	case *value.List:
		rt, ok := r.(*value.List)
		if !ok {
			return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "++ expects two strings or two lists")
		}
		combined := make([]value.Value, 0, len(lt.Elements)+len(rt.Elements))
		combined = append(combined, lt.Elements...)
		combined = append(combined, rt.Elements...)
		return &value.List{Elements: combined}, nil
	}
	return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "++ expects two strings or two lists")
}

func rangeValues(l, r value.Value, pos ast.Pos) (value.Value, error) {
	li, ok1 := l.(*value.Int)
	ri, ok2 := r.(*value.Int)
	if !ok1 || !ok2 {
		return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, ".. expects two ints")
	}
	var elems []value.Value
	if li.Value <= ri.Value {
		for i := li.Value; i <= ri.Value; i++ {
			elems = append(elems, &value.Int{Value: i})
		}
	} else {
		for i := li.Value; i >= ri.Value; i-- {
			elems = append(elems, &value.Int{Value: i})
		}
	}
	return &value.List{Elements: elems}, nil
}

func compareValues(op token.Kind, l, r value.Value, pos ast.Pos) (value.Value, error) {
	if ls, ok := l.(*value.String); ok {
		rs, ok2 := r.(*value.String)
		if !ok2 {
			return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "cannot compare %s with %s", l.Kind(), r.Kind())
		}
		return &value.Bool{Value: compareStrings(op, ls.Value, rs.Value)}, nil
	}
	lf, ok := asFloat(l)
	rf, ok2 := asFloat(r)
	if !ok || !ok2 {
		return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "cannot compare %s with %s", l.Kind(), r.Kind())
	}
	switch op {
	case token.LT:
		return &value.Bool{Value: lf < rf}, nil
	case token.GT:
		return &value.Bool{Value: lf > rf}, nil
	case token.LE:
		return &value.Bool{Value: lf <= rf}, nil
	case token.GE:
		return &value.Bool{Value: lf >= rf}, nil
	}
	return nil, runtimeErr(pos, diagnostic.CodeTypeMismatch, "unsupported comparison operator %s", op)
}

func compareStrings(op token.Kind, l, r string) bool {
	switch op {
	case token.LT:
		return l < r
	case token.GT:
		return l > r
	case token.LE:
		return l <= r
	case token.GE:
		return l >= r
	}
	return false
}

func valuesEqual(l, r value.Value) bool {
	switch lt := l.(type) {
	case *value.Int:
		switch rt := r.(type) {
		case *value.Int:
			return lt.Value == rt.Value
		case *value.Float:
			return float64(lt.Value) == rt.Value
		}
		return false
	case *value.Float:
		switch rt := r.(type) {
		case *value.Int:
			return lt.Value == float64(rt.Value)
		case *value.Float:
			return lt.Value == rt.Value
		}
		return false
	case *value.String:
		rt, ok := r.(*value.String)
		return ok && lt.Value == rt.Value
	case *value.Bool:
		rt, ok := r.(*value.Bool)
		return ok && lt.Value == rt.Value
	case *value.Null:
		_, ok := r.(*value.Null)
		return ok
	}
	return l == r
}
