package parser

import (
	"testing"

	"github.com/leadotlang/lea/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, diags := Parse(src)
	require.Empty(t, diags, "unexpected diagnostics: %v", diags)
	return prog
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3")
	require.Len(t, prog.Statements, 1)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	bin := stmt.Expression.(*ast.BinaryExpr)
	assert.Equal(t, "+", string(bin.Op))
	right := bin.Right.(*ast.BinaryExpr)
	assert.Equal(t, "*", string(right.Op))
}

func TestParse_LetAndMaybe(t *testing.T) {
	prog := parseOK(t, "let x = 1\nmaybe y = 2")
	require.Len(t, prog.Statements, 2)
	let := prog.Statements[0].(*ast.LetStmt)
	assert.False(t, let.Mutable)
	assert.Equal(t, "x", let.Name)
	may := prog.Statements[1].(*ast.LetStmt)
	assert.True(t, may.Mutable)
}

func TestParse_PipeForwardChain(t *testing.T) {
	prog := parseOK(t, "5 /> double /> triple")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	outer := stmt.Expression.(*ast.PipeExpr)
	assert.Equal(t, ast.PipeForward, outer.Kind)
	inner := outer.Left.(*ast.PipeExpr)
	assert.Equal(t, ast.PipeForward, inner.Kind)
	assert.IsType(t, &ast.NumberLit{}, inner.Left)
}

func TestParse_FanOutGroupsConsecutiveStages(t *testing.T) {
	prog := parseOK(t, "5 \\> (x)->x+1 \\> (x)->x*2 /> (a,b)->a+b")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	outer := stmt.Expression.(*ast.PipeExpr)
	assert.Equal(t, ast.PipeForward, outer.Kind)
	fanOut := outer.Left.(*ast.FanOutExpr)
	assert.Len(t, fanOut.Stages, 2)
	assert.IsType(t, &ast.NumberLit{}, fanOut.Input)
}

func TestParse_FunctionLiteralWithDecorators(t *testing.T) {
	prog := parseOK(t, "let f = (x) -> x * 2 #log #memo")
	let := prog.Statements[0].(*ast.LetStmt)
	fn := let.Value.(*ast.FunctionLit)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
	require.Len(t, fn.Decorators, 2)
	assert.Equal(t, "log", fn.Decorators[0].Name)
	assert.Equal(t, "memo", fn.Decorators[1].Name)
}

func TestParse_FunctionLiteralWithRetryArgs(t *testing.T) {
	prog := parseOK(t, "let f = (x) -> x #retry(2)")
	let := prog.Statements[0].(*ast.LetStmt)
	fn := let.Value.(*ast.FunctionLit)
	require.Len(t, fn.Decorators, 1)
	assert.Equal(t, "retry", fn.Decorators[0].Name)
	require.Len(t, fn.Decorators[0].Args, 1)
}

func TestParse_GroupedExpressionIsNotAFunctionLiteral(t *testing.T) {
	prog := parseOK(t, "(1 + 2) * 3")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	bin := stmt.Expression.(*ast.BinaryExpr)
	assert.Equal(t, "*", string(bin.Op))
	assert.IsType(t, &ast.BinaryExpr{}, bin.Left)
}

func TestParse_MatchWithGuardAndWildcard(t *testing.T) {
	prog := parseOK(t, "match x { 0 -> \"zero\", n if n > 0 -> \"pos\", _ -> \"neg\" }")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	m := stmt.Expression.(*ast.MatchExpr)
	require.Len(t, m.Arms, 3)
	assert.IsType(t, ast.LiteralPattern{}, m.Arms[0].Pattern)
	assert.IsType(t, ast.IdentPattern{}, m.Arms[1].Pattern)
	assert.NotNil(t, m.Arms[1].Guard)
	assert.IsType(t, ast.WildcardPattern{}, m.Arms[2].Pattern)
}

func TestParse_ListDestructureWithRest(t *testing.T) {
	prog := parseOK(t, "match xs { [head, ...tail] -> head, _ -> 0 }")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	m := stmt.Expression.(*ast.MatchExpr)
	lp := m.Arms[0].Pattern.(ast.ListPattern)
	require.Len(t, lp.Elements, 1)
	assert.Equal(t, "tail", lp.Rest)
}

func TestParse_RecordLiteralAndMemberAccess(t *testing.T) {
	prog := parseOK(t, "{ name: \"a\", age: 2 }.name")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	member := stmt.Expression.(*ast.MemberExpr)
	assert.Equal(t, "name", member.Name)
	rec := member.Target.(*ast.RecordLit)
	require.Len(t, rec.Entries, 2)
}

func TestParse_TemplateStringInterpolation(t *testing.T) {
	prog := parseOK(t, "`hello ${name}!`")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	tmpl := stmt.Expression.(*ast.TemplateString)
	require.Len(t, tmpl.Parts, 3)
	assert.Equal(t, "hello ", tmpl.Parts[0].Lit)
	assert.IsType(t, &ast.Identifier{}, tmpl.Parts[1].Expr)
	assert.Equal(t, "!", tmpl.Parts[2].Lit)
}

func TestParse_ContextAndProvide(t *testing.T) {
	prog := parseOK(t, "context Name = \"default\"\nprovide Name \"hi\" { Name }")
	def := prog.Statements[0].(*ast.ContextDefStmt)
	assert.Equal(t, "Name", def.Name)
	prov := prog.Statements[1].(*ast.ProvideStmt)
	assert.Equal(t, "Name", prov.Name)
	require.NotNil(t, prov.Scope)
}

func TestParse_RecoversFromErrorAtStatementBoundary(t *testing.T) {
	_, diags := Parse("let = \nlet y = 2")
	require.NotEmpty(t, diags)
}
